package sweeper

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestSweeper_Sweep(t *testing.T) {
	ctx := context.Background()

	t.Run("marks every stale pending match", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		matchRepo := NewMockMatchRepo(ctrl)
		s := New(matchRepo)

		matchRepo.EXPECT().FindExpiredPending(ctx, 1000).
			Return([]domain.Match{{ID: 1}, {ID: 2}}, nil)
		matchRepo.EXPECT().MarkExpired(ctx, 1).Return(true, nil)
		matchRepo.EXPECT().MarkExpired(ctx, 2).Return(true, nil)

		s.sweep(ctx)
		s.pool.Shutdown()
	})

	t.Run("query failure aborts the sweep", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		matchRepo := NewMockMatchRepo(ctrl)
		s := New(matchRepo)

		matchRepo.EXPECT().FindExpiredPending(ctx, 1000).Return(nil, errors.New("db down"))

		s.sweep(ctx)
		s.pool.Shutdown()
	})

	t.Run("lost status race is tolerated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		matchRepo := NewMockMatchRepo(ctrl)
		s := New(matchRepo)

		matchRepo.EXPECT().FindExpiredPending(ctx, 1000).Return([]domain.Match{{ID: 1}}, nil)
		matchRepo.EXPECT().MarkExpired(ctx, 1).Return(false, nil)

		s.sweep(ctx)
		s.pool.Shutdown()
	})
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	matchRepo := NewMockMatchRepo(ctrl)
	s := New(matchRepo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
