package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/metrics"
	"go.uber.org/zap"
)

type MatchRepo interface {
	FindExpiredPending(ctx context.Context, limit int) ([]domain.Match, error)
	MarkExpired(ctx context.Context, id int) (bool, error)
}

const (
	sweepInterval = time.Minute
	sweepBatch    = 1000
	poolSize      = 10
)

// Sweeper periodically transitions pending matches past their expiry to
// the expired status. MarkExpired is guarded on the status, so a match
// that got a reaction between the query and the update is left alone.
type Sweeper struct {
	matchRepo MatchRepo
	pool      *WorkerPool
	inFlight  sync.Map
}

func New(matchRepo MatchRepo) *Sweeper {
	return &Sweeper{
		matchRepo: matchRepo,
		pool:      NewWorkerPool(poolSize),
	}
}

func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	defer s.pool.Shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	expired, err := s.matchRepo.FindExpiredPending(ctx, sweepBatch)
	if err != nil {
		zap.L().Error("can't query expired matches", zap.Error(err))
		return
	}

	for _, match := range expired {
		matchID := match.ID
		if _, loaded := s.inFlight.LoadOrStore(matchID, struct{}{}); loaded {
			continue
		}
		s.pool.Submit(func() {
			defer s.inFlight.Delete(matchID)
			s.expire(ctx, matchID)
		})
	}
}

func (s *Sweeper) expire(ctx context.Context, matchID int) {
	marked, err := s.matchRepo.MarkExpired(ctx, matchID)
	if err != nil {
		zap.L().Error("can't mark match expired", zap.Int("matchID", matchID), zap.Error(err))
		return
	}
	if marked {
		metrics.MatchesExpired.Inc()
		zap.L().Info("match expired", zap.Int("matchID", matchID))
	}
}
