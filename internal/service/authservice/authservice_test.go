package authservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/service/userservice"
	"github.com/GlebRadaev/starmatch/pkg/auth"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupTest(t *testing.T) (*Service, *auth.MockInitDataVerifierInterface, *auth.MockJWTServiceInterface, *MockUserProvider) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	verifier := auth.NewMockInitDataVerifierInterface(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)
	users := NewMockUserProvider(ctrl)
	service := New(verifier, jwtService, users)
	return service, verifier, jwtService, users
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("issues token for verified identity", func(t *testing.T) {
		service, verifier, jwtService, users := setupTest(t)

		tgUser := &auth.TelegramUser{ID: 100, Username: "alice", FirstName: "Alice"}
		verifier.EXPECT().Verify("init-data").Return(tgUser, nil)
		users.EXPECT().GetOrCreate(ctx, userservice.NewUserAttrs{
			TelegramID: 100, Username: "alice", FirstName: "Alice",
		}, "").Return(&domain.User{ID: 1, TelegramID: 100}, true, nil)
		users.EXPECT().RecordLogin(ctx, int64(100)).Return(&domain.User{ID: 1, TelegramID: 100, DailyLoginStreak: 1}, nil)
		jwtService.EXPECT().GenerateJWT(int64(100), gomock.Any()).Return("token-123", nil)

		token, user, err := service.Authenticate(ctx, "init-data")
		assert.NoError(t, err)
		assert.Equal(t, "token-123", token)
		assert.Equal(t, int64(100), user.TelegramID)
		assert.Equal(t, 1, user.DailyLoginStreak)
	})

	t.Run("invalid init data", func(t *testing.T) {
		service, verifier, _, _ := setupTest(t)

		verifier.EXPECT().Verify("garbage").Return(nil, auth.ErrInvalidInitData)

		_, _, err := service.Authenticate(ctx, "garbage")
		assert.ErrorIs(t, err, auth.ErrInvalidInitData)
	})

	t.Run("upsert failure", func(t *testing.T) {
		service, verifier, _, users := setupTest(t)

		verifier.EXPECT().Verify("init-data").Return(&auth.TelegramUser{ID: 100}, nil)
		users.EXPECT().GetOrCreate(ctx, gomock.Any(), "").Return(nil, false, errors.New("db down"))

		_, _, err := service.Authenticate(ctx, "init-data")
		assert.Error(t, err)
	})

	t.Run("login recording failure", func(t *testing.T) {
		service, verifier, _, users := setupTest(t)

		verifier.EXPECT().Verify("init-data").Return(&auth.TelegramUser{ID: 100}, nil)
		users.EXPECT().GetOrCreate(ctx, gomock.Any(), "").Return(&domain.User{TelegramID: 100}, false, nil)
		users.EXPECT().RecordLogin(ctx, int64(100)).Return(nil, errors.New("db down"))

		_, _, err := service.Authenticate(ctx, "init-data")
		assert.Error(t, err)
	})

	t.Run("token issue failure", func(t *testing.T) {
		service, verifier, jwtService, users := setupTest(t)

		verifier.EXPECT().Verify("init-data").Return(&auth.TelegramUser{ID: 100}, nil)
		users.EXPECT().GetOrCreate(ctx, gomock.Any(), "").Return(&domain.User{TelegramID: 100}, false, nil)
		users.EXPECT().RecordLogin(ctx, int64(100)).Return(&domain.User{TelegramID: 100}, nil)
		jwtService.EXPECT().GenerateJWT(int64(100), gomock.Any()).Return("", errors.New("boom"))

		_, _, err := service.Authenticate(ctx, "init-data")
		assert.Error(t, err)
	})
}
