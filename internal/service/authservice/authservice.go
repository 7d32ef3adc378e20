package authservice

import (
	"context"
	"time"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/service/userservice"
	"github.com/GlebRadaev/starmatch/pkg/auth"
	"go.uber.org/zap"
)

type UserProvider interface {
	GetOrCreate(ctx context.Context, attrs userservice.NewUserAttrs, referralCode string) (*domain.User, bool, error)
	RecordLogin(ctx context.Context, telegramID int64) (*domain.User, error)
}

const tokenTTL = 24 * time.Hour

type Service struct {
	verifier   auth.InitDataVerifierInterface
	jwtService auth.JWTServiceInterface
	users      UserProvider
}

func New(verifier auth.InitDataVerifierInterface, jwtService auth.JWTServiceInterface, users UserProvider) *Service {
	return &Service{
		verifier:   verifier,
		jwtService: jwtService,
		users:      users,
	}
}

// Authenticate verifies the mini-app init data signature, upserts the user
// and issues a session token. Invalid init data surfaces as
// auth.ErrInvalidInitData.
func (s *Service) Authenticate(ctx context.Context, initData string) (string, *domain.User, error) {
	tgUser, err := s.verifier.Verify(initData)
	if err != nil {
		zap.L().Warn("init data verification failed", zap.Error(err))
		return "", nil, err
	}

	attrs := userservice.NewUserAttrs{
		TelegramID: tgUser.ID,
		Username:   tgUser.Username,
		FirstName:  tgUser.FirstName,
		LastName:   tgUser.LastName,
		PhotoURL:   tgUser.PhotoURL,
	}
	user, _, err := s.users.GetOrCreate(ctx, attrs, "")
	if err != nil {
		return "", nil, err
	}

	// Opening the mini-app counts towards the daily streak, same as /start.
	user, err = s.users.RecordLogin(ctx, user.TelegramID)
	if err != nil {
		return "", nil, err
	}

	token, err := s.jwtService.GenerateJWT(user.TelegramID, time.Now().Add(tokenTTL))
	if err != nil {
		zap.L().Error("can't issue token", zap.Error(err))
		return "", nil, err
	}
	return token, user, nil
}
