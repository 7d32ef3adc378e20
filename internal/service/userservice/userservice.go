package userservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/metrics"
	"github.com/GlebRadaev/starmatch/pkg/validate"
	"go.uber.org/zap"
)

type Repo interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateLogin(ctx context.Context, telegramID int64, streak int, lastLogin time.Time) error
	AddFreeMatches(ctx context.Context, telegramID int64, delta int) error
	CreditReferrer(ctx context.Context, id int, bonus int) error
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
}

var ErrUserNotFound = errors.New("user not found")

const (
	referralBonus    = 5
	streakBonusEvery = 3
	codeGenAttempts  = 3
)

type NewUserAttrs struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	PhotoURL   string
}

type ProfileUpdate struct {
	Age       *int
	Gender    *string
	Location  *string
	Interests []string
	Bio       *string
}

type Service struct {
	userRepo        Repo
	transactionRepo TransactionRepo
}

func New(userRepo Repo, transactionRepo TransactionRepo) *Service {
	return &Service{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *Service) GetUser(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetOrCreate is an idempotent upsert by telegram id. On first creation it
// assigns a fresh referral code and, when a valid code of an existing user
// was supplied, credits that referrer and records the bonus in the ledger.
func (s *Service) GetOrCreate(ctx context.Context, attrs NewUserAttrs, referralCode string) (*domain.User, bool, error) {
	existing, err := s.userRepo.FindByTelegramID(ctx, attrs.TelegramID)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	user := &domain.User{
		TelegramID: attrs.TelegramID,
		Username:   attrs.Username,
		FirstName:  attrs.FirstName,
		LastName:   attrs.LastName,
		PhotoURL:   attrs.PhotoURL,
	}

	if user.ReferralCode, err = s.allocateReferralCode(ctx); err != nil {
		return nil, false, err
	}

	var referrer *domain.User
	if referralCode != "" && validate.IsReferralCode(referralCode) {
		referrer, err = s.userRepo.FindByReferralCode(ctx, referralCode)
		if err != nil {
			zap.L().Error("can't resolve referral code", zap.Error(err))
			return nil, false, err
		}
		if referrer != nil {
			user.ReferredBy = referrer.ID
		}
	}

	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, false, err
	}

	if referrer != nil {
		if err := s.creditReferralBonus(ctx, referrer, referralCode); err != nil {
			return nil, false, err
		}
	}

	zap.L().Info("user created", zap.Int64("telegramID", newUser.TelegramID))
	return newUser, true, nil
}

func (s *Service) allocateReferralCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeGenAttempts; attempt++ {
		code, err := validate.NewReferralCode()
		if err != nil {
			return "", err
		}
		taken, err := s.userRepo.FindByReferralCode(ctx, code)
		if err != nil {
			return "", err
		}
		if taken == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("can't allocate unique referral code after %d attempts", codeGenAttempts)
}

func (s *Service) creditReferralBonus(ctx context.Context, referrer *domain.User, referralCode string) error {
	if err := s.userRepo.CreditReferrer(ctx, referrer.ID, referralBonus); err != nil {
		zap.L().Error("can't credit referrer", zap.Error(err))
		return err
	}
	_, err := s.transactionRepo.Create(ctx, &domain.Transaction{
		UserID:      referrer.ID,
		TelegramID:  referrer.TelegramID,
		Type:        domain.TransactionTypeReferralBonus,
		Amount:      referralBonus,
		Description: "Referral bonus",
		Status:      domain.TransactionStatusCompleted,
		Metadata:    &domain.TransactionMetadata{ReferralCode: referralCode},
	})
	if err != nil {
		zap.L().Error("can't record referral bonus", zap.Error(err))
		return err
	}
	metrics.TransactionsRecorded.WithLabelValues(domain.TransactionTypeReferralBonus).Inc()
	return nil
}

// RecordLogin applies the daily streak rules: a repeated login on the same
// day changes nothing, a login exactly one day after the last one extends
// the streak, anything later restarts it. Every third consecutive day earns
// one free match credit, granted once per milestone.
func (s *Service) RecordLogin(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	today := midnight(now)

	streak := 1
	alreadyToday := false
	if user.LastLoginDate != nil {
		last := midnight(*user.LastLoginDate)
		switch {
		case last.Equal(today):
			streak = user.DailyLoginStreak
			alreadyToday = true
		case last.Equal(today.AddDate(0, 0, -1)):
			streak = user.DailyLoginStreak + 1
		}
	}

	if err := s.userRepo.UpdateLogin(ctx, telegramID, streak, now); err != nil {
		zap.L().Error("can't update login info", zap.Error(err))
		return nil, err
	}
	user.DailyLoginStreak = streak
	user.LastLoginDate = &now

	if !alreadyToday && streak >= streakBonusEvery && streak%streakBonusEvery == 0 {
		if err := s.grantStreakBonus(ctx, user); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *Service) grantStreakBonus(ctx context.Context, user *domain.User) error {
	if err := s.userRepo.AddFreeMatches(ctx, user.TelegramID, 1); err != nil {
		zap.L().Error("can't grant free match", zap.Error(err))
		return err
	}
	user.FreeMatchesEarned++

	_, err := s.transactionRepo.Create(ctx, &domain.Transaction{
		UserID:      user.ID,
		TelegramID:  user.TelegramID,
		Type:        domain.TransactionTypeStreakBonus,
		Amount:      1,
		Description: fmt.Sprintf("%d-day login streak bonus", user.DailyLoginStreak),
		Status:      domain.TransactionStatusCompleted,
		Metadata:    &domain.TransactionMetadata{StreakDays: user.DailyLoginStreak},
	})
	if err != nil {
		zap.L().Error("can't record streak bonus", zap.Error(err))
		return err
	}
	metrics.TransactionsRecorded.WithLabelValues(domain.TransactionTypeStreakBonus).Inc()
	zap.L().Info("streak bonus granted", zap.Int64("telegramID", user.TelegramID), zap.Int("streak", user.DailyLoginStreak))
	return nil
}

func (s *Service) UpdateProfile(ctx context.Context, telegramID int64, update ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if update.Age != nil {
		user.Age = *update.Age
	}
	if update.Gender != nil {
		user.Gender = *update.Gender
	}
	if update.Location != nil {
		user.Location = *update.Location
	}
	if update.Interests != nil {
		user.Interests = update.Interests
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}

	updated, err := s.userRepo.UpdateProfile(ctx, user)
	if err != nil {
		zap.L().Error("can't update profile", zap.Error(err))
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
