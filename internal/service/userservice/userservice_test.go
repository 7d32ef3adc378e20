package userservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupTest(t *testing.T) (*Service, *MockRepo, *MockTransactionRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	userRepo := NewMockRepo(ctrl)
	transactionRepo := NewMockTransactionRepo(ctrl)
	service := New(userRepo, transactionRepo)
	return service, userRepo, transactionRepo
}

func TestService_GetUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(userRepo *MockRepo)
		wantErr    error
	}{
		{
			name: "user exists",
			setupMocks: func(userRepo *MockRepo) {
				userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(&domain.User{ID: 1, TelegramID: 100}, nil)
			},
			wantErr: nil,
		},
		{
			name: "user not found",
			setupMocks: func(userRepo *MockRepo) {
				userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "repo error",
			setupMocks: func(userRepo *MockRepo) {
				userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, _ := setupTest(t)
			tt.setupMocks(userRepo)

			user, err := service.GetUser(ctx, 100)
			if tt.wantErr != nil {
				assert.Nil(t, user)
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, int64(100), user.TelegramID)
		})
	}
}

func TestService_GetOrCreate_Existing(t *testing.T) {
	ctx := context.Background()
	service, userRepo, _ := setupTest(t)

	attrs := NewUserAttrs{TelegramID: 100, Username: "alice"}
	existing := &domain.User{ID: 1, TelegramID: 100, Username: "alice"}
	userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(existing, nil)

	user, created, err := service.GetOrCreate(ctx, attrs, "")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, user)
}

func TestService_GetOrCreate_New(t *testing.T) {
	ctx := context.Background()
	service, userRepo, _ := setupTest(t)

	attrs := NewUserAttrs{TelegramID: 100, Username: "alice", FirstName: "Alice"}
	userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(nil, nil)
	userRepo.EXPECT().FindByReferralCode(ctx, gomock.Any()).Return(nil, nil)
	userRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domain.User) (*domain.User, error) {
			assert.NotEmpty(t, u.ReferralCode)
			assert.Zero(t, u.ReferredBy)
			u.ID = 7
			return u, nil
		})

	user, created, err := service.GetOrCreate(ctx, attrs, "")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestService_GetOrCreate_WithReferral(t *testing.T) {
	ctx := context.Background()
	service, userRepo, transactionRepo := setupTest(t)

	referralCode := "SM0000000000"
	referrer := &domain.User{ID: 3, TelegramID: 300, ReferralCode: referralCode}

	attrs := NewUserAttrs{TelegramID: 100, Username: "alice"}
	userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(nil, nil)
	userRepo.EXPECT().FindByReferralCode(ctx, gomock.Any()).Return(nil, nil)
	userRepo.EXPECT().FindByReferralCode(ctx, referralCode).Return(referrer, nil)
	userRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domain.User) (*domain.User, error) {
			assert.Equal(t, 3, u.ReferredBy)
			u.ID = 7
			return u, nil
		})
	userRepo.EXPECT().CreditReferrer(ctx, 3, 5).Return(nil)
	transactionRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
			assert.Equal(t, domain.TransactionTypeReferralBonus, tx.Type)
			assert.Equal(t, 5, tx.Amount)
			assert.Equal(t, 3, tx.UserID)
			assert.Equal(t, domain.TransactionStatusCompleted, tx.Status)
			return tx, nil
		})

	user, created, err := service.GetOrCreate(ctx, attrs, referralCode)
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 3, user.ReferredBy)
}

func TestService_GetOrCreate_InvalidReferralIgnored(t *testing.T) {
	ctx := context.Background()
	service, userRepo, _ := setupTest(t)

	attrs := NewUserAttrs{TelegramID: 100}
	userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(nil, nil)
	userRepo.EXPECT().FindByReferralCode(ctx, gomock.Any()).Return(nil, nil)
	userRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domain.User) (*domain.User, error) {
			assert.Zero(t, u.ReferredBy)
			return u, nil
		})

	_, created, err := service.GetOrCreate(ctx, attrs, "not-a-code")
	assert.NoError(t, err)
	assert.True(t, created)
}

func TestService_RecordLogin(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)

	tests := []struct {
		name       string
		user       *domain.User
		wantStreak int
		wantBonus  bool
	}{
		{
			name:       "first login ever",
			user:       &domain.User{ID: 1, TelegramID: 100},
			wantStreak: 1,
		},
		{
			name:       "second login same day keeps streak",
			user:       &domain.User{ID: 1, TelegramID: 100, DailyLoginStreak: 2, LastLoginDate: &now},
			wantStreak: 2,
		},
		{
			name:       "consecutive day extends streak",
			user:       &domain.User{ID: 1, TelegramID: 100, DailyLoginStreak: 1, LastLoginDate: &yesterday},
			wantStreak: 2,
		},
		{
			name:       "gap resets streak",
			user:       &domain.User{ID: 1, TelegramID: 100, DailyLoginStreak: 5, LastLoginDate: &threeDaysAgo},
			wantStreak: 1,
		},
		{
			name:       "third consecutive day earns free match",
			user:       &domain.User{ID: 1, TelegramID: 100, DailyLoginStreak: 2, LastLoginDate: &yesterday},
			wantStreak: 3,
			wantBonus:  true,
		},
		{
			name:       "sixth consecutive day earns another",
			user:       &domain.User{ID: 1, TelegramID: 100, DailyLoginStreak: 5, LastLoginDate: &yesterday},
			wantStreak: 6,
			wantBonus:  true,
		},
		{
			name:       "fourth day has no bonus",
			user:       &domain.User{ID: 1, TelegramID: 100, DailyLoginStreak: 3, LastLoginDate: &yesterday},
			wantStreak: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, transactionRepo := setupTest(t)

			userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(tt.user, nil)
			userRepo.EXPECT().UpdateLogin(ctx, int64(100), tt.wantStreak, gomock.Any()).Return(nil)
			if tt.wantBonus {
				userRepo.EXPECT().AddFreeMatches(ctx, int64(100), 1).Return(nil)
				transactionRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, domain.TransactionTypeStreakBonus, tx.Type)
						assert.Equal(t, 1, tx.Amount)
						assert.Equal(t, tt.wantStreak, tx.Metadata.StreakDays)
						return tx, nil
					})
			}

			user, err := service.RecordLogin(ctx, 100)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStreak, user.DailyLoginStreak)
		})
	}
}

func TestService_RecordLogin_SameDayNeverDoubleGrants(t *testing.T) {
	ctx := context.Background()
	service, userRepo, _ := setupTest(t)

	now := time.Now()
	user := &domain.User{ID: 1, TelegramID: 100, DailyLoginStreak: 3, LastLoginDate: &now}
	userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(user, nil)
	userRepo.EXPECT().UpdateLogin(ctx, int64(100), 3, gomock.Any()).Return(nil)

	got, err := service.RecordLogin(ctx, 100)
	assert.NoError(t, err)
	assert.Equal(t, 3, got.DailyLoginStreak)
}

func TestService_RecordLogin_UserNotFound(t *testing.T) {
	ctx := context.Background()
	service, userRepo, _ := setupTest(t)

	userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(nil, nil)

	_, err := service.RecordLogin(ctx, 100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	age := 30
	location := "Berlin"

	tests := []struct {
		name       string
		update     ProfileUpdate
		setupMocks func(userRepo *MockRepo)
		wantErr    error
	}{
		{
			name:   "partial update keeps untouched fields",
			update: ProfileUpdate{Age: &age, Location: &location},
			setupMocks: func(userRepo *MockRepo) {
				userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).
					Return(&domain.User{ID: 1, TelegramID: 100, Age: 25, Gender: domain.GenderFemale, Bio: "hi"}, nil)
				userRepo.EXPECT().UpdateProfile(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, u *domain.User) (*domain.User, error) {
						assert.Equal(t, 30, u.Age)
						assert.Equal(t, "Berlin", u.Location)
						assert.Equal(t, domain.GenderFemale, u.Gender)
						assert.Equal(t, "hi", u.Bio)
						return u, nil
					})
			},
		},
		{
			name:   "user not found",
			update: ProfileUpdate{Age: &age},
			setupMocks: func(userRepo *MockRepo) {
				userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name:   "update hits deleted user",
			update: ProfileUpdate{Age: &age},
			setupMocks: func(userRepo *MockRepo) {
				userRepo.EXPECT().FindByTelegramID(ctx, int64(100)).Return(&domain.User{ID: 1, TelegramID: 100}, nil)
				userRepo.EXPECT().UpdateProfile(ctx, gomock.Any()).Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, _ := setupTest(t)
			tt.setupMocks(userRepo)

			user, err := service.UpdateProfile(ctx, 100, tt.update)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, user)
		})
	}
}
