package adminservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/GlebRadaev/starmatch/internal/cache"
	"github.com/GlebRadaev/starmatch/internal/domain"
	"go.uber.org/zap"
)

type UserRepo interface {
	List(ctx context.Context, limit int) ([]domain.User, error)
	Count(ctx context.Context) (total int64, active int64, err error)
}

type MatchRepo interface {
	Count(ctx context.Context) (int64, error)
}

type TransactionRepo interface {
	List(ctx context.Context, limit int) ([]domain.Transaction, error)
	CountCompleted(ctx context.Context) (int64, error)
	SumCompletedPayments(ctx context.Context) (int64, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

const (
	usersListLimit        = 50
	transactionsListLimit = 100
	statsCacheKey         = "admin:stats"
	statsCacheTTL         = time.Hour
)

type Stats struct {
	TotalUsers        int64 `json:"total_users"`
	ActiveUsers       int64 `json:"active_users"`
	TotalMatches      int64 `json:"total_matches"`
	TotalTransactions int64 `json:"total_transactions"`
	TotalRevenue      int64 `json:"total_revenue"`
}

type Service struct {
	adminID         int64
	userRepo        UserRepo
	matchRepo       MatchRepo
	transactionRepo TransactionRepo
	cache           Cache
}

func New(adminID int64, userRepo UserRepo, matchRepo MatchRepo, transactionRepo TransactionRepo, c Cache) *Service {
	return &Service{
		adminID:         adminID,
		userRepo:        userRepo,
		matchRepo:       matchRepo,
		transactionRepo: transactionRepo,
		cache:           c,
	}
}

// IsAdmin reports whether the identity matches the configured admin. An
// unset admin id means nobody is an admin.
func (s *Service) IsAdmin(telegramID int64) bool {
	return s.adminID != 0 && telegramID == s.adminID
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx, usersListLimit)
}

func (s *Service) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactionRepo.List(ctx, transactionsListLimit)
}

// Stats aggregates the dashboard counters, cached for an hour. Cache
// failures fall through to the database.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	cached, err := s.cache.Get(ctx, statsCacheKey)
	switch {
	case err == nil:
		var stats Stats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
		zap.L().Warn("can't decode cached stats", zap.String("value", cached))
	case !errors.Is(err, cache.ErrCacheMiss):
		zap.L().Warn("can't read stats cache", zap.Error(err))
	}

	totalUsers, activeUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalMatches, err := s.matchRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalTransactions, err := s.transactionRepo.CountCompleted(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.transactionRepo.SumCompletedPayments(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalUsers:        totalUsers,
		ActiveUsers:       activeUsers,
		TotalMatches:      totalMatches,
		TotalTransactions: totalTransactions,
		TotalRevenue:      revenue,
	}

	if encoded, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, statsCacheKey, string(encoded), statsCacheTTL); err != nil {
			zap.L().Warn("can't write stats cache", zap.Error(err))
		}
	}
	return stats, nil
}
