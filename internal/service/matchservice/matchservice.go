package matchservice

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/metrics"
	"github.com/GlebRadaev/starmatch/internal/pg"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	ConsumeFreeMatch(ctx context.Context, telegramID int64) (bool, error)
	DebitBalance(ctx context.Context, telegramID int64, amount int) (bool, error)
	FindCandidates(ctx context.Context, excludeIDs []int, filters *domain.MatchFilters, limit int) ([]domain.User, error)
}

type MatchRepo interface {
	Create(ctx context.Context, match *domain.Match) (*domain.Match, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Match, error)
	UpdateStatuses(ctx context.Context, match *domain.Match) error
	InvolvedUserIDs(ctx context.Context, userID int) ([]int, error)
	FindByUserID(ctx context.Context, userID int, limit int) ([]domain.Match, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
}

type Notifier interface {
	SendMessage(chatID int64, text string) error
}

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyReacted      = errors.New("reaction already recorded")
	ErrInvalidReaction     = errors.New("invalid reaction")
)

const (
	filteredMatchCost  = 15
	candidatePoolLimit = 10
	matchTTL           = 24 * time.Hour
	matchesPageLimit   = 20
)

// Result distinguishes "charged but no match found" from "not charged":
// a filtered request keeps its debit even when the pool comes up empty.
type Result struct {
	Found   bool
	Charged bool
	Match   *domain.Match
}

type Service struct {
	userRepo        UserRepo
	matchRepo       MatchRepo
	transactionRepo TransactionRepo
	txManager       pg.TXManager
	notifier        Notifier
}

func New(userRepo UserRepo, matchRepo MatchRepo, transactionRepo TransactionRepo, txManager pg.TXManager, notifier Notifier) *Service {
	return &Service{
		userRepo:        userRepo,
		matchRepo:       matchRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		notifier:        notifier,
	}
}

func (s *Service) RandomMatch(ctx context.Context, telegramID int64) (*Result, error) {
	requester, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, ErrUserNotFound
	}

	candidate, err := s.pickCandidate(ctx, requester, nil)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return &Result{Found: false}, nil
	}

	match, err := s.createMatch(ctx, requester, candidate, domain.MatchTypeRandom, nil)
	if err != nil {
		return nil, err
	}
	return &Result{Found: true, Match: match}, nil
}

// FilteredMatch consumes the entitlement before selection: one free match
// credit if available, otherwise a fixed Stars debit. Charge, selection and
// match creation run in one transaction, so an internal failure rolls the
// entitlement back; an empty pool is not a failure and commits, keeping the
// entitlement spent.
func (s *Service) FilteredMatch(ctx context.Context, telegramID int64, filters *domain.MatchFilters) (*Result, error) {
	requester, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, ErrUserNotFound
	}

	result := &Result{}
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		charged, err := s.chargeEntitlement(ctx, requester)
		if err != nil {
			return err
		}
		result.Charged = charged

		candidate, err := s.pickCandidate(ctx, requester, filters)
		if err != nil {
			return err
		}
		if candidate == nil {
			return nil
		}

		match, err := s.createMatch(ctx, requester, candidate, domain.MatchTypeFiltered, filters)
		if err != nil {
			return err
		}
		result.Found = true
		result.Match = match
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Charged {
		metrics.TransactionsRecorded.WithLabelValues(domain.TransactionTypePayment).Inc()
	}
	return result, nil
}

// chargeEntitlement reports whether the Stars balance was debited; a free
// credit spend returns false with no ledger entry, since the balance is
// untouched. The caller owns the enclosing transaction.
func (s *Service) chargeEntitlement(ctx context.Context, requester *domain.User) (bool, error) {
	consumed, err := s.userRepo.ConsumeFreeMatch(ctx, requester.TelegramID)
	if err != nil {
		return false, err
	}
	if consumed {
		return false, nil
	}

	debited, err := s.userRepo.DebitBalance(ctx, requester.TelegramID, filteredMatchCost)
	if err != nil {
		return false, err
	}
	if !debited {
		return false, ErrInsufficientBalance
	}
	_, err = s.transactionRepo.Create(ctx, &domain.Transaction{
		UserID:      requester.ID,
		TelegramID:  requester.TelegramID,
		Type:        domain.TransactionTypePayment,
		Amount:      -filteredMatchCost,
		Description: "Filtered match fee",
		Status:      domain.TransactionStatusCompleted,
		Metadata:    &domain.TransactionMetadata{MatchType: domain.MatchTypeFiltered},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) pickCandidate(ctx context.Context, requester *domain.User, filters *domain.MatchFilters) (*domain.User, error) {
	involved, err := s.matchRepo.InvolvedUserIDs(ctx, requester.ID)
	if err != nil {
		return nil, err
	}
	excludeIDs := append(involved, requester.ID)

	candidates, err := s.userRepo.FindCandidates(ctx, excludeIDs, filters, candidatePoolLimit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return &candidates[rand.Intn(len(candidates))], nil
}

func (s *Service) createMatch(ctx context.Context, requester, candidate *domain.User, matchType string, filters *domain.MatchFilters) (*domain.Match, error) {
	match := &domain.Match{
		User1ID:   requester.ID,
		User2ID:   candidate.ID,
		MatchType: matchType,
		Filters:   filters,
		ExpiresAt: time.Now().Add(matchTTL),
	}
	match, err := s.matchRepo.Create(ctx, match)
	if err != nil {
		return nil, err
	}
	match.User1 = requester
	match.User2 = candidate
	metrics.MatchesCreated.WithLabelValues(matchType).Inc()
	zap.L().Info("match created",
		zap.Int("matchID", match.ID),
		zap.String("type", matchType),
		zap.Int64("requester", requester.TelegramID))
	return match, nil
}

// React writes one side's reaction and resolves the overall status. The
// whole read-modify-write runs under a row lock so concurrent reactions
// from the two sides can't interleave.
func (s *Service) React(ctx context.Context, matchID int, telegramID int64, reaction string) (*domain.Match, error) {
	if reaction != domain.ReactionInterested && reaction != domain.ReactionPassed {
		return nil, ErrInvalidReaction
	}

	user, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var match *domain.Match
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		found, err := s.matchRepo.FindByIDForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrMatchNotFound
		}
		match = found

		var side *string
		switch user.ID {
		case match.User1ID:
			side = &match.User1Status
		case match.User2ID:
			side = &match.User2Status
		default:
			// Non-participants can't learn the match exists.
			return ErrMatchNotFound
		}

		if *side != domain.ReactionPending || match.Status != domain.MatchStatusPending {
			return ErrAlreadyReacted
		}
		*side = reaction
		match.Status = resolveStatus(match.User1Status, match.User2Status)

		return s.matchRepo.UpdateStatuses(ctx, match)
	})
	if err != nil {
		return nil, err
	}

	if match.Status == domain.MatchStatusAccepted {
		metrics.MatchesAccepted.Inc()
		s.notifyAccepted(ctx, match)
	}
	return match, nil
}

// resolveStatus derives the overall status from the two per-side states.
// A "passed" on either side forces rejection even if the other side is
// already interested.
func resolveStatus(user1Status, user2Status string) string {
	switch {
	case user1Status == domain.ReactionPassed || user2Status == domain.ReactionPassed:
		return domain.MatchStatusRejected
	case user1Status == domain.ReactionInterested && user2Status == domain.ReactionInterested:
		return domain.MatchStatusAccepted
	default:
		return domain.MatchStatusPending
	}
}

// notifyAccepted is fire-and-forget: delivery failures are logged and
// swallowed, never surfaced to the reacting request.
func (s *Service) notifyAccepted(ctx context.Context, match *domain.Match) {
	user1, err := s.userRepo.FindByID(ctx, match.User1ID)
	if err != nil || user1 == nil {
		zap.L().Warn("can't load match side for notification", zap.Int("userID", match.User1ID), zap.Error(err))
		return
	}
	user2, err := s.userRepo.FindByID(ctx, match.User2ID)
	if err != nil || user2 == nil {
		zap.L().Warn("can't load match side for notification", zap.Int("userID", match.User2ID), zap.Error(err))
		return
	}

	if err := s.notifier.SendMessage(user1.TelegramID, acceptedText(user2)); err != nil {
		zap.L().Warn("can't notify user", zap.Int64("telegramID", user1.TelegramID), zap.Error(err))
	}
	if err := s.notifier.SendMessage(user2.TelegramID, acceptedText(user1)); err != nil {
		zap.L().Warn("can't notify user", zap.Int64("telegramID", user2.TelegramID), zap.Error(err))
	}
}

func acceptedText(counterpart *domain.User) string {
	name := counterpart.FirstName
	if name == "" {
		name = counterpart.Username
	}
	return fmt.Sprintf("It's a match! You and %s liked each other.", name)
}

func (s *Service) ListMatches(ctx context.Context, telegramID int64) ([]domain.Match, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.matchRepo.FindByUserID(ctx, user.ID, matchesPageLimit)
}
