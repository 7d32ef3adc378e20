package paymentservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/metrics"
	"github.com/GlebRadaev/starmatch/internal/pg"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	CreditBalance(ctx context.Context, telegramID int64, amount int) error
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
}

type Invoicer interface {
	CreateInvoiceLink(title, description, payload string, amount int) (string, error)
}

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidAmount = errors.New("invalid amount")
)

type Service struct {
	userRepo        UserRepo
	transactionRepo TransactionRepo
	invoicer        Invoicer
	txManager       pg.TXManager
}

func New(userRepo UserRepo, transactionRepo TransactionRepo, invoicer Invoicer, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		invoicer:        invoicer,
		txManager:       txManager,
	}
}

// CreateInvoice returns a Stars invoice link. No ledger entry is written
// here: the balance is only affected once the payment succeeds.
func (s *Service) CreateInvoice(ctx context.Context, telegramID int64, amount int) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	user, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	payload := "payment_" + uuid.NewString()
	link, err := s.invoicer.CreateInvoiceLink(
		"Stars top-up",
		fmt.Sprintf("%d Stars for your StarMatch balance", amount),
		payload,
		amount,
	)
	if err != nil {
		zap.L().Error("can't create invoice link", zap.Error(err))
		return "", err
	}

	zap.L().Info("invoice created", zap.Int64("telegramID", telegramID), zap.Int("amount", amount), zap.String("payload", payload))
	return link, nil
}

// HandleSuccessfulPayment credits the paid amount and records the ledger
// entry in one transaction.
func (s *Service) HandleSuccessfulPayment(ctx context.Context, telegramID int64, payload, chargeID string, amount int) error {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.userRepo.CreditBalance(ctx, telegramID, amount); err != nil {
			return err
		}
		_, err := s.transactionRepo.Create(ctx, &domain.Transaction{
			UserID:      user.ID,
			TelegramID:  telegramID,
			Type:        domain.TransactionTypePayment,
			Amount:      amount,
			Description: "Stars top-up",
			PaymentID:   chargeID,
			Status:      domain.TransactionStatusCompleted,
		})
		return err
	})
	if err != nil {
		zap.L().Error("can't apply successful payment", zap.Error(err))
		return err
	}

	metrics.TransactionsRecorded.WithLabelValues(domain.TransactionTypePayment).Inc()
	zap.L().Info("payment applied",
		zap.Int64("telegramID", telegramID),
		zap.Int("amount", amount),
		zap.String("payload", payload))
	return nil
}
