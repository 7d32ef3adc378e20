package transactionrepo

import (
	"context"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/pg"
	"go.uber.org/zap"
)

// The transactions table is an append-only ledger: entries are inserted
// with their final status and never updated here.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, telegram_id, type, amount, description, payment_id, status, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query,
		tx.UserID, tx.TelegramID, tx.Type, tx.Amount, tx.Description,
		tx.PaymentID, tx.Status, tx.Metadata,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (repo *Repository) List(ctx context.Context, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT id, user_id, telegram_id, type, amount, description, payment_id, status, metadata, created_at
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := repo.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("can't list transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.TelegramID, &tx.Type, &tx.Amount,
			&tx.Description, &tx.PaymentID, &tx.Status, &tx.Metadata, &tx.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func (repo *Repository) CountCompleted(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM transactions WHERE status = 'completed'`
	if err := repo.db.QueryRow(ctx, query).Scan(&count); err != nil {
		zap.L().Error("can't count transactions", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// SumCompletedPayments reports Stars revenue: completed top-up credits.
// Filtered-match debits are payment transactions too but spend an existing
// balance, so they don't count.
func (repo *Repository) SumCompletedPayments(ctx context.Context) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE status = 'completed' AND type = 'payment' AND amount > 0`
	if err := repo.db.QueryRow(ctx, query).Scan(&sum); err != nil {
		zap.L().Error("can't sum payments", zap.Error(err))
		return 0, err
	}
	return sum, nil
}
