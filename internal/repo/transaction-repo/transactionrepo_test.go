package transactionrepo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTest(t)

	tx := &domain.Transaction{
		UserID: 1, TelegramID: 100, Type: domain.TransactionTypePayment,
		Amount: -15, Description: "Filtered match fee",
		Status:   domain.TransactionStatusCompleted,
		Metadata: &domain.TransactionMetadata{MatchType: domain.MatchTypeFiltered},
	}
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transactions`)).
		WithArgs(1, int64(100), domain.TransactionTypePayment, -15, "Filtered match fee", "", domain.TransactionStatusCompleted, tx.Metadata).
		WillReturnRows(mock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))

	created, err := repo.Create(ctx, tx)
	assert.NoError(t, err)
	assert.Equal(t, 7, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTest(t)

	rows := mock.NewRows([]string{
		"id", "user_id", "telegram_id", "type", "amount",
		"description", "payment_id", "status", "metadata", "created_at",
	}).
		AddRow(2, 1, int64(100), domain.TransactionTypePayment, 50, "Stars top-up", "charge-1", domain.TransactionStatusCompleted, (*domain.TransactionMetadata)(nil), time.Now()).
		AddRow(1, 1, int64(100), domain.TransactionTypeReferralBonus, 5, "Referral bonus", "", domain.TransactionStatusCompleted, (*domain.TransactionMetadata)(nil), time.Now().Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM transactions`)).
		WithArgs(100).
		WillReturnRows(rows)

	transactions, err := repo.List(ctx, 100)
	assert.NoError(t, err)
	assert.Len(t, transactions, 2)
	assert.Equal(t, 50, transactions[0].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountCompleted(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTest(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM transactions WHERE status = 'completed'`)).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := repo.CountCompleted(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestRepository_SumCompletedPayments(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupTest(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE status = 'completed' AND type = 'payment' AND amount > 0`)).
		WillReturnRows(mock.NewRows([]string{"sum"}).AddRow(int64(120)))

	sum, err := repo.SumCompletedPayments(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(120), sum)
}
