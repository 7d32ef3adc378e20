package dto

import (
	"time"

	"github.com/GlebRadaev/starmatch/internal/domain"
)

type StatsResponseDTO struct {
	TotalUsers        int64 `json:"totalUsers"`
	ActiveUsers       int64 `json:"activeUsers"`
	TotalMatches      int64 `json:"totalMatches"`
	TotalTransactions int64 `json:"totalTransactions"`
	TotalRevenue      int64 `json:"totalRevenue"`
}

type TransactionDTO struct {
	ID          int    `json:"id"`
	TelegramID  int64  `json:"telegramId"`
	Type        string `json:"type" example:"payment"`
	Amount      int    `json:"amount" example:"-15"`
	Description string `json:"description,omitempty"`
	PaymentID   string `json:"paymentId,omitempty"`
	Status      string `json:"status" example:"completed"`
	CreatedAt   string `json:"createdAt"`
}

func NewTransactionDTO(tx *domain.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          tx.ID,
		TelegramID:  tx.TelegramID,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Description: tx.Description,
		PaymentID:   tx.PaymentID,
		Status:      tx.Status,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}
