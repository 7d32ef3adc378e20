package handlers

import (
	"net/http"

	"github.com/GlebRadaev/starmatch/internal/dto"
	"github.com/GlebRadaev/starmatch/pkg/utils"
)

// AdminUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserDTO
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/admin/users [get]
func (h *Handler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, dto.NewUserDTO(&users[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// AdminTransactions godoc
// @Summary List ledger entries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TransactionDTO
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/admin/transactions [get]
func (h *Handler) AdminTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.adminService.ListTransactions(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := make([]dto.TransactionDTO, 0, len(transactions))
	for i := range transactions {
		result = append(result, dto.NewTransactionDTO(&transactions[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// AdminStats godoc
// @Summary Aggregate statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatsResponseDTO
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/admin/stats [get]
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.StatsResponseDTO{
		TotalUsers:        stats.TotalUsers,
		ActiveUsers:       stats.ActiveUsers,
		TotalMatches:      stats.TotalMatches,
		TotalTransactions: stats.TotalTransactions,
		TotalRevenue:      stats.TotalRevenue,
	})
}
