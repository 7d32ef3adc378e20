package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/starmatch/internal/dto"
	"github.com/GlebRadaev/starmatch/internal/service/paymentservice"
	"github.com/GlebRadaev/starmatch/pkg/utils"
)

// CreateInvoice godoc
// @Summary Create a Stars invoice
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InvoiceRequestDTO true "Invoice details"
// @Success 200 {object} dto.InvoiceResponseDTO
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/payment/invoice [post]
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := telegramIDFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.InvoiceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid invoice request")
		return
	}

	link, err := h.paymentService.CreateInvoice(r.Context(), telegramID, req.Amount)
	switch {
	case errors.Is(err, paymentservice.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusBadRequest, "Amount must be positive")
		return
	case errors.Is(err, paymentservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.InvoiceResponseDTO{InvoiceURL: link})
}
