package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/starmatch/internal/dto"
	"github.com/GlebRadaev/starmatch/pkg/auth"
	"github.com/GlebRadaev/starmatch/pkg/utils"
)

// Auth godoc
// @Summary Authenticate with mini-app init data
// @Description Verifies the signed init data, creates the user on first contact and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AuthRequestDTO true "Init data"
// @Success 200 {object} dto.AuthResponseDTO
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/auth [post]
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "initData is required")
		return
	}

	token, user, err := h.authService.Authenticate(r.Context(), req.InitData)
	switch {
	case errors.Is(err, auth.ErrInvalidInitData):
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid init data")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{
		Token: token,
		User:  dto.NewUserDTO(user),
	})
}
