package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/starmatch/internal/dto"
	"github.com/GlebRadaev/starmatch/internal/service/userservice"
	"github.com/GlebRadaev/starmatch/pkg/utils"
)

// GetProfile godoc
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/user [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := telegramIDFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUser(r.Context(), telegramID)
	switch {
	case errors.Is(err, userservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserDTO(user))
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Overwrites only the supplied demographic and bio fields
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequestDTO true "Fields to update"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/user [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := telegramIDFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.UpdateProfileRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid profile fields")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), telegramID, userservice.ProfileUpdate{
		Age:       req.Age,
		Gender:    req.Gender,
		Location:  req.Location,
		Interests: req.Interests,
		Bio:       req.Bio,
	})
	switch {
	case errors.Is(err, userservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserDTO(user))
}
