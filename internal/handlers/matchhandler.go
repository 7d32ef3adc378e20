package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/dto"
	"github.com/GlebRadaev/starmatch/internal/service/matchservice"
	"github.com/GlebRadaev/starmatch/internal/service/userservice"
	"github.com/GlebRadaev/starmatch/pkg/utils"
)

// RandomMatch godoc
// @Summary Request a random match
// @Tags match
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MatchResponseDTO
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/match/random [post]
func (h *Handler) RandomMatch(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := telegramIDFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.matchService.RandomMatch(r.Context(), telegramID)
	if err != nil {
		h.respondMatchError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, newMatchResponse(result))
}

// FilteredMatch godoc
// @Summary Request a filtered match
// @Description Consumes one free match credit or debits 15 Stars, then searches within the filters. The entitlement is kept even when nothing is found.
// @Tags match
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FilteredMatchRequestDTO true "Filter criteria"
// @Success 200 {object} dto.MatchResponseDTO
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 402 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/match/filtered [post]
func (h *Handler) FilteredMatch(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := telegramIDFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.FilteredMatchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid filters")
		return
	}

	result, err := h.matchService.FilteredMatch(r.Context(), telegramID, toDomainFilters(req.Filters))
	if err != nil {
		h.respondMatchError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, newMatchResponse(result))
}

// React godoc
// @Summary React to a match
// @Tags match
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match id"
// @Param request body dto.ReactRequestDTO true "Reaction"
// @Success 200 {object} dto.MatchDTO
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/match/{id}/react [post]
func (h *Handler) React(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := telegramIDFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match id")
		return
	}

	var req dto.ReactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Reaction must be interested or passed")
		return
	}

	match, err := h.matchService.React(r.Context(), matchID, telegramID, req.Reaction)
	switch {
	case errors.Is(err, matchservice.ErrInvalidReaction):
		utils.RespondWithError(w, http.StatusBadRequest, "Reaction must be interested or passed")
		return
	case errors.Is(err, matchservice.ErrMatchNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Match not found")
		return
	case errors.Is(err, matchservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, matchservice.ErrAlreadyReacted):
		utils.RespondWithError(w, http.StatusConflict, "Reaction already recorded")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewMatchDTO(match))
}

// ListMatches godoc
// @Summary List own matches
// @Tags match
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MatchDTO
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/matches [get]
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := telegramIDFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matches, err := h.matchService.ListMatches(r.Context(), telegramID)
	switch {
	case errors.Is(err, matchservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := make([]dto.MatchDTO, 0, len(matches))
	for i := range matches {
		result = append(result, *dto.NewMatchDTO(&matches[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) respondMatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchservice.ErrUserNotFound) || errors.Is(err, userservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, matchservice.ErrInsufficientBalance):
		utils.RespondWithError(w, http.StatusPaymentRequired, "Insufficient balance")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func newMatchResponse(result *matchservice.Result) dto.MatchResponseDTO {
	resp := dto.MatchResponseDTO{
		Found:   result.Found,
		Charged: result.Charged,
	}
	if result.Found {
		resp.Match = dto.NewMatchDTO(result.Match)
	} else {
		resp.Message = "No candidates available right now"
	}
	return resp
}

func toDomainFilters(f dto.MatchFiltersDTO) *domain.MatchFilters {
	filters := &domain.MatchFilters{
		Gender:    f.Gender,
		Location:  f.Location,
		Interests: f.Interests,
	}
	if f.AgeRange != nil {
		filters.AgeRange = &domain.AgeRange{Min: f.AgeRange.Min, Max: f.AgeRange.Max}
	}
	return filters
}
