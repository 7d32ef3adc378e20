package dto

import (
	"time"

	"github.com/GlebRadaev/starmatch/internal/domain"
)

type MatchFiltersDTO struct {
	AgeRange  *AgeRangeDTO `json:"ageRange,omitempty"`
	Gender    string       `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Location  string       `json:"location,omitempty" validate:"omitempty,max=100"`
	Interests []string     `json:"interests,omitempty" validate:"omitempty,max=20,dive,max=50"`
}

type AgeRangeDTO struct {
	Min int `json:"min" validate:"gte=18" example:"25"`
	Max int `json:"max" validate:"gtefield=Min" example:"35"`
}

type FilteredMatchRequestDTO struct {
	Filters MatchFiltersDTO `json:"filters"`
}

type ReactRequestDTO struct {
	Reaction string `json:"reaction" validate:"required,oneof=interested passed" example:"interested"`
}

type MatchDTO struct {
	ID          int      `json:"id" example:"1"`
	MatchType   string   `json:"matchType" example:"random"`
	Status      string   `json:"status" example:"pending"`
	User1Status string   `json:"user1Status"`
	User2Status string   `json:"user2Status"`
	User1       *UserDTO `json:"user1,omitempty"`
	User2       *UserDTO `json:"user2,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	ExpiresAt   string   `json:"expiresAt"`
}

// MatchResponseDTO distinguishes "charged but nothing found" from "not
// charged": Charged reports whether the entitlement (free match or stars)
// was consumed even when Found is false.
type MatchResponseDTO struct {
	Found   bool      `json:"found"`
	Charged bool      `json:"charged"`
	Message string    `json:"message,omitempty"`
	Match   *MatchDTO `json:"match,omitempty"`
}

func NewMatchDTO(match *domain.Match) *MatchDTO {
	m := &MatchDTO{
		ID:          match.ID,
		MatchType:   match.MatchType,
		Status:      match.Status,
		User1Status: match.User1Status,
		User2Status: match.User2Status,
		CreatedAt:   match.CreatedAt.Format(time.RFC3339),
		ExpiresAt:   match.ExpiresAt.Format(time.RFC3339),
	}
	if match.User1 != nil {
		user1 := NewUserDTO(match.User1)
		m.User1 = &user1
	}
	if match.User2 != nil {
		user2 := NewUserDTO(match.User2)
		m.User2 = &user2
	}
	return m
}
