package dto

import (
	"time"

	"github.com/GlebRadaev/starmatch/internal/domain"
)

type UserDTO struct {
	TelegramID        int64    `json:"telegramId" example:"123456789"`
	Username          string   `json:"username" example:"alice"`
	FirstName         string   `json:"firstName" example:"Alice"`
	LastName          string   `json:"lastName,omitempty"`
	PhotoURL          string   `json:"photoUrl,omitempty"`
	Bio               string   `json:"bio,omitempty"`
	Age               int      `json:"age,omitempty" example:"29"`
	Gender            string   `json:"gender" example:"female"`
	Location          string   `json:"location,omitempty" example:"Berlin"`
	Interests         []string `json:"interests,omitempty"`
	StarsBalance      int      `json:"starsBalance" example:"20"`
	ReferralCode      string   `json:"referralCode,omitempty"`
	ReferralCount     int      `json:"referralCount"`
	DailyLoginStreak  int      `json:"dailyLoginStreak"`
	FreeMatchesEarned int      `json:"freeMatchesEarned"`
	IsPremium         bool     `json:"isPremium"`
	IsActive          bool     `json:"isActive"`
	CreatedAt         string   `json:"createdAt,omitempty"`
}

func NewUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		TelegramID:        user.TelegramID,
		Username:          user.Username,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		PhotoURL:          user.PhotoURL,
		Bio:               user.Bio,
		Age:               user.Age,
		Gender:            user.Gender,
		Location:          user.Location,
		Interests:         user.Interests,
		StarsBalance:      user.StarsBalance,
		ReferralCode:      user.ReferralCode,
		ReferralCount:     user.ReferralCount,
		DailyLoginStreak:  user.DailyLoginStreak,
		FreeMatchesEarned: user.FreeMatchesEarned,
		IsPremium:         user.IsPremium,
		IsActive:          user.IsActive,
		CreatedAt:         user.CreatedAt.Format(time.RFC3339),
	}
}

type UpdateProfileRequestDTO struct {
	Age       *int     `json:"age,omitempty" validate:"omitempty,gte=18,lte=120"`
	Gender    *string  `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Location  *string  `json:"location,omitempty" validate:"omitempty,max=100"`
	Interests []string `json:"interests,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Bio       *string  `json:"bio,omitempty" validate:"omitempty,max=500"`
}
