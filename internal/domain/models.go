package domain

import "time"

const (
	GenderMale   string = "male"
	GenderFemale string = "female"
	GenderOther  string = "other"
)

const (
	MatchTypeRandom   string = "random"
	MatchTypeFiltered string = "filtered"
)

const (
	// MatchStatusPending waits for both reactions.
	MatchStatusPending string = "pending"
	// MatchStatusAccepted means both sides reacted interested.
	MatchStatusAccepted string = "accepted"
	// MatchStatusRejected means at least one side passed.
	MatchStatusRejected string = "rejected"
	// MatchStatusExpired is set by the sweeper after the 24h window.
	MatchStatusExpired string = "expired"
)

const (
	ReactionPending    string = "pending"
	ReactionInterested string = "interested"
	ReactionPassed     string = "passed"
)

const (
	TransactionTypePayment       string = "payment"
	TransactionTypeReferralBonus string = "referral_bonus"
	TransactionTypeStreakBonus   string = "streak_bonus"
	TransactionTypeRefund        string = "refund"
)

const (
	TransactionStatusPending   string = "pending"
	TransactionStatusCompleted string = "completed"
	TransactionStatusFailed    string = "failed"
	TransactionStatusRefunded  string = "refunded"
)

type User struct {
	ID                int        `db:"id"`
	TelegramID        int64      `db:"telegram_id"`
	Username          string     `db:"username"`
	FirstName         string     `db:"first_name"`
	LastName          string     `db:"last_name"`
	PhotoURL          string     `db:"photo_url"`
	Bio               string     `db:"bio"`
	Age               int        `db:"age"`
	Gender            string     `db:"gender"`
	Location          string     `db:"location"`
	Interests         []string   `db:"interests"`
	StarsBalance      int        `db:"stars_balance"`
	ReferralCode      string     `db:"referral_code"`
	ReferredBy        int        `db:"referred_by"`
	ReferralCount     int        `db:"referral_count"`
	DailyLoginStreak  int        `db:"daily_login_streak"`
	LastLoginDate     *time.Time `db:"last_login_date"`
	FreeMatchesEarned int        `db:"free_matches_earned"`
	IsPremium         bool       `db:"is_premium"`
	IsActive          bool       `db:"is_active"`
	CreatedAt         time.Time  `db:"created_at"`
}

type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type MatchFilters struct {
	AgeRange  *AgeRange `json:"ageRange,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Location  string    `json:"location,omitempty"`
	Interests []string  `json:"interests,omitempty"`
}

type Match struct {
	ID          int           `db:"id"`
	User1ID     int           `db:"user1_id"`
	User2ID     int           `db:"user2_id"`
	MatchType   string        `db:"match_type"`
	Status      string        `db:"status"`
	User1Status string        `db:"user1_status"`
	User2Status string        `db:"user2_status"`
	Filters     *MatchFilters `db:"filters"`
	CreatedAt   time.Time     `db:"created_at"`
	ExpiresAt   time.Time     `db:"expires_at"`

	// Populated on read paths that join both sides.
	User1 *User `db:"-"`
	User2 *User `db:"-"`
}

type TransactionMetadata struct {
	MatchType    string `json:"matchType,omitempty"`
	ReferralCode string `json:"referralCode,omitempty"`
	StreakDays   int    `json:"streakDays,omitempty"`
}

type Transaction struct {
	ID          int                  `db:"id"`
	UserID      int                  `db:"user_id"`
	TelegramID  int64                `db:"telegram_id"`
	Type        string               `db:"type"`
	Amount      int                  `db:"amount"`
	Description string               `db:"description"`
	PaymentID   string               `db:"payment_id"`
	Status      string               `db:"status"`
	Metadata    *TransactionMetadata `db:"metadata"`
	CreatedAt   time.Time            `db:"created_at"`
}
