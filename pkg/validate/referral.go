package validate

import (
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

// Referral codes look like SM4561261212345467: a fixed prefix followed by a
// Luhn-valid digit string, so obviously broken codes are rejected before any
// database lookup.
const (
	ReferralPrefix = "SM"
	referralDigits = 10
)

func IsReferralCode(code string) bool {
	if !strings.HasPrefix(code, ReferralPrefix) {
		return false
	}
	digits := strings.TrimPrefix(code, ReferralPrefix)
	if digits == "" {
		return false
	}
	return goluhn.Validate(digits) == nil
}

func NewReferralCode() (string, error) {
	number := goluhn.Generate(referralDigits)
	return ReferralPrefix + number, nil
}
