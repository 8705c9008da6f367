package validators

import "strings"

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15

	// MaxPhoneLength matches the bookings.phone column.
	MaxPhoneLength = 32
)

// IsPhoneValid accepts an optional leading "+", digits and the usual
// separators (space, dash, dot, parentheses), with 7 to 15 digits in total
// and at most MaxPhoneLength characters.
func IsPhoneValid(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" || len(phone) > MaxPhoneLength {
		return false
	}

	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ', r == '-', r == '.', r == '(', r == ')':
		default:
			return false
		}
	}

	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}
