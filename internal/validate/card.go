package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

// CardResult reports overall validity plus a per-field error map the
// dashboard renders inline.
type CardResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

const maxExpiryYears = 10

var cvvPattern = regexp.MustCompile(`^[0-9]{3,4}$`)

// Card validates payment card details: Luhn checksum on the number,
// expiry inside [current month, now + 10 years], 3-4 digit CVV, and a
// holder name of at least two letters (Latin or Turkish).
func Card(card models.Card) CardResult {
	return cardAt(card, time.Now())
}

func cardAt(card models.Card, now time.Time) CardResult {
	errs := make(map[string]string)

	number := strings.ReplaceAll(strings.ReplaceAll(card.Number, " ", ""), "-", "")
	if number == "" {
		errs["number"] = "Card number is required"
	} else if !luhnValid(number) {
		errs["number"] = "Card number failed checksum validation"
	}

	if card.ExpiryMonth < 1 || card.ExpiryMonth > 12 {
		errs["expiry"] = "Expiry month must be between 1 and 12"
	} else {
		expiry := time.Date(card.ExpiryYear, time.Month(card.ExpiryMonth), 1, 0, 0, 0, 0, time.UTC)
		current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		if expiry.Before(current) {
			errs["expiry"] = "Card has expired"
		} else if expiry.After(current.AddDate(maxExpiryYears, 0, 0)) {
			errs["expiry"] = "Expiry date is too far in the future"
		}
	}

	if !cvvPattern.MatchString(card.CVV) {
		errs["cvv"] = "CVV must be 3 or 4 digits"
	}

	if !holderNameValid(card.HolderName) {
		errs["holderName"] = "Cardholder name must contain at least 2 letters"
	}

	return CardResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// luhnValid implements the standard mod-10 checksum: doubling every
// second digit from the right, subtracting 9 when the result exceeds 9.
func luhnValid(number string) bool {
	if len(number) < 12 {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}

// turkishLetters are the diacritics not covered by the Latin script check
// alone in some normalization forms; accepted explicitly.
const turkishLetters = "çÇğĞıİöÖşŞüÜ"

func holderNameValid(name string) bool {
	letters := 0
	for _, r := range name {
		if unicode.Is(unicode.Latin, r) || strings.ContainsRune(turkishLetters, r) {
			letters++
		} else if r != ' ' && r != '-' && r != '\'' && r != '.' {
			return false
		}
	}
	return letters >= 2
}
