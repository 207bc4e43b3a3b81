package validate

import (
	"testing"
	"time"

	"github.com/slotpilot/bot-dashboard-backend/internal/models"
)

func validCard() models.Card {
	return models.Card{
		Number:      "4111111111111111",
		ExpiryMonth: 12,
		ExpiryYear:  time.Now().Year() + 2,
		CVV:         "123",
		HolderName:  "Ayşe Yılmaz",
	}
}

func TestCard_Valid(t *testing.T) {
	result := Card(validCard())
	if !result.Valid {
		t.Fatalf("Expected valid card, got errors: %v", result.Errors)
	}
}

func TestLuhn(t *testing.T) {
	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{"Visa test number", "4111111111111111", true},
		{"Mastercard test number", "5555555555554444", true},
		{"Amex test number", "378282246310005", true},
		{"Single digit altered", "4111111111111112", false},
		{"Digit altered mid-number", "4111211111111111", false},
		{"Contains letter", "411111111111111a", false},
		{"Too short", "41111111111", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := luhnValid(tt.number); got != tt.valid {
				t.Errorf("luhnValid(%q) = %v, want %v", tt.number, got, tt.valid)
			}
		})
	}
}

func TestCard_Expiry(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		month int
		year  int
		valid bool
	}{
		{"Current month", 8, 2026, true},
		{"Next month", 9, 2026, true},
		{"One month in the past", 7, 2026, false},
		{"Last month of window", 8, 2036, true},
		{"Eleven years in the future", 8, 2037, false},
		{"Month zero", 0, 2026, false},
		{"Month thirteen", 13, 2026, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			card.ExpiryMonth = tt.month
			card.ExpiryYear = tt.year

			result := cardAt(card, now)
			_, hasErr := result.Errors["expiry"]
			if tt.valid && hasErr {
				t.Errorf("Expected %d/%d to be valid, got %q", tt.month, tt.year, result.Errors["expiry"])
			}
			if !tt.valid && !hasErr {
				t.Errorf("Expected %d/%d to be rejected", tt.month, tt.year)
			}
		})
	}
}

func TestCard_CVV(t *testing.T) {
	tests := []struct {
		cvv   string
		valid bool
	}{
		{"123", true},
		{"1234", true},
		{"12", false},
		{"12345", false},
		{"12a", false},
		{"", false},
	}

	for _, tt := range tests {
		card := validCard()
		card.CVV = tt.cvv

		result := Card(card)
		_, hasErr := result.Errors["cvv"]
		if tt.valid && hasErr {
			t.Errorf("Expected CVV %q to be valid", tt.cvv)
		}
		if !tt.valid && !hasErr {
			t.Errorf("Expected CVV %q to be rejected", tt.cvv)
		}
	}
}

func TestCard_HolderName(t *testing.T) {
	tests := []struct {
		name   string
		holder string
		valid  bool
	}{
		{"Plain Latin", "John Smith", true},
		{"Turkish diacritics", "Çağrı Öztürk", true},
		{"Dotless i", "Işıl Şahin", true},
		{"Hyphenated", "Anne-Marie", true},
		{"Single letter", "A", false},
		{"Empty", "", false},
		{"Digits", "J0hn", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := holderNameValid(tt.holder); got != tt.valid {
				t.Errorf("holderNameValid(%q) = %v, want %v", tt.holder, got, tt.valid)
			}
		})
	}
}

func TestCard_FieldErrorMap(t *testing.T) {
	card := models.Card{
		Number:      "1234567890123456",
		ExpiryMonth: 1,
		ExpiryYear:  2000,
		CVV:         "1",
		HolderName:  "X",
	}

	result := Card(card)
	if result.Valid {
		t.Fatal("Expected invalid result")
	}

	for _, field := range []string{"number", "expiry", "cvv", "holderName"} {
		if _, ok := result.Errors[field]; !ok {
			t.Errorf("Expected error for field %q", field)
		}
	}
}

func TestCard_NumberWithSpaces(t *testing.T) {
	card := validCard()
	card.Number = "4111 1111 1111 1111"

	result := Card(card)
	if _, hasErr := result.Errors["number"]; hasErr {
		t.Errorf("Expected spaced number to validate, got %q", result.Errors["number"])
	}
}
