package validate

import "testing"

func TestPhone(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"+905551234567", true},
		{"05551234567", true},
		{"1234567890", true},
		{"+12345678901234", true},
		{"12345", false},
		{"+90 555 123 4567", false},
		{"phone", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Phone(tt.value); got != tt.valid {
			t.Errorf("Phone(%q) = %v, want %v", tt.value, got, tt.valid)
		}
	}
}

func TestPassport(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"U12345678", true},
		{"AB1234567", true},
		{"A123456", true},
		{"123456789", false},
		{"u12345678", false},
		{"A12", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Passport(tt.value); got != tt.valid {
			t.Errorf("Passport(%q) = %v, want %v", tt.value, got, tt.valid)
		}
	}
}

func TestAppointmentFields(t *testing.T) {
	errs := AppointmentFields("+905551234567", "U12345678")
	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}

	errs = AppointmentFields("bad", "bad")
	if _, ok := errs["phone"]; !ok {
		t.Error("Expected phone error")
	}
	if _, ok := errs["passportNumber"]; !ok {
		t.Error("Expected passportNumber error")
	}
}
