package validate

import "regexp"

var (
	// E.164-ish with optional leading zero national formats.
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

	// One letter followed by 6-9 alphanumerics covers the passport
	// formats the booking portal accepts.
	passportPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{6,9}$`)
)

// Phone reports whether the value is an acceptable phone number.
func Phone(value string) bool {
	return phonePattern.MatchString(value)
}

// Passport reports whether the value is an acceptable passport number.
func Passport(value string) bool {
	return passportPattern.MatchString(value)
}

// AppointmentFields validates the free-form fields of an appointment
// request and returns a per-field error map, empty when valid.
func AppointmentFields(phone, passport string) map[string]string {
	errs := make(map[string]string)
	if !Phone(phone) {
		errs["phone"] = "Phone number must be 10-15 digits, optionally prefixed with +"
	}
	if !Passport(passport) {
		errs["passportNumber"] = "Passport number must start with a letter followed by 6-9 letters or digits"
	}
	return errs
}
