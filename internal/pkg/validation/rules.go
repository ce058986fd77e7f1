package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// RegistrationEmailPattern is the deliberately loose check applied at sign-up
	RegistrationEmailPattern = `^.+@.+\..+$`

	// MobilePattern accepts an optional leading + followed by 10 to 15 digits
	MobilePattern = `^\+?[0-9]{10,15}$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	RegistrationEmail *regexp.Regexp
	Mobile            *regexp.Regexp
}{
	RegistrationEmail: regexp.MustCompile(RegistrationEmailPattern),
	Mobile:            regexp.MustCompile(MobilePattern),
}

// IsRegistrationEmail reports whether email passes the sign-up pattern
func IsRegistrationEmail(email string) bool {
	return CompiledPatterns.RegistrationEmail.MatchString(email)
}
