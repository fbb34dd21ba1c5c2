package utils

import "regexp"

// emailPattern accepts the basic local@domain.tld shape: exactly one
// "@", a domain with at least one dot, no embedded whitespace.
var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w.-]+\.\w+$`)

// IsValidEmail reports whether addr looks like a deliverable address.
func IsValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}
