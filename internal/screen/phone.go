package screen

import "strings"

// CountryPrefix is the dialing prefix phone numbers are stored with.
const CountryPrefix = "+20"

// ToNational strips the stored prefix for display in an editor.
func ToNational(international string) string {
	s := strings.TrimSpace(international)
	return strings.TrimPrefix(s, CountryPrefix)
}

// ToInternational prepends the prefix on submit. Numbers already in
// international form pass through.
func ToInternational(national string) string {
	s := strings.TrimSpace(national)
	if s == "" || strings.HasPrefix(s, "+") {
		return s
	}
	return CountryPrefix + s
}
