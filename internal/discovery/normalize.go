package discovery

import (
	"regexp"
	"strings"
	"unicode"
)

// separatorRun matches one or more of the separator characters found in
// operation identifiers across naming conventions (GitHub's "meta/root",
// Slack's "admin_apps_approve", Twilio's "v2010/Accounts", ...).
var separatorRun = regexp.MustCompile(`[/_.-]+`)

// NormalizeName converts an arbitrary operation identifier into a
// deterministic camelCase tool name:
//
//	"meta/root"           -> "metaRoot"
//	"admin_apps_approve"  -> "adminAppsApprove"
//	"FetchAccount"        -> "fetchAccount"
//	"SMS/send"            -> "smsSend"
//
// Inputs that produce no tokens (e.g. "///") are returned unchanged so the
// caller can reject them via IsValidName.
func NormalizeName(name string) string {
	if name == "" {
		return name
	}

	// Split camel/Pascal boundaries: a space before any uppercase letter
	// that follows a lowercase letter or digit. Digit-adjacent uppercase
	// keeps version tokens like "v2010Accounts" intact after reassembly.
	var spaced strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				spaced.WriteByte(' ')
			}
		}
		spaced.WriteRune(r)
	}

	words := strings.Fields(separatorRun.ReplaceAllString(spaced.String(), " "))
	if len(words) == 0 {
		return name
	}

	var out strings.Builder
	out.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		out.WriteString(capitalize(w))
	}
	return out.String()
}

// capitalize upper-cases the first rune and lower-cases the remainder, so
// an acronym token like "API" becomes "Api".
func capitalize(word string) string {
	r := []rune(word)
	if len(r) == 0 {
		return word
	}
	return string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
}

// IsValidName reports whether a normalized name is usable as a tool name:
// non-empty, starting with a letter, with at least one alphanumeric rune.
func IsValidName(name string) bool {
	runes := []rune(name)
	if len(runes) == 0 || !unicode.IsLetter(runes[0]) {
		return false
	}
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
