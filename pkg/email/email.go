package email

import (
	"strings"
	"unicode"
)

// DeriveDisplayName builds a human-readable reviewer name from an email
// address, for reviews submitted without a name. "ana.souza@example.com"
// becomes "Ana Souza"; an empty or unusable local part falls back to
// "Anonymous".
func DeriveDisplayName(email string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	// Trailing digits ("ana.souza42") read poorly in a public review list.
	filtered := parts[:0]
	for _, p := range parts {
		if strings.IndexFunc(p, unicode.IsLetter) >= 0 {
			filtered = append(filtered, capitalize(p))
		}
	}

	if len(filtered) == 0 {
		return "Anonymous"
	}
	return strings.Join(filtered, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
