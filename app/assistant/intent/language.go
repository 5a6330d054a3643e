package intent

import (
	"unicode"

	"ShopMate/app/assistant/session"
)

// DetectLanguage tags a message by script: any Cyrillic letter (including
// the Ukrainian-specific і/ї/є/ґ) means uk, everything else en. Pure
// function of the text, independent of prior context.
func DetectLanguage(message string) session.Lang {
	for _, r := range message {
		if unicode.Is(unicode.Cyrillic, r) {
			return session.LangUK
		}
	}
	return session.LangEN
}
