package dictionary

import "strings"

// MinLength is the shortest entry worth keeping; shorter words can never be
// submitted.
const MinLength = 3

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en", "":
		return filterEnglish
	default:
		return func(word string) bool { return len([]rune(word)) >= MinLength }
	}
}

// KeepAll keeps every non-empty word.
func KeepAll(word string) bool {
	return word != ""
}

func filterEnglish(word string) bool {
	if len(word) < MinLength {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
