package synth

import (
	"strings"
	"unicode"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/types"
)

// containsWord reports whether word occurs in text with a word boundary on
// both sides.
func containsWord(text, word string) bool {
	for i := 0; i <= len(text)-len(word); {
		j := strings.Index(text[i:], word)
		if j < 0 {
			return false
		}
		start, end := i+j, i+j+len(word)
		left := start == 0 || !isWordByte(text[start-1])
		right := end == len(text) || !isWordByte(text[end])
		if left && right {
			return true
		}
		i = start + 1
	}
	return false
}

func isWordByte(b byte) bool {
	r := rune(b)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// destination picks a display location: the user's location when given,
// otherwise the text after " to " or " in " in the title.
func destination(gc types.GoalContext) string {
	if loc := strings.TrimSpace(gc.UserLocation); loc != "" {
		return loc
	}
	title := strings.TrimSpace(gc.Title)
	lower := strings.ToLower(title)
	for _, sep := range []string{" to ", " in "} {
		if i := strings.LastIndex(lower, sep); i >= 0 {
			if rest := strings.TrimSpace(title[i+len(sep):]); rest != "" {
				return rest
			}
		}
	}
	return "TBD"
}
