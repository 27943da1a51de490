// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// shortCapsLetters is the longest all-caps single word treated as noise
// (page furniture such as "NEW", "TIP", "PAGE").
const shortCapsLetters = 4

// isNoise reports whether a line cannot be a heading regardless of its
// font: too short, no letters at all, or a short all-caps single word.
func isNoise(text string, minLen int) bool {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minLen {
		return true
	}

	letters, upper := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return true
	}
	if len(strings.Fields(text)) == 1 && letters <= shortCapsLetters && upper == letters {
		return true
	}
	return false
}
