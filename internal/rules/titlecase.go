// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"strings"
	"unicode"
)

// minorWords is the closed list of words that stay lowercase in Title
// Case unless they open or close the name: articles, short prepositions,
// and coordinating conjunctions. Loaded once, read-only.
var minorWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"and": true, "but": true, "or": true, "nor": true, "for": true, "so": true, "yet": true,
	"as": true, "at": true, "by": true, "in": true, "of": true, "off": true,
	"on": true, "per": true, "to": true, "up": true, "via": true, "with": true, "from": true,
}

// isAcronym reports whether the word (punctuation trimmed) is a run of
// 2-5 uppercase letters. Such tokens survive case conversion verbatim.
func isAcronym(word string) bool {
	w := strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) })
	runes := []rune(w)
	if len(runes) < 2 || len(runes) > 5 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// sentenceCase converts a title to sentence case: only the first word and
// the first word after a colon or sentence break keep a capital; acronyms
// are preserved; everything else is lowercased.
func sentenceCase(title string) string {
	words := strings.Fields(title)
	out := make([]string, len(words))
	capNext := true
	for i, w := range words {
		switch {
		case isAcronym(w):
			out[i] = w
		case capNext:
			out[i] = capitalizeWord(w)
		default:
			out[i] = strings.ToLower(w)
		}
		capNext = strings.HasSuffix(w, ":") || strings.HasSuffix(w, ".") || strings.HasSuffix(w, "?")
	}
	return strings.Join(out, " ")
}

// titleCaseName converts a journal or conference name to Title Case,
// keeping minor words lowercase except in first or last position.
func titleCaseName(name string) string {
	words := strings.Fields(name)
	out := make([]string, len(words))
	for i, w := range words {
		if isAcronym(w) {
			out[i] = w
			continue
		}
		bare := strings.ToLower(strings.Trim(w, ",.;:"))
		if minorWords[bare] && i > 0 && i < len(words)-1 {
			out[i] = strings.ToLower(w)
			continue
		}
		out[i] = capitalizeWord(w)
	}
	return strings.Join(out, " ")
}

// capitalizeWord uppercases the first letter and lowercases the rest.
func capitalizeWord(w string) string {
	runes := []rune(w)
	for i, r := range runes {
		if unicode.IsLetter(r) {
			upper := string(runes[:i]) + string(unicode.ToUpper(r)) + strings.ToLower(string(runes[i+1:]))
			return upper
		}
	}
	return w
}
