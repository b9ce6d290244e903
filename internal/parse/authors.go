// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/cite-check/pkg/types"
)

// authorRe matches one individual author: a surname (optionally preceded
// by lowercase name particles like "van" or "de"), a comma, and an
// initials block. The initials block accepts dotted forms ("B. Y.",
// "b.y.") and bare spaced capitals ("B Y").
var authorRe = regexp.MustCompile(
	`((?:(?:van|von|de|der|den|del|da|di|du|la|le|ter)\s+)*[A-Z][A-Za-z'-]+(?:[-\s][A-Z][A-Za-z'-]+)*),\s*((?:[A-Za-z]\.[\s-]*)+|[A-Z](?:\s+[A-Z])*\b)`)

// etAlRe strips a trailing "et al." marker from the author segment.
var etAlRe = regexp.MustCompile(`,?\s*et\s+al\.?\s*$`)

var apostropheReplacer = strings.NewReplacer("’", "'", "ʼ", "'", "´", "'", "`", "'")

// parseAuthors extracts the author list from the segment preceding the
// date token. When no individual author matches but the segment is
// non-empty, the whole segment becomes a single group author; this is the
// fallback for institutional citations.
func parseAuthors(segment string) []types.Author {
	s := apostropheReplacer.Replace(segment)
	s = etAlRe.ReplaceAllString(s, "")
	for _, ellipsis := range []string{". . .", "…", "..."} {
		s = strings.ReplaceAll(s, ellipsis, " ")
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var authors []types.Author
	for _, part := range strings.Split(s, "&") {
		for _, m := range authorRe.FindAllStringSubmatch(part, -1) {
			authors = append(authors, types.Author{
				LastName: strings.TrimSpace(m[1]),
				Initials: NormalizeInitials(m[2]),
			})
		}
	}
	if len(authors) > 0 {
		return authors
	}

	name := strings.TrimSpace(s)
	name = strings.TrimSuffix(name, ".")
	name = strings.TrimRight(name, ", ")
	if name == "" {
		return nil
	}
	return []types.Author{{LastName: name, IsGroup: true}}
}

// NormalizeInitials rewrites an initials block to the canonical
// "X. Y." form regardless of how it was punctuated or spaced:
// "b.y." and "B Y" both become "B. Y.".
func NormalizeInitials(raw string) string {
	var letters []rune
	for _, r := range raw {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
		}
	}
	if len(letters) == 0 {
		return ""
	}
	parts := make([]string, len(letters))
	for i, r := range letters {
		parts[i] = string(r) + "."
	}
	return strings.Join(parts, " ")
}

// editorInitialsRe matches a leading initials run in an initials-first
// editor name like "A. B. Editor".
var editorInitialsRe = regexp.MustCompile(`^((?:[A-Z]\.\s*)+)(.+)$`)

// parseEditorNames parses an editor list as it appears inside a chapter
// source ("A. Editor & B. Editor" or author-style "Editor, A."). Names
// that fit neither shape are kept whole as the last name.
func parseEditorNames(s string) []types.Author {
	s = apostropheReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return nil
	}

	// Author-style editor lists parse with the author matcher.
	if ms := authorRe.FindAllStringSubmatch(s, -1); len(ms) > 0 {
		eds := make([]types.Author, 0, len(ms))
		for _, m := range ms {
			eds = append(eds, types.Author{
				LastName: strings.TrimSpace(m[1]),
				Initials: NormalizeInitials(m[2]),
			})
		}
		return eds
	}

	var eds []types.Author
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '&' || r == ',' }) {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "and") {
			continue
		}
		if m := editorInitialsRe.FindStringSubmatch(part); m != nil {
			eds = append(eds, types.Author{
				LastName: strings.TrimSpace(m[2]),
				Initials: NormalizeInitials(m[1]),
			})
			continue
		}
		eds = append(eds, types.Author{LastName: part})
	}
	return eds
}
