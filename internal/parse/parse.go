// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse turns raw citation strings into structured Citation records.
// Parsing never fails: an input that defeats every pattern still yields a
// minimal record (title = whole input, type unknown) so the pipeline always
// produces a result for it.
package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/cite-check/pkg/types"
)

const monthAlt = `January|February|March|April|May|June|July|August|September|October|November|December`
const seasonAlt = `Spring|Summer|Fall|Autumn|Winter`

// yearTokenRe locates the parenthesized date token that separates the
// author segment from the rest of the citation. It accepts a 4-digit year,
// an optional lowercase disambiguation suffix, an optional richer date
// fragment (month + day, day range, or season), and the literal "n.d." and
// "in press" tokens.
var yearTokenRe = regexp.MustCompile(
	`\((?:(\d{4})([a-z])?(?:,\s*((?:` + monthAlt + `)(?:\s+\d{1,2}(?:\s*[-–]\s*\d{1,2})?)?|(?:` + seasonAlt + `)))?|(n\.d\.)|(in press))\)`)

// blockSplitRe separates blank-line-delimited citation blocks.
var blockSplitRe = regexp.MustCompile(`\r?\n\s*\r?\n`)

// ParseMany splits text on blank lines (two or more consecutive line
// breaks) and parses each non-empty block independently.
func ParseMany(text string) []types.Citation {
	var out []types.Citation
	for _, block := range blockSplitRe.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		out = append(out, ParseOne(block))
	}
	return out
}

// ParseOne parses a single citation string. It never returns an error: when
// no date token can be located the whole input becomes the fallback title
// and the record is typed unknown.
func ParseOne(text string) types.Citation {
	raw := strings.TrimSpace(text)
	c := types.Citation{RawText: raw, Type: types.TypeUnknown}

	loc := yearTokenRe.FindStringSubmatchIndex(raw)
	if loc == nil {
		c.Title = raw
		return c
	}

	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return raw[loc[2*i]:loc[2*i+1]]
	}

	switch {
	case group(4) != "":
		c.Year = "n.d."
	case group(5) != "":
		c.Year = "in press"
	default:
		c.Year = group(1)
		c.YearSuffix = group(2)
		if frag := group(3); frag != "" {
			c.FullDate = c.Year + ", " + frag
		}
	}

	c.Authors = parseAuthors(raw[:loc[0]])
	parseAfterYear(&c, raw[loc[1]:])

	// A record with a URL but no DOI and no recognized shape is a web
	// citation.
	if c.Type == types.TypeUnknown && c.URL != "" && c.DOI == "" {
		c.Type = types.TypeWeb
	}
	return c
}

// BeforeYear returns the substring of raw preceding the date token. The
// ampersand rule inspects only this region so that "and" inside a title
// cannot produce a false positive. ok is false when no date token exists.
func BeforeYear(raw string) (string, bool) {
	loc := yearTokenRe.FindStringIndex(raw)
	if loc == nil {
		return "", false
	}
	return raw[:loc[0]], true
}

// splitSegments splits text into period-delimited segments. A period
// immediately followed by a space is a boundary only at parenthesis depth
// zero, which keeps tokens like "(pp. 20–31)" intact.
func splitSegments(text string) []string {
	var segs []string
	depth := 0
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth == 0 && i+1 < len(runes) && runes[i+1] == ' ' {
				segs = append(segs, string(runes[start:i]))
				i++
				start = i + 1
			}
		}
	}
	if start < len(runes) {
		segs = append(segs, string(runes[start:]))
	}

	var out []string
	for _, s := range segs {
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, ".")
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
