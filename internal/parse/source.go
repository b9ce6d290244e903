// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/cite-check/pkg/types"
)

// Identifier and descriptor patterns consumed from the post-year segment.
var (
	doiURLRe    = regexp.MustCompile(`https?://(?:dx\.)?doi\.org/\S+`)
	doiPrefixRe = regexp.MustCompile(`(?i)doi:\s*10\.\S+`)
	urlRe       = regexp.MustCompile(`https?://\S+`)
	editionRe   = regexp.MustCompile(`\((\w+?)(?:st|nd|rd|th)?\s+ed\.\)`)
	bracketRe   = regexp.MustCompile(`\[([^\]]+)\]`)
	reportNoRe  = regexp.MustCompile(`\(Report No\.\s*([^)]+)\)`)
)

var conferenceKeywords = []string{
	"paper presentation", "poster session", "symposium", "conference session",
}

// parseAfterYear consumes the segment following the date token in a fixed
// order. Each step removes what it matched from the remainder so later
// steps only ever see unclaimed text.
func parseAfterYear(c *types.Citation, after string) {
	rem := strings.TrimSpace(after)
	rem = strings.TrimPrefix(rem, ".")
	rem = strings.TrimSpace(rem)

	// Identifier first: resolver-URL DOI, then prefix DOI, then bare URL.
	if m := doiURLRe.FindString(rem); m != "" {
		c.DOI = m
		c.URL = m
		rem = strings.Replace(rem, m, "", 1)
	} else if m := doiPrefixRe.FindString(rem); m != "" {
		c.DOI = m
		rem = strings.Replace(rem, m, "", 1)
	} else if m := urlRe.FindString(rem); m != "" {
		c.URL = m
		rem = strings.Replace(rem, m, "", 1)
	}

	// An edition descriptor sitting before the first sentence boundary;
	// editions often ride inside the title-looking segment for books.
	if m := editionRe.FindStringSubmatchIndex(rem); m != nil {
		if dot := strings.Index(rem, ". "); dot < 0 || m[0] < dot {
			c.Edition = rem[m[2]:m[3]]
			rem = rem[:m[0]] + rem[m[1]:]
		}
	}

	// Bracketed artifact descriptor: conference vs dissertation/thesis.
	if m := bracketRe.FindStringSubmatch(rem); m != nil {
		inner := strings.TrimSpace(m[1])
		low := strings.ToLower(apostropheReplacer.Replace(inner))
		matched := false
		for _, kw := range conferenceKeywords {
			if strings.Contains(low, kw) {
				c.Type = types.TypeConference
				c.BracketType = inner
				matched = true
				break
			}
		}
		if !matched && (strings.Contains(low, "doctoral dissertation") || strings.Contains(low, "master's thesis")) {
			c.Type = types.TypeDissertation
			if i := strings.Index(inner, ","); i >= 0 {
				c.BracketType = strings.TrimSpace(inner[:i])
				c.Institution = strings.TrimSpace(inner[i+1:])
			} else {
				c.BracketType = inner
			}
			matched = true
		}
		if matched {
			rem = strings.Replace(rem, m[0], "", 1)
		}
	}

	// Report number parenthetical.
	if m := reportNoRe.FindStringSubmatch(rem); m != nil {
		c.ReportNumber = strings.TrimSpace(m[1])
		if c.Type == types.TypeUnknown {
			c.Type = types.TypeReport
		}
		rem = strings.Replace(rem, m[0], "", 1)
	}

	segs := splitSegments(rem)
	if len(segs) == 0 {
		c.Title = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rem), "."))
		return
	}
	c.Title = segs[0]
	sourceText := strings.Join(segs[1:], ". ")

	switch c.Type {
	case types.TypeConference:
		c.ConferenceName = sourceText
	case types.TypeDissertation:
		c.DatabaseName = sourceText
	case types.TypeReport:
		c.Publisher = sourceText
	default:
		if sourceText == "" {
			return
		}
		if applySourcePatterns(c, sourceText) {
			return
		}
		if applyBookHeuristics(c, sourceText) {
			return
		}
		c.Source = sourceText
		if c.Volume != "" || c.Issue != "" {
			c.Type = types.TypeJournal
		} else if c.URL != "" && c.DOI == "" {
			c.Type = types.TypeWeb
		}
	}
}

// sourcePattern pairs a matcher with its extractor. The table below is an
// explicit priority list evaluated top-down, first-match-wins: shorter,
// more general shapes (bare "N, pages") sit at the bottom so they cannot
// swallow text a more specific shape should claim. The order is part of
// the parser's contract.
type sourcePattern struct {
	name  string
	re    *regexp.Regexp
	apply func(c *types.Citation, m []string)
}

var sourcePatterns = []sourcePattern{
	{
		name: "edited chapter with publisher",
		re:   regexp.MustCompile(`^In\s+(.+?)\s*\(Eds?\.\),?\s*(.+?)\s*\(pp\.\s*(\d+\s*[-–]\s*\d+)\)\.?\s*(.*)$`),
		apply: func(c *types.Citation, m []string) {
			c.Type = types.TypeChapter
			c.Editors = parseEditorNames(m[1])
			c.Source = "In " + strings.TrimSpace(m[2])
			c.Pages = compactRange(m[3])
			c.Publisher = strings.TrimSpace(m[4])
		},
	},
	{
		name: "chapter with publisher",
		re:   regexp.MustCompile(`^In\s+(.+?)\s*\(pp\.\s*(\d+\s*[-–]\s*\d+)\)\.?\s+(.+)$`),
		apply: func(c *types.Citation, m []string) {
			c.Type = types.TypeChapter
			c.Source = "In " + strings.TrimSpace(m[1])
			c.Pages = compactRange(m[2])
			c.Publisher = strings.TrimSpace(m[3])
		},
	},
	{
		name: "chapter without publisher",
		re:   regexp.MustCompile(`^In\s+(.+?)\s*\(pp\.\s*(\d+\s*[-–]\s*\d+)\)\.?$`),
		apply: func(c *types.Citation, m []string) {
			c.Type = types.TypeChapter
			c.Source = "In " + strings.TrimSpace(m[1])
			c.Pages = compactRange(m[2])
		},
	},
	{
		name: "Vol. N, No. M, pp. X-Y",
		re:   regexp.MustCompile(`^(.+?),\s*Vol\.\s*(\d+),\s*No\.\s*(\d+),\s*pp\.\s*(\d+\s*[-–]\s*\d+)$`),
		apply: func(c *types.Citation, m []string) {
			c.Type = types.TypeJournal
			c.Source = strings.TrimSpace(m[1])
			c.Volume = "Vol. " + m[2]
			c.Issue = "No. " + m[3]
			c.Pages = "pp. " + compactRange(m[4])
		},
	},
	{
		name: "Vol. N(M), pp. X-Y",
		re:   regexp.MustCompile(`^(.+?),\s*Vol\.\s*(\d+)\s*\((\d+)\),\s*pp\.\s*(\d+\s*[-–]\s*\d+)$`),
		apply: func(c *types.Citation, m []string) {
			c.Type = types.TypeJournal
			c.Source = strings.TrimSpace(m[1])
			c.Volume = "Vol. " + m[2]
			c.Issue = m[3]
			c.Pages = "pp. " + compactRange(m[4])
		},
	},
	{
		name: "Vol. N, pp. X-Y",
		re:   regexp.MustCompile(`^(.+?),\s*Vol\.\s*(\d+),\s*pp\.\s*(\d+\s*[-–]\s*\d+)$`),
		apply: func(c *types.Citation, m []string) {
			c.Type = types.TypeJournal
			c.Source = strings.TrimSpace(m[1])
			c.Volume = "Vol. " + m[2]
			c.Pages = "pp. " + compactRange(m[3])
		},
	},
	{
		name: "N(M), X-Y",
		re:   regexp.MustCompile(`^(.+?),\s*(\d+)\s*\((\d+)\),\s*(\d+\s*[-–]\s*\d+)$`),
		apply: func(c *types.Citation, m []string) {
			c.Type = types.TypeJournal
			c.Source = strings.TrimSpace(m[1])
			c.Volume = m[2]
			c.Issue = m[3]
			c.Pages = compactRange(m[4])
		},
	},
	{
		name: "N, X-Y",
		re:   regexp.MustCompile(`^(.+?),\s*(\d+),\s*(\d+\s*[-–]\s*\d+)$`),
		apply: func(c *types.Citation, m []string) {
			c.Type = types.TypeJournal
			c.Source = strings.TrimSpace(m[1])
			c.Volume = m[2]
			c.Pages = compactRange(m[3])
		},
	},
}

// applySourcePatterns tries the ordered pattern table against the source
// text. The first pattern that matches consumes it.
func applySourcePatterns(c *types.Citation, sourceText string) bool {
	for _, p := range sourcePatterns {
		if m := p.re.FindStringSubmatch(sourceText); m != nil {
			p.apply(c, m)
			return true
		}
	}
	return false
}

// bookKeywordRe spots publisher-looking text.
var bookKeywordRe = regexp.MustCompile(`\b(?:Press|Publishers?|Publishing|Books)\b`)

// applyBookHeuristics types the citation as a book when an edition marker
// was captured or the remaining text looks like a publisher name. The
// publisher is the text after the last sentence boundary; anything before
// it is the book's own source text.
func applyBookHeuristics(c *types.Citation, sourceText string) bool {
	if c.Edition == "" && !bookKeywordRe.MatchString(sourceText) {
		return false
	}
	c.Type = types.TypeBook
	if i := strings.LastIndex(sourceText, ". "); i >= 0 {
		c.Source = strings.TrimSpace(sourceText[:i])
		c.Publisher = strings.TrimSpace(strings.TrimSuffix(sourceText[i+1:], "."))
	} else {
		c.Publisher = strings.TrimSpace(strings.TrimSuffix(sourceText, "."))
	}
	return true
}

// compactRange normalizes spacing inside a page range without touching the
// dash character itself; hyphen-vs-en-dash is the page rule's concern.
func compactRange(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}
