// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fix applies auto-fixable violations to a copy of the citation,
// rebuilds the canonical APA 7 string, and computes the compliance score.
package fix

import (
	"regexp"
	"strconv"

	"github.com/pdiddy/cite-check/internal/rules"
	"github.com/pdiddy/cite-check/pkg/types"
)

// Result is the fixer's output: the corrected record, the reconstructed
// string, the fixes that were applied, and hints for the rest.
type Result struct {
	Corrected types.Citation
	Formatted string
	Applied   []types.AppliedFix
	Hints     []types.FixHint
}

// fieldSetters maps a violation's field identifier to the scalar it
// overwrites. Fixes that fit this 1:1 shape are purely declarative; the
// three that do not (author initials, ampersand, terminal period) are
// handled as named exceptions in Apply.
var fieldSetters = map[string]func(*types.Citation, string){
	"year":            func(c *types.Citation, v string) { c.Year = v },
	"title":           func(c *types.Citation, v string) { c.Title = v },
	"doi":             func(c *types.Citation, v string) { c.DOI = v },
	"url":             func(c *types.Citation, v string) { c.URL = v },
	"source":          func(c *types.Citation, v string) { c.Source = v },
	"volume":          func(c *types.Citation, v string) { c.Volume = v },
	"issue":           func(c *types.Citation, v string) { c.Issue = v },
	"pages":           func(c *types.Citation, v string) { c.Pages = v },
	"publisher":       func(c *types.Citation, v string) { c.Publisher = v },
	"edition":         func(c *types.Citation, v string) { c.Edition = v },
	"conference_name": func(c *types.Citation, v string) { c.ConferenceName = v },
	"database_name":   func(c *types.Citation, v string) { c.DatabaseName = v },
	"institution":     func(c *types.Citation, v string) { c.Institution = v },
}

// hintLibrary holds canned remediation guidance for violations the fixer
// cannot apply mechanically.
var hintLibrary = map[string]string{
	rules.RuleAuthorFormat:     "Check the original work for the author's full surname and initials; there is no safe automatic guess.",
	rules.RuleYearFormat:       "Look up the publication year on the work itself; use \"n.d.\" only when no date is published.",
	rules.RuleDOIPresence:      "Search crossref.org or the article's landing page for its DOI and append it as https://doi.org/...",
	rules.RuleDOIFormat:        "Replace the DOI with its https://doi.org/ resolver form.",
	rules.RuleVolumeIssue:      "Use bare numerals for volume and issue, e.g. 45(2).",
	rules.RulePageFormat:       "Write journal page ranges as bare numbers with an en dash, e.g. 123–145.",
	rules.RuleSourceTitleCase:  "Capitalize the major words of the journal or conference name.",
	rules.RuleChapterStructure: "A chapter entry needs its editors and the containing book: In E. Editor (Ed.), Book title (pp. x–y).",
	rules.RulePublisher:        "Add the publisher's name after the title segment.",
	rules.RuleBracketType:      "Add the bracketed artifact descriptor, e.g. [Paper presentation] or [Doctoral dissertation, University].",
	rules.RuleConferenceInfo:   "Conference entries carry the full date (year, month day) and the conference name.",
	rules.RuleInstitution:      "Name the degree-awarding institution inside the bracketed descriptor.",
	rules.RuleReportNumber:     "Include the issuing body's report number when one exists, e.g. (Report No. 42).",
	rules.RuleEditionFormat:    "Give the edition as a bare ordinal number, e.g. (2nd ed.).",
	rules.RuleEnrichmentType:   "The external metadata record disagrees with the detected citation type; review the reclassified entry.",
}

const defaultHint = "Review this field against the APA 7 reference examples."

// authorIndexRe recovers the 1-based author position embedded in
// author-format violation messages.
var authorIndexRe = regexp.MustCompile(`Author (\d+)`)

// Apply corrects every auto-fixable violation on a deep copy of c and
// reconstructs the formatted string from the corrected record. The input
// record is never mutated.
func Apply(c types.Citation, violations []types.Violation) Result {
	res := Result{Corrected: c.Clone()}

	for _, v := range violations {
		if !v.AutoFixable || v.Suggested == "" {
			res.Hints = append(res.Hints, hintFor(v))
			continue
		}

		switch v.RuleID {
		case rules.RuleAuthorFormat:
			if !fixAuthorInitials(&res.Corrected, v) {
				res.Hints = append(res.Hints, hintFor(v))
				continue
			}
		case rules.RuleAmpersand:
			// Structural: reconstruction always joins the final author
			// with "&" (or the ellipsis form past 20 authors), so the
			// record itself needs no change.
		case rules.RuleTerminalPeriod:
			res.Corrected.RawText = v.Suggested
		default:
			set, ok := fieldSetters[v.Field]
			if !ok {
				res.Hints = append(res.Hints, hintFor(v))
				continue
			}
			set(&res.Corrected, v.Suggested)
		}

		res.Applied = append(res.Applied, types.AppliedFix{
			RuleID: v.RuleID,
			Field:  v.Field,
			Before: v.Original,
			After:  v.Suggested,
		})
	}

	res.Formatted = Format(res.Corrected)
	return res
}

// fixAuthorInitials targets the author named by index in the violation
// message and replaces only that author's initials.
func fixAuthorInitials(c *types.Citation, v types.Violation) bool {
	m := authorIndexRe.FindStringSubmatch(v.Message)
	if m == nil {
		return false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil || idx < 1 || idx > len(c.Authors) {
		return false
	}
	c.Authors[idx-1].Initials = v.Suggested
	return true
}

func hintFor(v types.Violation) types.FixHint {
	guidance, ok := hintLibrary[v.RuleID]
	if !ok {
		guidance = defaultHint
	}
	return types.FixHint{
		RuleID:   v.RuleID,
		Field:    v.Field,
		Message:  v.Message,
		Guidance: guidance,
	}
}
