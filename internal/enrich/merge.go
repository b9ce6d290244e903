// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/cite-check/internal/rules"
	"github.com/pdiddy/cite-check/pkg/types"
)

// typeMap translates CrossRef work types to the citation type set.
var typeMap = map[string]types.CitationType{
	"journal-article":     types.TypeJournal,
	"book":                types.TypeBook,
	"monograph":           types.TypeBook,
	"book-chapter":        types.TypeChapter,
	"book-section":        types.TypeChapter,
	"proceedings-article": types.TypeConference,
	"dissertation":        types.TypeDissertation,
	"report":              types.TypeReport,
	"posted-content":      types.TypeWeb,
}

// MapType translates an external type tag. ok is false when the tag has
// no mapping, in which case the local type must be left alone.
func MapType(external string) (types.CitationType, bool) {
	t, ok := typeMap[external]
	return t, ok
}

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

// Trusted reports whether the external record agrees with the local
// citation closely enough to merge. Trust requires an identifier, title
// word overlap of at least 0.5, and mutual surname containment between
// the first authors. The author check is skipped when the local record
// parsed no authors at all.
func Trusted(c types.Citation, ext *Record) bool {
	if ext == nil || ext.DOI == "" {
		return false
	}
	if titleSimilarity(c.Title, ext.Title) < 0.5 {
		return false
	}
	if len(c.Authors) == 0 {
		return true
	}
	if len(ext.Authors) == 0 {
		return false
	}
	local := strings.ToLower(c.Authors[0].LastName)
	remote := strings.ToLower(ext.Authors[0].LastName)
	return strings.Contains(local, remote) || strings.Contains(remote, local)
}

// titleSimilarity computes the Jaccard index over words longer than
// 3 characters, case and punctuation normalized.
func titleSimilarity(a, b string) float64 {
	sa := titleWords(a)
	sb := titleWords(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := 0
	for w := range sa {
		if sb[w] {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}

func titleWords(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
		if len(w) > 3 {
			out[w] = true
		}
	}
	return out
}

var pageRangeRe = regexp.MustCompile(`\d+\s*[-–]\s*\d+`)

// Merge folds a trusted external record into a copy of the citation.
// It fills in a missing DOI (as a resolver URL), widens a lone page
// number into the external range, and corrects the citation type when
// the external record maps to a different one. A type change is
// documented with an info violation; field fills are silent.
func Merge(c types.Citation, ext *Record) (types.Citation, []types.Violation) {
	merged := c.Clone()
	var violations []types.Violation

	if merged.DOI == "" && ext.DOI != "" {
		merged.DOI = "https://doi.org/" + ext.DOI
	}

	if merged.Pages != "" && !pageRangeRe.MatchString(merged.Pages) && pageRangeRe.MatchString(ext.Pages) {
		merged.Pages = ext.Pages
	}

	extType, ok := MapType(ext.Type)
	if ok && extType != merged.Type {
		prior := merged.Type
		merged.Type = extType

		if prior == types.TypeJournal && extType == types.TypeChapter {
			reinterpretAsChapter(&merged, ext)
		}

		violations = append(violations, types.Violation{
			RuleID:   rules.RuleEnrichmentType,
			Field:    "type",
			Message:  "External metadata identifies this work as a " + string(extType) + ", not a " + string(prior) + "; the entry was reclassified.",
			Severity: types.SeverityInfo,
		})
	}

	return merged, violations
}

// reinterpretAsChapter repairs the common misparse where a chapter's
// starting page was read as a journal volume number. The volume becomes
// the start of the page range, the container becomes an "In " book
// source, and publisher/editors/edition come from the external record.
// A page range that is already complete, such as one widened from the
// external record, is left alone.
func reinterpretAsChapter(c *types.Citation, ext *Record) {
	if c.Volume != "" && !pageRangeRe.MatchString(c.Pages) {
		if c.Pages != "" {
			c.Pages = c.Volume + "–" + c.Pages
		} else {
			c.Pages = c.Volume
		}
	}
	c.Volume = ""
	c.Issue = ""

	if c.Source != "" && !strings.HasPrefix(c.Source, "In ") {
		c.Source = "In " + c.Source
	}
	if c.Publisher == "" {
		c.Publisher = ext.Publisher
	}
	if len(c.Editors) == 0 {
		c.Editors = ext.Editors
	}
	if c.Edition == "" && ext.Edition != "" {
		if n, err := strconv.Atoi(ext.Edition); err == nil && n > 1 {
			c.Edition = ext.Edition
		}
	}
}
