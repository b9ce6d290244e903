// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/cite-check/internal/parse"
	"github.com/pdiddy/cite-check/pkg/types"
)

const doiResolver = "https://doi.org/"

var (
	initialsRe   = regexp.MustCompile(`^(?:[A-Z]\. )*[A-Z]\.$`)
	fourDigitRe  = regexp.MustCompile(`\d{4}`)
	numericRe    = regexp.MustCompile(`^\d+$`)
	bareDOIRe    = regexp.MustCompile(`10\.\S+`)
	pageRangeRe  = regexp.MustCompile(`\d\s*-\s*\d`)
	andJoinRe    = regexp.MustCompile(`\s+and\s+`)
	volPrefixRe  = regexp.MustCompile(`^(?i)vol\.?\s*`)
	noPrefixRe   = regexp.MustCompile(`^(?i)no\.?\s*`)
	ppPrefixRe   = regexp.MustCompile(`^(?i)pp?\.\s*`)
)

// checkAuthorFormat validates each author's last name and initials. The
// author's 1-based position is embedded in the message; the fixer relies
// on it to target the right element.
func checkAuthorFormat(c types.Citation) []types.Violation {
	var out []types.Violation
	for i, a := range c.Authors {
		n := i + 1
		if a.IsGroup {
			if strings.TrimSpace(a.LastName) == "" {
				out = append(out, violation(RuleAuthorFormat, "authors",
					fmt.Sprintf("Author %d: group author name is empty", n),
					types.SeverityError, "", "", false))
			}
			continue
		}
		if strings.TrimSpace(a.LastName) == "" {
			out = append(out, violation(RuleAuthorFormat, "authors",
				fmt.Sprintf("Author %d: missing last name", n),
				types.SeverityError, a.Initials, "", false))
			continue
		}
		if a.Initials == "" {
			out = append(out, violation(RuleAuthorFormat, "authors",
				fmt.Sprintf("Author %d (%s): missing initials", n, a.LastName),
				types.SeverityError, a.LastName, "", false))
			continue
		}
		if !initialsRe.MatchString(a.Initials) {
			fixed := parse.NormalizeInitials(a.Initials)
			out = append(out, violation(RuleAuthorFormat, "authors",
				fmt.Sprintf("Author %d (%s): initials %q are not in \"X. Y.\" form", n, a.LastName, a.Initials),
				types.SeverityError, a.Initials, fixed, fixed != ""))
		}
	}
	return out
}

// checkYearFormat accepts a 4-digit year, "n.d.", or "in press".
func checkYearFormat(c types.Citation) []types.Violation {
	y := c.Year
	if y == "n.d." || y == "in press" || numericRe.MatchString(y) && len(y) == 4 {
		return nil
	}
	if y == "" {
		return []types.Violation{violation(RuleYearFormat, "year",
			"missing publication year", types.SeverityError, "", "", false)}
	}
	suggested := fourDigitRe.FindString(y)
	return []types.Violation{violation(RuleYearFormat, "year",
		fmt.Sprintf("year %q is not a 4-digit year, \"n.d.\", or \"in press\"", y),
		types.SeverityError, y, suggested, suggested != "")}
}

// checkTitleCase flags a title that looks like Title Case: at least 3
// capitalized words longer than 3 characters, making up 60% or more of
// all words that long.
func checkTitleCase(c types.Citation) []types.Violation {
	if c.Title == "" {
		return nil
	}
	words := strings.Fields(c.Title)
	long, capitalized := 0, 0
	for _, w := range words {
		letters := strings.TrimFunc(w, func(r rune) bool {
			return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z')
		})
		if len(letters) <= 3 {
			continue
		}
		long++
		if letters[0] >= 'A' && letters[0] <= 'Z' {
			capitalized++
		}
	}
	if capitalized < 3 || long == 0 || float64(capitalized) < 0.6*float64(long) {
		return nil
	}
	fixed := sentenceCase(c.Title)
	return []types.Violation{violation(RuleTitleCase, "title",
		"title appears to use Title Case; APA 7 requires sentence case",
		types.SeverityWarning, c.Title, fixed, true)}
}

// checkDOIPresence wants a DOI on every journal article. There is no safe
// way to invent one without an external lookup, so this is never fixable.
func checkDOIPresence(c types.Citation) []types.Violation {
	if c.DOI != "" {
		return nil
	}
	return []types.Violation{violation(RuleDOIPresence, "doi",
		"journal article has no DOI", types.SeverityWarning, "", "", false)}
}

// checkDOIFormat requires the canonical resolver URL form with no
// trailing period.
func checkDOIFormat(c types.Citation) []types.Violation {
	d := c.DOI
	if d == "" {
		return nil
	}
	if strings.HasPrefix(d, doiResolver) {
		if strings.HasSuffix(d, ".") {
			fixed := strings.TrimRight(d, ".")
			return []types.Violation{violation(RuleDOIFormat, "doi",
				"DOI has a trailing period", types.SeverityError, d, fixed, true)}
		}
		return nil
	}
	if strings.HasPrefix(strings.ToLower(d), "doi:") {
		bare := strings.TrimSpace(d[len("doi:"):])
		return []types.Violation{violation(RuleDOIFormat, "doi",
			fmt.Sprintf("DOI %q uses the doi: prefix instead of the resolver URL", d),
			types.SeverityError, d, doiResolver+strings.TrimRight(bare, "."), true)}
	}
	if strings.HasPrefix(d, "10.") {
		return []types.Violation{violation(RuleDOIFormat, "doi",
			fmt.Sprintf("DOI %q is bare; APA 7 requires the resolver URL form", d),
			types.SeverityError, d, doiResolver+strings.TrimRight(d, "."), true)}
	}
	if bare := bareDOIRe.FindString(d); bare != "" && strings.Contains(d, "doi.org") {
		// http:// or dx.doi.org resolver variants rewrite cleanly.
		return []types.Violation{violation(RuleDOIFormat, "doi",
			fmt.Sprintf("DOI %q does not use the canonical https://doi.org/ resolver", d),
			types.SeverityError, d, doiResolver+strings.TrimRight(bare, "."), true)}
	}
	return []types.Violation{violation(RuleDOIFormat, "doi",
		fmt.Sprintf("DOI %q is not recognizable", d), types.SeverityError, d, "", false)}
}

// checkVolumeIssue rejects literal "Vol."/"No." prefixes and non-numeric
// values on journal citations.
func checkVolumeIssue(c types.Citation) []types.Violation {
	var out []types.Violation
	check := func(field, value string, prefixRe *regexp.Regexp, label string) {
		if value == "" {
			return
		}
		if prefixRe.MatchString(value) {
			stripped := strings.TrimSpace(prefixRe.ReplaceAllString(value, ""))
			if numericRe.MatchString(stripped) {
				out = append(out, violation(RuleVolumeIssue, field,
					fmt.Sprintf("%s %q carries a textual prefix; APA 7 uses the bare number", label, value),
					types.SeverityError, value, stripped, true))
				return
			}
			value = stripped
		}
		if !numericRe.MatchString(value) {
			out = append(out, violation(RuleVolumeIssue, field,
				fmt.Sprintf("%s %q is not numeric", label, value),
				types.SeverityWarning, value, "", false))
		}
	}
	check("volume", c.Volume, volPrefixRe, "volume")
	check("issue", c.Issue, noPrefixRe, "issue")
	return out
}

// checkPageFormat rejects a "pp." prefix on journal pages and plain
// hyphens in page ranges.
func checkPageFormat(c types.Citation) []types.Violation {
	p := c.Pages
	if p == "" {
		return nil
	}
	var out []types.Violation
	working := p
	if c.Type == types.TypeJournal && ppPrefixRe.MatchString(working) {
		working = strings.TrimSpace(ppPrefixRe.ReplaceAllString(working, ""))
		out = append(out, violation(RulePageFormat, "pages",
			fmt.Sprintf("journal pages %q carry a \"pp.\" prefix", p),
			types.SeverityError, p, working, true))
	}
	if pageRangeRe.MatchString(working) {
		fixed := strings.ReplaceAll(working, "-", "–")
		out = append(out, violation(RulePageFormat, "pages",
			fmt.Sprintf("page range %q uses a hyphen; APA 7 uses an en dash", working),
			types.SeverityWarning, working, fixed, true))
	}
	return out
}

// checkAmpersand inspects only the text preceding the date token, so an
// "and" inside the title cannot trigger it. 2-20 authors joined by "and"
// is an error; past 20 the ellipsis author format applies.
func checkAmpersand(c types.Citation) []types.Violation {
	n := len(c.Authors)
	if n < 2 {
		return nil
	}
	if n > 20 {
		return []types.Violation{violation(RuleAmpersand, "authors",
			fmt.Sprintf("%d authors listed; APA 7 lists the first 19, an ellipsis, then the final author", n),
			types.SeverityInfo, "", ellipsisAuthorList(c.Authors), true)}
	}
	before, ok := parse.BeforeYear(c.RawText)
	if !ok || !andJoinRe.MatchString(before) {
		return nil
	}
	fixed := strings.TrimSpace(andJoinRe.ReplaceAllString(before, " & "))
	return []types.Violation{violation(RuleAmpersand, "authors",
		"authors are joined with \"and\"; APA 7 joins the final author with \"&\"",
		types.SeverityError, strings.TrimSpace(before), fixed, true)}
}

// ellipsisAuthorList renders the first 19 authors, an ellipsis, and the
// final author, as the reconstructor will.
func ellipsisAuthorList(authors []types.Author) string {
	names := make([]string, 0, 20)
	for _, a := range authors[:19] {
		names = append(names, authorName(a))
	}
	return strings.Join(names, ", ") + ", ... " + authorName(authors[len(authors)-1])
}

func authorName(a types.Author) string {
	if a.IsGroup || a.Initials == "" {
		return a.LastName
	}
	return a.LastName + ", " + a.Initials
}

// checkSourceTitleCase flags a journal or conference name with two or more
// lowercased major words. Minor words stay lowercase unless first or last.
func checkSourceTitleCase(c types.Citation) []types.Violation {
	field, name := "source", c.Source
	if c.Type == types.TypeConference {
		field, name = "conference_name", c.ConferenceName
	}
	if name == "" {
		return nil
	}
	tokens := strings.Fields(name)
	lowerMajor := 0
	for _, tok := range tokens {
		w := strings.Trim(tok, ",.;:")
		if w == "" || minorWords[strings.ToLower(w)] {
			continue
		}
		if r := w[0]; r >= 'a' && r <= 'z' {
			lowerMajor++
		}
	}
	if lowerMajor < 2 {
		return nil
	}
	fixed := titleCaseName(name)
	return []types.Violation{violation(RuleSourceTitleCase, field,
		fmt.Sprintf("%q should use Title Case", name),
		types.SeverityWarning, name, fixed, true)}
}

// checkChapterStructure requires editors and an "In " source on chapters.
// Both demand content the parser cannot safely invent.
func checkChapterStructure(c types.Citation) []types.Violation {
	var out []types.Violation
	if len(c.Editors) == 0 {
		out = append(out, violation(RuleChapterStructure, "editors",
			"book chapter has no editors", types.SeverityError, "", "", false))
	}
	if !strings.HasPrefix(c.Source, "In ") {
		out = append(out, violation(RuleChapterStructure, "source",
			"book chapter source must begin with \"In \"", types.SeverityError, c.Source, "", false))
	}
	return out
}

func checkPublisher(c types.Citation) []types.Violation {
	if c.Publisher != "" || c.Source != "" {
		return nil
	}
	return []types.Violation{violation(RulePublisher, "publisher",
		fmt.Sprintf("%s citation has no publisher or source", c.Type),
		types.SeverityError, "", "", false)}
}

func checkBracketType(c types.Citation) []types.Violation {
	if c.BracketType != "" {
		return nil
	}
	return []types.Violation{violation(RuleBracketType, "bracket_type",
		fmt.Sprintf("%s citation is missing its bracketed type descriptor", c.Type),
		types.SeverityError, "", "", false)}
}

func checkConferenceInfo(c types.Citation) []types.Violation {
	var out []types.Violation
	if c.FullDate == "" {
		out = append(out, violation(RuleConferenceInfo, "full_date",
			"conference citation needs a full date, not just a year",
			types.SeverityError, c.Year, "", false))
	}
	if c.ConferenceName == "" {
		out = append(out, violation(RuleConferenceInfo, "conference_name",
			"conference citation has no conference name", types.SeverityError, "", "", false))
	}
	return out
}

func checkInstitution(c types.Citation) []types.Violation {
	if c.Institution != "" {
		return nil
	}
	return []types.Violation{violation(RuleInstitution, "institution",
		"dissertation citation has no awarding institution", types.SeverityError, "", "", false)}
}

func checkReportNumber(c types.Citation) []types.Violation {
	if c.ReportNumber != "" {
		return nil
	}
	return []types.Violation{violation(RuleReportNumber, "report_number",
		"report citation usually carries a report number", types.SeverityInfo, "", "", false)}
}

func checkEditionFormat(c types.Citation) []types.Violation {
	if c.Edition == "" || numericRe.MatchString(c.Edition) {
		return nil
	}
	return []types.Violation{violation(RuleEditionFormat, "edition",
		fmt.Sprintf("edition %q is not numeric", c.Edition),
		types.SeverityError, c.Edition, "", false)}
}

// checkTerminalPeriod wants the raw text to end in a period unless it ends
// in a URL or DOI.
func checkTerminalPeriod(c types.Citation) []types.Violation {
	raw := strings.TrimSpace(c.RawText)
	if raw == "" || strings.HasSuffix(raw, ".") {
		return nil
	}
	fields := strings.Fields(raw)
	last := strings.ToLower(fields[len(fields)-1])
	if strings.HasPrefix(last, "http://") || strings.HasPrefix(last, "https://") ||
		strings.Contains(last, "doi.org") || strings.HasPrefix(last, "doi:") {
		return nil
	}
	return []types.Violation{violation(RuleTerminalPeriod, "raw_text",
		"citation does not end with a period", types.SeverityWarning, raw, raw+".", true)}
}
