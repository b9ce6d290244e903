// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cite-check/pkg/types"
)

func cleanJournal() types.Citation {
	return types.Citation{
		RawText: "Kim, B. Y., & Lee, S. H. (2024). The impact of AI on education. Journal of Educational Technology, 45(2), 123–145. https://doi.org/10.1234/jet.2024",
		Authors: []types.Author{
			{LastName: "Kim", Initials: "B. Y."},
			{LastName: "Lee", Initials: "S. H."},
		},
		Year:   "2024",
		Title:  "The impact of AI on education",
		Type:   types.TypeJournal,
		Source: "Journal of Educational Technology",
		Volume: "45",
		Issue:  "2",
		Pages:  "123–145",
		DOI:    "https://doi.org/10.1234/jet.2024",
	}
}

func TestCleanCitationHasNoViolations(t *testing.T) {
	assert.Empty(t, Evaluate(cleanJournal()))
}

func TestAuthorFormat(t *testing.T) {
	c := cleanJournal()
	c.Authors[1].Initials = "s h"

	vs := checkAuthorFormat(c)
	require.Len(t, vs, 1)
	assert.Equal(t, types.SeverityError, vs[0].Severity)
	assert.Contains(t, vs[0].Message, "Author 2")
	assert.Equal(t, "S. H.", vs[0].Suggested)
	assert.True(t, vs[0].AutoFixable)
}

func TestAuthorFormatMissingInitials(t *testing.T) {
	c := cleanJournal()
	c.Authors[0].Initials = ""

	vs := checkAuthorFormat(c)
	require.Len(t, vs, 1)
	assert.False(t, vs[0].AutoFixable, "no safe guess exists for missing initials")
}

func TestAuthorFormatGroupAuthorClean(t *testing.T) {
	c := cleanJournal()
	c.Authors = []types.Author{{LastName: "World Health Organization", IsGroup: true}}
	assert.Empty(t, checkAuthorFormat(c))
}

func TestYearFormat(t *testing.T) {
	tests := []struct {
		year      string
		wantCount int
		fixable   bool
		suggested string
	}{
		{"2024", 0, false, ""},
		{"n.d.", 0, false, ""},
		{"in press", 0, false, ""},
		{"", 1, false, ""},
		{"2024, March", 1, true, "2024"},
		{"circa 1999", 1, true, "1999"},
		{"unknown", 1, false, ""},
	}
	for _, tt := range tests {
		c := cleanJournal()
		c.Year = tt.year
		vs := checkYearFormat(c)
		require.Len(t, vs, tt.wantCount, "year %q", tt.year)
		if tt.wantCount > 0 {
			assert.Equal(t, tt.fixable, vs[0].AutoFixable, "year %q", tt.year)
			assert.Equal(t, tt.suggested, vs[0].Suggested, "year %q", tt.year)
		}
	}
}

func TestTitleCase(t *testing.T) {
	c := cleanJournal()
	c.Title = "The Impact Of Artificial Intelligence On Modern Education"

	vs := checkTitleCase(c)
	require.Len(t, vs, 1)
	assert.Equal(t, types.SeverityWarning, vs[0].Severity)
	assert.True(t, vs[0].AutoFixable)
	assert.Equal(t, "The impact of artificial intelligence on modern education", vs[0].Suggested)
}

func TestTitleCaseSentenceCaseClean(t *testing.T) {
	c := cleanJournal()
	c.Title = "The impact of artificial intelligence on modern education"
	assert.Empty(t, checkTitleCase(c))
}

func TestTitleCasePreservesAcronyms(t *testing.T) {
	c := cleanJournal()
	c.Title = "Deep Learning Methods For NLP Research Applications"

	vs := checkTitleCase(c)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Suggested, "NLP")
}

func TestDOIPresence(t *testing.T) {
	c := cleanJournal()
	c.DOI = ""

	vs := checkDOIPresence(c)
	require.Len(t, vs, 1)
	assert.Equal(t, types.SeverityWarning, vs[0].Severity)
	assert.False(t, vs[0].AutoFixable)
}

func TestDOIFormat(t *testing.T) {
	tests := []struct {
		doi       string
		wantCount int
		suggested string
	}{
		{"https://doi.org/10.1234/x", 0, ""},
		{"https://doi.org/10.1234/x.", 1, "https://doi.org/10.1234/x"},
		{"doi:10.1234/x", 1, "https://doi.org/10.1234/x"},
		{"DOI: 10.1234/x", 1, "https://doi.org/10.1234/x"},
		{"10.1234/x", 1, "https://doi.org/10.1234/x"},
		{"http://dx.doi.org/10.1234/x", 1, "https://doi.org/10.1234/x"},
		{"", 0, ""},
	}
	for _, tt := range tests {
		c := cleanJournal()
		c.DOI = tt.doi
		vs := checkDOIFormat(c)
		require.Len(t, vs, tt.wantCount, "doi %q", tt.doi)
		if tt.wantCount > 0 {
			assert.Equal(t, tt.suggested, vs[0].Suggested, "doi %q", tt.doi)
			assert.True(t, vs[0].AutoFixable, "doi %q", tt.doi)
		}
	}
}

func TestVolumeIssueFormat(t *testing.T) {
	c := cleanJournal()
	c.Volume = "Vol. 45"
	c.Issue = "No. 2"

	vs := checkVolumeIssue(c)
	require.Len(t, vs, 2)
	assert.Equal(t, "45", vs[0].Suggested)
	assert.True(t, vs[0].AutoFixable)
	assert.Equal(t, "2", vs[1].Suggested)
	assert.Equal(t, types.SeverityError, vs[0].Severity)
}

func TestVolumeIssueNonNumeric(t *testing.T) {
	c := cleanJournal()
	c.Volume = "XLV"

	vs := checkVolumeIssue(c)
	require.Len(t, vs, 1)
	assert.Equal(t, types.SeverityWarning, vs[0].Severity)
	assert.False(t, vs[0].AutoFixable)
}

func TestPageFormatHyphen(t *testing.T) {
	c := cleanJournal()
	c.Pages = "45-67"

	vs := checkPageFormat(c)
	require.Len(t, vs, 1)
	assert.Equal(t, types.SeverityWarning, vs[0].Severity)
	assert.Equal(t, "45–67", vs[0].Suggested)
}

func TestPageFormatEnDashClean(t *testing.T) {
	c := cleanJournal()
	c.Pages = "45–67"
	assert.Empty(t, checkPageFormat(c))
}

func TestPageFormatPPPrefix(t *testing.T) {
	c := cleanJournal()
	c.Pages = "pp. 123-145"

	vs := checkPageFormat(c)
	require.Len(t, vs, 2)
	// The prefix strip comes first, then the dash fix computed on the
	// stripped value so sequential application converges.
	assert.Equal(t, types.SeverityError, vs[0].Severity)
	assert.Equal(t, "123-145", vs[0].Suggested)
	assert.Equal(t, "123–145", vs[1].Suggested)
}

func TestPageFormatChapterKeepsPP(t *testing.T) {
	// Chapters legitimately carry "pp." inside the parenthetical; only
	// the dash is checked.
	c := cleanJournal()
	c.Type = types.TypeChapter
	c.Pages = "pp. 20-31"

	vs := checkPageFormat(c)
	require.Len(t, vs, 1)
	assert.Equal(t, types.SeverityWarning, vs[0].Severity)
}

func TestAmpersand(t *testing.T) {
	c := types.Citation{
		RawText: "Kim, B. Y. and Lee, S. H. (2024). Work and play. Journal of Things, 1(1), 1–2. https://doi.org/10.1/x",
		Authors: []types.Author{
			{LastName: "Kim", Initials: "B. Y."},
			{LastName: "Lee", Initials: "S. H."},
		},
		Year: "2024", Title: "Work and play", Type: types.TypeJournal,
	}

	vs := checkAmpersand(c)
	require.Len(t, vs, 1)
	assert.Equal(t, types.SeverityError, vs[0].Severity)
	assert.True(t, vs[0].AutoFixable)
	assert.Contains(t, vs[0].Suggested, "&")
}

func TestAmpersandIgnoresTitleAnd(t *testing.T) {
	c := cleanJournal()
	c.Title = "Work and play in modern classrooms"
	c.RawText = "Kim, B. Y., & Lee, S. H. (2024). Work and play in modern classrooms. Journal of Educational Technology, 45(2), 123–145. https://doi.org/10.1234/jet.2024"

	assert.Empty(t, checkAmpersand(c))
}

func TestAmpersandManyAuthors(t *testing.T) {
	c := cleanJournal()
	c.Authors = make([]types.Author, 25)
	for i := range c.Authors {
		c.Authors[i] = types.Author{LastName: "Name", Initials: "A."}
	}

	vs := checkAmpersand(c)
	require.Len(t, vs, 1)
	assert.Equal(t, types.SeverityInfo, vs[0].Severity)
	assert.True(t, vs[0].AutoFixable)
	assert.Contains(t, vs[0].Suggested, ", ... ")
}

func TestSourceTitleCase(t *testing.T) {
	c := cleanJournal()
	c.Source = "journal of educational technology"

	vs := checkSourceTitleCase(c)
	require.Len(t, vs, 1)
	assert.Equal(t, "source", vs[0].Field)
	assert.Equal(t, "Journal of Educational Technology", vs[0].Suggested)
}

func TestSourceTitleCaseConferenceField(t *testing.T) {
	c := types.Citation{
		Type:           types.TypeConference,
		ConferenceName: "annual conference of applied psychology",
	}

	vs := checkSourceTitleCase(c)
	require.Len(t, vs, 1)
	assert.Equal(t, "conference_name", vs[0].Field)
	assert.Equal(t, "Annual Conference of Applied Psychology", vs[0].Suggested)
}

func TestChapterStructure(t *testing.T) {
	c := types.Citation{Type: types.TypeChapter, Source: "Book Title"}

	vs := checkChapterStructure(c)
	require.Len(t, vs, 2)
	for _, v := range vs {
		assert.False(t, v.AutoFixable)
	}
}

func TestEditionFormat(t *testing.T) {
	c := types.Citation{Type: types.TypeBook, Edition: "4"}
	assert.Empty(t, checkEditionFormat(c))

	c.Edition = "fourth"
	vs := checkEditionFormat(c)
	require.Len(t, vs, 1)
	assert.False(t, vs[0].AutoFixable)
}

func TestTerminalPeriod(t *testing.T) {
	tests := []struct {
		raw       string
		wantCount int
	}{
		{"Author, A. (2024). Title. Publisher.", 0},
		{"Author, A. (2024). Title. Publisher", 1},
		{"Author, A. (2024). Title. https://doi.org/10.1/x", 0},
		{"Author, A. (2024). Title. https://example.com/page", 0},
		{"Author, A. (2024). Title. doi:10.1/x", 0},
	}
	for _, tt := range tests {
		c := types.Citation{RawText: tt.raw}
		vs := checkTerminalPeriod(c)
		require.Len(t, vs, tt.wantCount, "raw %q", tt.raw)
		if tt.wantCount > 0 {
			assert.Equal(t, tt.raw+".", vs[0].Suggested)
			assert.True(t, vs[0].AutoFixable)
		}
	}
}

func TestRoutingCompleteness(t *testing.T) {
	has := func(rs []Rule, id string) bool {
		for _, r := range rs {
			if r.ID == id {
				return true
			}
		}
		return false
	}

	journal := ForType(types.TypeJournal)
	assert.True(t, has(journal, RuleVolumeIssue))
	assert.False(t, has(journal, RuleBracketType))

	conference := ForType(types.TypeConference)
	assert.True(t, has(conference, RuleBracketType))
	assert.True(t, has(conference, RuleConferenceInfo))
	assert.False(t, has(conference, RuleVolumeIssue))

	// The universal rules apply to every type.
	for _, ct := range []types.CitationType{
		types.TypeJournal, types.TypeBook, types.TypeChapter,
		types.TypeConference, types.TypeDissertation, types.TypeReport,
		types.TypeWeb, types.TypeUnknown,
	} {
		rs := ForType(ct)
		assert.True(t, has(rs, RuleAuthorFormat), "type %s", ct)
		assert.True(t, has(rs, RuleYearFormat), "type %s", ct)
		assert.True(t, has(rs, RuleTitleCase), "type %s", ct)
	}
}

func TestViolationConstructorForcesAgreement(t *testing.T) {
	v := violation("some-rule", "field", "msg", types.SeverityError, "orig", "", true)
	assert.False(t, v.AutoFixable, "no suggestion means no auto-fix")
}
