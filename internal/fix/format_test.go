// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cite-check/internal/parse"
	"github.com/pdiddy/cite-check/pkg/types"
)

func TestFormatJournal(t *testing.T) {
	got := Format(journalCitation())
	want := "Kim, B. Y., & Lee, S. H. (2024). The impact of AI on education. Journal of Educational Technology, 45(2), 123–145. https://doi.org/10.1234/jet.2024"
	assert.Equal(t, want, got)
}

func TestFormatBook(t *testing.T) {
	c := types.Citation{
		Authors:   []types.Author{{LastName: "Author", Initials: "A."}},
		Year:      "2023",
		Title:     "Psychology of learning",
		Type:      types.TypeBook,
		Edition:   "4",
		Publisher: "Academic Press",
	}
	got := Format(c)
	assert.Equal(t, "Author, A. (2023). Psychology of learning (4th ed.). Academic Press.", got)
}

func TestFormatBookWithSourceText(t *testing.T) {
	c := types.Citation{
		Authors:   []types.Author{{LastName: "Author", Initials: "A."}},
		Year:      "2020",
		Title:     "Learning theory",
		Type:      types.TypeBook,
		Source:    "Advanced perspectives",
		Publisher: "Academic Press",
	}
	got := Format(c)
	assert.Equal(t, "Author, A. (2020). Learning theory. Advanced perspectives. Academic Press.", got)
}

func TestFormatChapter(t *testing.T) {
	c := types.Citation{
		Authors:   []types.Author{{LastName: "Author", Initials: "A."}},
		Year:      "2023",
		Title:     "Chapter title",
		Type:      types.TypeChapter,
		Source:    "In Book Title",
		Pages:     "20–31",
		Publisher: "Publisher",
		Editors:   []types.Author{{LastName: "Editor", Initials: "E. F."}},
	}
	got := Format(c)
	assert.Equal(t, "Author, A. (2023). Chapter title. In Editor, E. F. (Ed.), Book Title (pp. 20–31). Publisher.", got)
}

func TestFormatChapterNoEditors(t *testing.T) {
	c := types.Citation{
		Authors: []types.Author{{LastName: "Author", Initials: "A."}},
		Year:    "2023",
		Title:   "Chapter title",
		Type:    types.TypeChapter,
		Source:  "In Book Title",
		Pages:   "20–31",
	}
	got := Format(c)
	assert.Contains(t, got, "[Editors unknown]")
}

func TestFormatConference(t *testing.T) {
	c := types.Citation{
		Authors:        []types.Author{{LastName: "Smith", Initials: "J."}},
		Year:           "2024",
		FullDate:       "2024, March 15",
		Title:          "New findings",
		Type:           types.TypeConference,
		BracketType:    "Paper presentation",
		ConferenceName: "Annual Conference of APA, Washington, DC",
	}
	got := Format(c)
	assert.Equal(t, "Smith, J. (2024, March 15). New findings [Paper presentation]. Annual Conference of APA, Washington, DC.", got)
}

func TestFormatDissertation(t *testing.T) {
	c := types.Citation{
		Authors:      []types.Author{{LastName: "Author", Initials: "A."}},
		Year:         "2020",
		Title:        "Dissertation title",
		Type:         types.TypeDissertation,
		BracketType:  "Doctoral dissertation",
		Institution:  "University of X",
		DatabaseName: "ProQuest Dissertations",
	}
	got := Format(c)
	assert.Equal(t, "Author, A. (2020). Dissertation title [Doctoral dissertation, University of X]. ProQuest Dissertations.", got)
}

func TestFormatReport(t *testing.T) {
	c := types.Citation{
		Authors:      []types.Author{{LastName: "Agency", IsGroup: true}},
		Year:         "2022",
		Title:        "Annual safety review",
		Type:         types.TypeReport,
		ReportNumber: "42",
		Publisher:    "Government Printing Office",
	}
	got := Format(c)
	assert.Equal(t, "Agency. (2022). Annual safety review (Report No. 42). Government Printing Office.", got)
}

func TestFormatNoDate(t *testing.T) {
	c := types.Citation{
		Authors:   []types.Author{{LastName: "Author", Initials: "A."}},
		Title:     "Some title",
		Type:      types.TypeBook,
		Publisher: "Publisher",
	}
	got := Format(c)
	assert.Contains(t, got, "(n.d.).")
}

func TestFormatAuthors(t *testing.T) {
	one := []types.Author{{LastName: "Kim", Initials: "B. Y."}}
	assert.Equal(t, "Kim, B. Y.", FormatAuthors(one))

	two := append(one, types.Author{LastName: "Lee", Initials: "S. H."})
	assert.Equal(t, "Kim, B. Y., & Lee, S. H.", FormatAuthors(two))

	three := append(two, types.Author{LastName: "Park", Initials: "C."})
	assert.Equal(t, "Kim, B. Y., Lee, S. H., & Park, C.", FormatAuthors(three))

	group := []types.Author{{LastName: "World Health Organization", IsGroup: true}}
	assert.Equal(t, "World Health Organization", FormatAuthors(group))

	assert.Empty(t, FormatAuthors(nil))
}

func TestFormatAuthorsEllipsis(t *testing.T) {
	authors := make([]types.Author, 25)
	for i := range authors {
		authors[i] = types.Author{LastName: "Name", Initials: "A."}
	}
	authors[24] = types.Author{LastName: "Last", Initials: "Z."}

	got := FormatAuthors(authors)
	assert.Contains(t, got, ", ... Last, Z.")
	// 19 leading names, the ellipsis, the final author.
	assert.Equal(t, 19, countOccurrences(got, "Name, A."))
}

func countOccurrences(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}

func TestOrdinal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1st"}, {"2", "2nd"}, {"3", "3rd"}, {"4", "4th"},
		{"11", "11th"}, {"12", "12th"}, {"13", "13th"},
		{"21", "21st"}, {"22", "22nd"}, {"23", "23rd"},
		{"101", "101st"}, {"111", "111th"},
		{"fourth", "fourth"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ordinal(tt.in), "input %q", tt.in)
	}
}

// Reconstruction round-trip: a clean citation formatted and re-parsed
// yields the same structured record.
func TestFormatReparseRoundTrip(t *testing.T) {
	inputs := []string{
		"Kim, B. Y., & Lee, S. H. (2024). The impact of AI on education. Journal of Educational Technology, 45(2), 123–145. https://doi.org/10.1234/jet.2024",
		"Smith, J. (2024, March 15). New findings [Paper presentation]. Annual Conference of APA, Washington, DC.",
		"Author, A. (2023). Psychology of learning (4th ed.). Academic Press.",
		"Author, A. (2020). Learning theory. Advanced perspectives. Academic Press.",
		"Author, A. (2023). Chapter title. In Editor, E. F. (Ed.), Book Title (pp. 20–31). Publisher.",
	}
	for _, input := range inputs {
		first := parse.ParseOne(input)
		formatted := Format(first)
		second := parse.ParseOne(formatted)

		// RawText differs by construction; every structural field must
		// survive the round trip.
		second.RawText = first.RawText
		require.Equal(t, first, second, "input %q", input)
	}
}
