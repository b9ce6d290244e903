// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fix

import (
	"strconv"
	"strings"

	"github.com/pdiddy/cite-check/pkg/types"
)

// Format rebuilds a canonical APA 7 reference string from the record,
// independent of what the original text looked like.
func Format(c types.Citation) string {
	var parts []string

	if a := FormatAuthors(c.Authors); a != "" {
		parts = append(parts, a)
	}
	parts = append(parts, "("+dateSegment(c)+").")

	switch c.Type {
	case types.TypeConference:
		parts = append(parts, descriptorSentence(c.Title, bracketText(c)))
		if c.ConferenceName != "" {
			parts = append(parts, sentence(c.ConferenceName))
		}
	case types.TypeDissertation:
		parts = append(parts, descriptorSentence(c.Title, bracketText(c)))
		if c.DatabaseName != "" {
			parts = append(parts, sentence(c.DatabaseName))
		}
	case types.TypeReport:
		title := c.Title
		if c.ReportNumber != "" {
			title += " (Report No. " + c.ReportNumber + ")"
		}
		parts = append(parts, sentence(title))
		if p := firstNonEmpty(c.Publisher, c.Source); p != "" {
			parts = append(parts, sentence(p))
		}
	case types.TypeJournal:
		if c.Title != "" {
			parts = append(parts, sentence(c.Title))
		}
		parts = append(parts, journalClause(c))
	case types.TypeChapter:
		if c.Title != "" {
			parts = append(parts, sentence(c.Title))
		}
		parts = append(parts, chapterClause(c))
		if c.Publisher != "" {
			parts = append(parts, sentence(c.Publisher))
		}
	case types.TypeBook:
		// With a separate source text the title is its own sentence.
		if c.Title != "" && c.Source != "" {
			parts = append(parts, sentence(c.Title))
		}
		parts = append(parts, bookClause(c))
		if c.Publisher != "" {
			parts = append(parts, sentence(c.Publisher))
		}
	default:
		if c.Title != "" {
			parts = append(parts, sentence(c.Title))
		}
		if c.Source != "" {
			parts = append(parts, c.Source)
		}
	}

	switch {
	case c.DOI != "":
		parts = append(parts, c.DOI)
	case c.URL != "":
		parts = append(parts, c.URL)
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// FormatAuthors renders an author list in APA 7 form: one author as-is,
// two joined by "&", three to twenty comma-joined with "&" before the
// last, and past twenty the first nineteen, an ellipsis, and the final
// author.
func FormatAuthors(authors []types.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = formatAuthor(a)
	}
	switch n := len(names); {
	case n == 0:
		return ""
	case n == 1:
		return names[0]
	case n == 2:
		return names[0] + ", & " + names[1]
	case n <= 20:
		return strings.Join(names[:n-1], ", ") + ", & " + names[n-1]
	default:
		return strings.Join(names[:19], ", ") + ", ... " + names[n-1]
	}
}

func formatAuthor(a types.Author) string {
	if a.IsGroup || a.Initials == "" {
		return a.LastName
	}
	return a.LastName + ", " + a.Initials
}

func dateSegment(c types.Citation) string {
	if c.FullDate != "" {
		return c.FullDate
	}
	if c.Year == "" {
		return "n.d."
	}
	return c.Year + c.YearSuffix
}

func journalClause(c types.Citation) string {
	s := c.Source
	if c.Volume != "" {
		s += ", " + c.Volume
		if c.Issue != "" {
			s += "(" + c.Issue + ")"
		}
	}
	if c.Pages != "" {
		s += ", " + c.Pages
	}
	return sentence(s)
}

func chapterClause(c types.Citation) string {
	eds := FormatAuthors(c.Editors)
	label := "Eds."
	if len(c.Editors) == 1 {
		label = "Ed."
	}
	var b strings.Builder
	b.WriteString("In ")
	if eds != "" {
		b.WriteString(eds + " (" + label + "), ")
	} else {
		b.WriteString("[Editors unknown], ")
	}
	b.WriteString(strings.TrimPrefix(c.Source, "In "))

	var extras []string
	if c.Edition != "" {
		extras = append(extras, ordinal(c.Edition)+" ed.")
	}
	if c.Pages != "" {
		extras = append(extras, "pp. "+strings.TrimPrefix(c.Pages, "pp. "))
	}
	if len(extras) > 0 {
		b.WriteString(" (" + strings.Join(extras, ", ") + ")")
	}
	return sentence(b.String())
}

func bookClause(c types.Citation) string {
	// A book parsed from "Title (Nth ed.). Publisher." has no separate
	// source text; the title itself is the book title.
	text := firstNonEmpty(c.Source, c.Title)
	if c.Edition != "" {
		text += " (" + ordinal(c.Edition) + " ed.)"
	}
	return sentence(text)
}

// descriptorSentence renders "Title [Bracket descriptor]." for conference
// and dissertation entries, whose titles fold into the descriptor clause.
func descriptorSentence(title, bracket string) string {
	if bracket == "" {
		return sentence(title)
	}
	return sentence(title + " [" + bracket + "]")
}

// bracketText rebuilds the bracket contents, folding the institution back
// in for dissertations.
func bracketText(c types.Citation) string {
	if c.BracketType == "" {
		return ""
	}
	if c.Type == types.TypeDissertation && c.Institution != "" && !strings.Contains(c.BracketType, ",") {
		return c.BracketType + ", " + c.Institution
	}
	return c.BracketType
}

// sentence appends a terminal period unless one is already there.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!") {
		return s
	}
	return s + "."
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// ordinal converts a numeric edition string to its English ordinal:
// 11, 12, and 13 always take "th", everything else follows the final
// digit.
func ordinal(n string) string {
	v, err := strconv.Atoi(n)
	if err != nil {
		return n
	}
	suffix := "th"
	if v%100 < 11 || v%100 > 13 {
		switch v % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(v) + suffix
}
