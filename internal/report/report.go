// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders validation results for the CLI: a human-readable
// summary, indented JSON, or CSL-YAML for reference managers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cite-check/pkg/types"
)

// FormatText writes a human-readable report to w: per citation the score,
// the reconstructed string, each violation with its severity, and the
// remediation hints for anything that could not be fixed automatically.
func FormatText(results []types.ValidationResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No citations found.")
		return
	}

	for i, r := range results {
		fmt.Fprintf(w, "[%d] score %d/100 (%s)\n", i+1, r.Score, r.Citation.Type)
		fmt.Fprintf(w, "    %s\n", r.Formatted)

		for _, v := range r.Violations {
			marker := " "
			if v.AutoFixable {
				marker = "*"
			}
			fmt.Fprintf(w, "    %-7s %s %s: %s\n", v.Severity, marker, v.RuleID, v.Message)
		}
		for _, f := range r.Applied {
			fmt.Fprintf(w, "    fixed   %s: %q -> %q\n", f.RuleID, f.Before, f.After)
		}
		for _, h := range r.Hints {
			fmt.Fprintf(w, "    hint    %s: %s\n", h.RuleID, h.Guidance)
		}
		fmt.Fprintln(w)
	}

	total := 0
	for _, r := range results {
		total += r.Score
	}
	fmt.Fprintf(w, "%d citations, average score %d\n", len(results), total/len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.ValidationResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names follow the CSL-JSON/CSL-YAML schema so that
// output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Editor         []CSLName `yaml:"editor,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	Edition        string    `yaml:"edition,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps citation types to their CSL equivalents.
var cslTypes = map[types.CitationType]string{
	types.TypeJournal:      "article-journal",
	types.TypeBook:         "book",
	types.TypeChapter:      "chapter",
	types.TypeConference:   "paper-conference",
	types.TypeDissertation: "thesis",
	types.TypeReport:       "report",
	types.TypeWeb:          "webpage",
}

// FormatCSL writes the corrected citations as a CSL-YAML list to w.
func FormatCSL(results []types.ValidationResult, w io.Writer) error {
	items := make([]CSLItem, len(results))
	for i, r := range results {
		items[i] = toCSLItem(i+1, r.Citation)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a corrected citation to a CSLItem.
func toCSLItem(n int, c types.Citation) CSLItem {
	item := CSLItem{
		ID:        "ref-" + strconv.Itoa(n),
		Type:      cslType(c.Type),
		Title:     c.Title,
		Volume:    c.Volume,
		Issue:     c.Issue,
		Page:      c.Pages,
		Publisher: c.Publisher,
		Edition:   c.Edition,
		URL:       c.URL,
	}

	// CSL carries the container without the chapter's "In " marker and
	// the DOI without the resolver prefix.
	item.ContainerTitle = strings.TrimPrefix(c.Source, "In ")
	item.DOI = strings.TrimPrefix(strings.TrimPrefix(c.DOI, "https://doi.org/"), "http://doi.org/")

	for _, a := range c.Authors {
		item.Author = append(item.Author, toCSLName(a))
	}
	for _, e := range c.Editors {
		item.Editor = append(item.Editor, toCSLName(e))
	}

	if year, err := strconv.Atoi(c.Year); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{year}}}
	}

	return item
}

func toCSLName(a types.Author) CSLName {
	if a.IsGroup {
		return CSLName{Literal: a.LastName}
	}
	return CSLName{Family: a.LastName, Given: a.Initials}
}

func cslType(t types.CitationType) string {
	if s, ok := cslTypes[t]; ok {
		return s
	}
	return "document"
}
