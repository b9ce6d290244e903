// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cite-check pipeline.
// A Citation is produced by the parser, optionally corrected by enrichment,
// inspected by the rule engine, and rewritten by the fixer. Violations,
// applied fixes, and hints are the findings that flow alongside it.
package types

// CitationType discriminates the bibliographic shape of a citation. The
// rule engine routes on this value, and enrichment may revise it
// mid-pipeline.
type CitationType string

const (
	TypeJournal      CitationType = "journal"
	TypeBook         CitationType = "book"
	TypeChapter      CitationType = "chapter"
	TypeConference   CitationType = "conference"
	TypeDissertation CitationType = "dissertation"
	TypeReport       CitationType = "report"
	TypeWeb          CitationType = "web"
	TypeUnknown      CitationType = "unknown"
)

// Author is one name in a citation's author or editor list. Group authors
// (organizations) carry no initials.
type Author struct {
	LastName string `json:"last_name" yaml:"last_name"`
	Initials string `json:"initials,omitempty" yaml:"initials,omitempty"`
	IsGroup  bool   `json:"is_group,omitempty" yaml:"is_group,omitempty"`
}

// Citation is the structured record for one bibliographic reference. The
// record is deliberately permissive: which optional fields matter for a
// given Type is enforced by the rule engine, not by the struct. After an
// enrichment-driven type change, fields belonging to the old type may be
// left behind; consumers must treat them as stale, not authoritative.
type Citation struct {
	// RawText is the original unmodified input. Whole-string checks
	// (terminal punctuation) and diagnostics read it; nothing rewrites it
	// except an explicit copy-and-correct step.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// Authors in source order. Empty is legal: it is the parse-failure
	// fallback and the shape of a citation with no author segment.
	Authors []Author `json:"authors" yaml:"authors"`

	// Year is a 4-digit string, "n.d.", "in press", or empty on parse
	// failure. YearSuffix disambiguates same-author-same-year works.
	// FullDate preserves a richer date ("2024, March 15") when the source
	// carried one; Year still holds only the 4-digit component.
	Year       string `json:"year" yaml:"year"`
	YearSuffix string `json:"year_suffix,omitempty" yaml:"year_suffix,omitempty"`
	FullDate   string `json:"full_date,omitempty" yaml:"full_date,omitempty"`

	// Title is required for every meaningful rule; empty marks the
	// citation unparseable.
	Title string `json:"title" yaml:"title"`

	Type CitationType `json:"type" yaml:"type"`

	// Type-dependent locants.
	Source    string   `json:"source,omitempty" yaml:"source,omitempty"`
	Volume    string   `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue     string   `json:"issue,omitempty" yaml:"issue,omitempty"`
	Pages     string   `json:"pages,omitempty" yaml:"pages,omitempty"`
	Publisher string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Editors   []Author `json:"editors,omitempty" yaml:"editors,omitempty"`
	Edition   string   `json:"edition,omitempty" yaml:"edition,omitempty"`

	// At most one of DOI and URL is semantically primary; a DOI implies a
	// derivable canonical resolver URL.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Descriptors used only by conference, dissertation, and report types.
	BracketType    string `json:"bracket_type,omitempty" yaml:"bracket_type,omitempty"`
	ConferenceName string `json:"conference_name,omitempty" yaml:"conference_name,omitempty"`
	Institution    string `json:"institution,omitempty" yaml:"institution,omitempty"`
	DatabaseName   string `json:"database_name,omitempty" yaml:"database_name,omitempty"`
	ReportNumber   string `json:"report_number,omitempty" yaml:"report_number,omitempty"`
}

// Clone returns a deep copy. The fixer works on clones so the parsed
// record is never mutated in place.
func (c Citation) Clone() Citation {
	out := c
	if c.Authors != nil {
		out.Authors = make([]Author, len(c.Authors))
		copy(out.Authors, c.Authors)
	}
	if c.Editors != nil {
		out.Editors = make([]Author, len(c.Editors))
		copy(out.Editors, c.Editors)
	}
	return out
}

// Severity weighs a violation for scoring and display. It says nothing
// about pipeline health.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Violation is a single rule failure detected against a citation. Only the
// rule engine (and the enrichment merge, for type corrections) creates
// violations; everything downstream treats them as read-only.
//
// AutoFixable and Suggested must agree: a violation without a concrete
// suggested replacement is never auto-fixable.
type Violation struct {
	RuleID      string   `json:"rule_id" yaml:"rule_id"`
	Field       string   `json:"field" yaml:"field"`
	Message     string   `json:"message" yaml:"message"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Original    string   `json:"original,omitempty" yaml:"original,omitempty"`
	Suggested   string   `json:"suggested,omitempty" yaml:"suggested,omitempty"`
	AutoFixable bool     `json:"auto_fixable" yaml:"auto_fixable"`
}

// AppliedFix records one correction the fixer actually made.
type AppliedFix struct {
	RuleID string `json:"rule_id" yaml:"rule_id"`
	Field  string `json:"field" yaml:"field"`
	Before string `json:"before,omitempty" yaml:"before,omitempty"`
	After  string `json:"after,omitempty" yaml:"after,omitempty"`
}

// FixHint is remediation guidance for a violation the fixer could not
// apply mechanically.
type FixHint struct {
	RuleID   string `json:"rule_id" yaml:"rule_id"`
	Field    string `json:"field" yaml:"field"`
	Message  string `json:"message" yaml:"message"`
	Guidance string `json:"guidance" yaml:"guidance"`
}

// ValidationResult is the per-citation outcome returned to callers.
type ValidationResult struct {
	Citation   Citation     `json:"citation" yaml:"citation"`
	Violations []Violation  `json:"violations" yaml:"violations"`
	Applied    []AppliedFix `json:"applied_fixes" yaml:"applied_fixes"`
	Hints      []FixHint    `json:"fix_hints" yaml:"fix_hints"`
	Formatted  string       `json:"formatted" yaml:"formatted"`
	Score      int          `json:"score" yaml:"score"`
}
