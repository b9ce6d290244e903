// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules detects APA 7 style violations on parsed citations. Each
// rule is a pure predicate over a Citation; rules never mutate the record
// and are independent of one another, so the engine simply concatenates
// their findings.
package rules

import "github.com/pdiddy/cite-check/pkg/types"

// Rule identifiers. The fixer's field table and hint library key on these.
const (
	RuleAuthorFormat     = "author-format"
	RuleYearFormat       = "year-format"
	RuleTitleCase        = "title-case"
	RuleDOIPresence      = "doi-presence"
	RuleDOIFormat        = "doi-format"
	RuleVolumeIssue      = "volume-issue-format"
	RulePageFormat       = "page-format"
	RuleAmpersand        = "ampersand"
	RuleSourceTitleCase  = "source-title-case"
	RuleChapterStructure = "chapter-structure"
	RulePublisher        = "publisher-required"
	RuleBracketType      = "bracket-type"
	RuleConferenceInfo   = "conference-info"
	RuleInstitution      = "dissertation-institution"
	RuleReportNumber     = "report-number"
	RuleEditionFormat    = "edition-format"
	RuleTerminalPeriod   = "terminal-period"
	RuleEnrichmentType   = "enrichment-type"
)

// Rule pairs an identifier with its check. AppliesTo nil means the rule
// runs for every citation type.
type Rule struct {
	ID        string
	AppliesTo []types.CitationType
	Check     func(types.Citation) []types.Violation
}

var ruleTable = []Rule{
	{ID: RuleAuthorFormat, Check: checkAuthorFormat},
	{ID: RuleYearFormat, Check: checkYearFormat},
	{ID: RuleTitleCase, Check: checkTitleCase},
	{ID: RuleDOIPresence, AppliesTo: []types.CitationType{types.TypeJournal}, Check: checkDOIPresence},
	{ID: RuleDOIFormat, Check: checkDOIFormat},
	{ID: RuleVolumeIssue, AppliesTo: []types.CitationType{types.TypeJournal}, Check: checkVolumeIssue},
	{ID: RulePageFormat, AppliesTo: []types.CitationType{types.TypeJournal, types.TypeChapter}, Check: checkPageFormat},
	{ID: RuleAmpersand, Check: checkAmpersand},
	{ID: RuleSourceTitleCase, AppliesTo: []types.CitationType{types.TypeJournal, types.TypeConference}, Check: checkSourceTitleCase},
	{ID: RuleChapterStructure, AppliesTo: []types.CitationType{types.TypeChapter}, Check: checkChapterStructure},
	{ID: RulePublisher, AppliesTo: []types.CitationType{types.TypeBook, types.TypeChapter, types.TypeReport}, Check: checkPublisher},
	{ID: RuleBracketType, AppliesTo: []types.CitationType{types.TypeConference, types.TypeDissertation}, Check: checkBracketType},
	{ID: RuleConferenceInfo, AppliesTo: []types.CitationType{types.TypeConference}, Check: checkConferenceInfo},
	{ID: RuleInstitution, AppliesTo: []types.CitationType{types.TypeDissertation}, Check: checkInstitution},
	{ID: RuleReportNumber, AppliesTo: []types.CitationType{types.TypeReport}, Check: checkReportNumber},
	{ID: RuleEditionFormat, AppliesTo: []types.CitationType{types.TypeBook, types.TypeChapter}, Check: checkEditionFormat},
	{ID: RuleTerminalPeriod, Check: checkTerminalPeriod},
}

// All returns the full rule set.
func All() []Rule {
	return ruleTable
}

// ForType filters the rule set down to the rules applicable to t.
func ForType(t types.CitationType) []Rule {
	var out []Rule
	for _, r := range ruleTable {
		if r.AppliesTo == nil {
			out = append(out, r)
			continue
		}
		for _, at := range r.AppliesTo {
			if at == t {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Evaluate runs every applicable rule and returns the flat violation list.
// Rule order affects display order only, never content.
func Evaluate(c types.Citation) []types.Violation {
	var out []types.Violation
	for _, r := range ForType(c.Type) {
		out = append(out, r.Check(c)...)
	}
	return out
}

// violation builds a Violation, forcing the AutoFixable flag and the
// suggestion to agree: no suggestion, no auto-fix.
func violation(rule, field, msg string, sev types.Severity, original, suggested string, fixable bool) types.Violation {
	if suggested == "" {
		fixable = false
	}
	return types.Violation{
		RuleID:      rule,
		Field:       field,
		Message:     msg,
		Severity:    sev,
		Original:    original,
		Suggested:   suggested,
		AutoFixable: fixable,
	}
}
