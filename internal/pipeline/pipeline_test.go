// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cite-check/internal/rules"
	"github.com/pdiddy/cite-check/pkg/types"
)

func TestValidateEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t"} {
		_, err := Validate(context.Background(), input, Options{})
		assert.ErrorIs(t, err, ErrEmptyInput, "input %q", input)
	}
}

func TestValidateCleanJournalCitation(t *testing.T) {
	text := "Kim, B. Y., & Lee, S. H. (2024). The impact of AI on education. Journal of Educational Technology, 45(2), 123–145. https://doi.org/10.1234/jet.2024"

	results, err := Validate(context.Background(), text, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, types.TypeJournal, r.Citation.Type)
	assert.Empty(t, r.Violations)
	assert.Equal(t, 100, r.Score)
	assert.NotEmpty(t, r.Formatted)
}

func TestValidateDetectsAndFixes(t *testing.T) {
	// Hyphenated page range on a journal is an auto-fixable warning;
	// the missing DOI is a non-fixable warning.
	text := "Kim, B. Y., & Lee, S. H. (2024). The impact of AI on education. Journal of Educational Technology, 45(2), 123-145."

	results, err := Validate(context.Background(), text, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	ids := violationIDs(r.Violations)
	assert.Contains(t, ids, rules.RulePageFormat)
	assert.Contains(t, ids, rules.RuleDOIPresence)

	require.NotEmpty(t, r.Applied)
	assert.Equal(t, "123–145", r.Citation.Pages)
	// 100 - 10 (pages warning) + 5 (fixed) - 10 (missing DOI) = 85.
	assert.Equal(t, 85, r.Score)

	// The unresolved DOI violation shows up as a hint.
	var hintIDs []string
	for _, h := range r.Hints {
		hintIDs = append(hintIDs, h.RuleID)
	}
	assert.Contains(t, hintIDs, rules.RuleDOIPresence)
}

func TestValidateMultipleCitationsInOrder(t *testing.T) {
	text := "Kim, B. Y. (2024). The impact of AI on education. Journal of Educational Technology, 45(2), 123–145. https://doi.org/10.1/a\n" +
		"\n" +
		"Author, A. (2023). Psychology of learning (4th ed.). Academic Press."

	results, err := Validate(context.Background(), text, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, types.TypeJournal, results[0].Citation.Type)
	assert.Equal(t, types.TypeBook, results[1].Citation.Type)
}

func TestValidateGarbageInputStillProducesResult(t *testing.T) {
	results, err := Validate(context.Background(), "not a citation at all", Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, types.TypeUnknown, r.Citation.Type)
	assert.Equal(t, "not a citation at all", r.Citation.Title)
	assert.GreaterOrEqual(t, r.Score, 0)
	assert.LessOrEqual(t, r.Score, 100)
}

func TestValidateScoreBounds(t *testing.T) {
	// A badly broken citation accumulates many violations; the score
	// must clamp at zero rather than going negative.
	text := "smith john and jones bob, 2024, some paper, some journal, Vol. 5, No. 2, pp. 10-20"

	results, err := Validate(context.Background(), text, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.GreaterOrEqual(t, results[0].Score, 0)
	assert.LessOrEqual(t, results[0].Score, 100)
}

func violationIDs(vs []types.Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.RuleID
	}
	return out
}
