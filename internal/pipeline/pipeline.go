// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full validation flow: parse, optional
// enrichment, rule evaluation, auto-fix, reconstruction, scoring.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/cite-check/internal/enrich"
	"github.com/pdiddy/cite-check/internal/fix"
	"github.com/pdiddy/cite-check/internal/parse"
	"github.com/pdiddy/cite-check/internal/rules"
	"github.com/pdiddy/cite-check/pkg/types"
)

var (
	// ErrEmptyInput is returned when the request carries no citation text.
	ErrEmptyInput = errors.New("no citation text provided")
	// ErrInternal masks unexpected pipeline faults at the boundary.
	ErrInternal = errors.New("internal validation error")
)

// Options controls one validation request.
type Options struct {
	// Enrich enables the external metadata lookup. Requires Enricher.
	Enrich   bool
	Enricher *enrich.Enricher
}

// Validate parses the input text (one citation per blank-line-separated
// block), optionally enriches each record, evaluates the applicable
// rules, applies auto-fixes, and scores the result. Results are in input
// order; failures local to one citation never affect its siblings.
func Validate(ctx context.Context, text string, opts Options) (results []types.ValidationResult, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	// An unexpected panic anywhere in the pipeline surfaces as a generic
	// internal error, never as a crash or a leaked stack.
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	citations := parse.ParseMany(text)

	extra := make([][]types.Violation, len(citations))
	if opts.Enrich && opts.Enricher != nil {
		citations, extra = opts.Enricher.EnrichBatch(ctx, citations)
	}

	results = make([]types.ValidationResult, 0, len(citations))
	for i, c := range citations {
		violations := append(extra[i], rules.Evaluate(c)...)
		fixed := fix.Apply(c, violations)
		results = append(results, types.ValidationResult{
			Citation:   fixed.Corrected,
			Violations: violations,
			Applied:    fixed.Applied,
			Hints:      fixed.Hints,
			Formatted:  fixed.Formatted,
			Score:      fix.Score(violations, fixed.Applied),
		})
	}
	return results, nil
}
