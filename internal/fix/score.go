// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fix

import (
	"math"

	"github.com/pdiddy/cite-check/pkg/types"
)

// severityWeight is the deduction per violation.
var severityWeight = map[types.Severity]float64{
	types.SeverityError:   15,
	types.SeverityWarning: 10,
	types.SeverityInfo:    5,
}

// Score computes the 0-100 compliance score. Every violation deducts its
// severity weight; every applied fix earns back half the deduction of the
// violation it resolved (matched by rule and field). A fully auto-fixed
// warning therefore still costs 5 points: fixes are rewarded, but the
// original lapse is never fully forgiven.
func Score(violations []types.Violation, applied []types.AppliedFix) int {
	total := 100.0
	for _, v := range violations {
		total -= severityWeight[v.Severity]
	}
	used := make([]bool, len(violations))
	for _, f := range applied {
		if i := matchViolation(violations, used, f); i >= 0 {
			used[i] = true
			total += severityWeight[violations[i].Severity] / 2
		}
	}
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	return int(math.Round(total))
}

// matchViolation finds the first unclaimed violation with the same rule
// and field, so duplicate findings on one field each credit their own fix.
func matchViolation(violations []types.Violation, used []bool, f types.AppliedFix) int {
	for i, v := range violations {
		if !used[i] && v.RuleID == f.RuleID && v.Field == f.Field {
			return i
		}
	}
	return -1
}
