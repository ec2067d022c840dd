// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/toolhub/internal/calculator"
	"github.com/iwvelando/toolhub/pkg/amortization"
	"github.com/iwvelando/toolhub/pkg/constants"
)

// FindLoan finds a loan result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindLoan(results []calculator.LoanResult, name string) *calculator.LoanResult {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindGrowth finds a growth result by name in the results slice.
func FindGrowth(results []calculator.GrowthResult, name string) *calculator.GrowthResult {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// ApproxEqual reports whether a and b differ by no more than tolerance.
func ApproxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// CheckSchedule asserts the invariants every amortization schedule holds:
// sequential periods, principal portions summing to the financed amount, a
// non-increasing balance and a final balance of exactly zero.
func CheckSchedule(t testing.TB, schedule []amortization.Entry, financed float64) {
	t.Helper()

	if len(schedule) == 0 {
		t.Fatal("schedule is empty")
	}

	principal := 0.0
	previous := financed
	for i, e := range schedule {
		if e.Period != i+1 {
			t.Errorf("entry %d has period %d", i, e.Period)
		}
		if e.RemainingBalance > previous+constants.BalanceEpsilon {
			t.Errorf("period %d: balance rose from %.6f to %.6f", e.Period, previous, e.RemainingBalance)
		}
		if !ApproxEqual(e.Payment, e.PrincipalPortion+e.InterestPortion, constants.BalanceEpsilon*1e3) {
			t.Errorf("period %d: payment %.6f != principal %.6f + interest %.6f",
				e.Period, e.Payment, e.PrincipalPortion, e.InterestPortion)
		}
		principal += e.PrincipalPortion
		previous = e.RemainingBalance
	}

	if !ApproxEqual(principal, financed, constants.CurrencyTolerance) {
		t.Errorf("principal portions sum to %.6f, want %.6f", principal, financed)
	}
	if last := schedule[len(schedule)-1]; last.RemainingBalance != 0 {
		t.Errorf("final balance = %v, want 0", last.RemainingBalance)
	}
}
