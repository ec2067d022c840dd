package testutil

import (
	"testing"

	"github.com/iwvelando/toolhub/internal/calculator"
	"github.com/iwvelando/toolhub/pkg/amortization"
)

func TestFindLoan(t *testing.T) {
	results := []calculator.LoanResult{
		{Name: "car", Result: amortization.Result{Summary: amortization.Summary{PeriodicPayment: 471.78}}},
		{Name: "boat", Result: amortization.Result{Summary: amortization.Summary{PeriodicPayment: 120}}},
	}

	tests := []struct {
		name            string
		searchName      string
		expectFound     bool
		expectedPayment float64
	}{
		{"Find first loan", "car", true, 471.78},
		{"Find second loan", "boat", true, 120},
		{"Search for non-existent loan", "plane", false, 0},
		{"Search is case sensitive", "Car", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindLoan(results, tt.searchName)
			if !tt.expectFound {
				if got != nil {
					t.Errorf("FindLoan(%q) expected nil, got %+v", tt.searchName, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("FindLoan(%q) expected a result", tt.searchName)
			}
			if got.PeriodicPayment != tt.expectedPayment {
				t.Errorf("payment = %v, want %v", got.PeriodicPayment, tt.expectedPayment)
			}
		})
	}

	if FindLoan(nil, "car") != nil {
		t.Error("FindLoan on nil slice should return nil")
	}

	// The pointer refers to the slice element.
	FindLoan(results, "boat").Name = "ship"
	if results[1].Name != "ship" {
		t.Error("FindLoan should return a pointer into the slice")
	}
}

func TestFindGrowth(t *testing.T) {
	results := []calculator.GrowthResult{{Name: "savings"}}
	if FindGrowth(results, "savings") == nil {
		t.Error("expected to find savings")
	}
	if FindGrowth(results, "retirement") != nil {
		t.Error("did not expect to find retirement")
	}
}

func TestApproxEqual(t *testing.T) {
	tests := []struct {
		a, b, tol float64
		expected  bool
	}{
		{1.0, 1.0, 0, true},
		{1.0, 1.005, 0.01, true},
		{1.0, 1.02, 0.01, false},
		{-5, -5.001, 0.01, true},
	}

	for _, tt := range tests {
		if got := ApproxEqual(tt.a, tt.b, tt.tol); got != tt.expected {
			t.Errorf("ApproxEqual(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.tol, got, tt.expected)
		}
	}
}

func TestCheckSchedule(t *testing.T) {
	terms := amortization.LoanTerms{Principal: 12000, AnnualRatePercent: 6, TermYears: 2}
	result := amortization.Calculate(terms, 0)
	CheckSchedule(t, result.Schedule, result.FinancedAmount)

	withExtra := amortization.Calculate(terms, 300)
	CheckSchedule(t, withExtra.Schedule, withExtra.FinancedAmount)
}
