package growth

import (
	"math"
	"reflect"
	"testing"
)

func TestProjectExamples(t *testing.T) {
	tests := []struct {
		name          string
		input         Input
		expectedFinal float64
		tolerance     float64
	}{
		{
			name:          "Monthly compounding no contribution",
			input:         Input{Principal: 10000, AnnualRatePercent: 7, CompoundingFrequency: 12, Years: 10},
			expectedFinal: 20096.61,
			tolerance:     0.005,
		},
		{
			name:          "Annual compounding",
			input:         Input{Principal: 1000, AnnualRatePercent: 10, CompoundingFrequency: 1, Years: 2},
			expectedFinal: 1210,
			tolerance:     1e-9,
		},
		{
			name:          "Monthly contributions",
			input:         Input{Principal: 10000, AnnualRatePercent: 7, CompoundingFrequency: 12, Years: 10, PeriodicContribution: 100},
			expectedFinal: 20096.61 + 17308.48,
			tolerance:     0.02,
		},
		{
			name:          "Zero rate with contributions",
			input:         Input{Principal: 5000, AnnualRatePercent: 0, CompoundingFrequency: 4, Years: 3, PeriodicContribution: 200},
			expectedFinal: 12200,
			tolerance:     1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Project(tt.input)
			if math.Abs(result.FinalAmount-tt.expectedFinal) > tt.tolerance {
				t.Errorf("FinalAmount = %.4f, expected %.2f", result.FinalAmount, tt.expectedFinal)
			}
			expectedInterest := result.FinalAmount - tt.input.Principal - result.TotalContributions
			if math.Abs(result.TotalInterest-expectedInterest) > 1e-9 {
				t.Errorf("TotalInterest = %.4f, expected %.4f", result.TotalInterest, expectedInterest)
			}
		})
	}
}

func TestContributionValue(t *testing.T) {
	if got := ContributionValue(0, 7, 10); got != 0 {
		t.Errorf("zero contribution should contribute nothing, got %v", got)
	}
	if got := ContributionValue(150, 0, 4); got != 150*12*4 {
		t.Errorf("zero rate contribution = %v, expected %v", got, 150*12*4)
	}
	if got := ContributionValue(100, 12, 1); math.Abs(got-1268.25) > 0.01 {
		t.Errorf("ContributionValue(100, 12%%, 1y) = %.4f, expected 1268.25", got)
	}
}

func TestYearlyBreakdownConsistency(t *testing.T) {
	input := Input{Principal: 2500, AnnualRatePercent: 5.5, CompoundingFrequency: 365, Years: 7, PeriodicContribution: 50}
	result := Project(input)

	if len(result.YearlyBreakdown) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(result.YearlyBreakdown))
	}

	interest := 0.0
	contributions := 0.0
	for i, row := range result.YearlyBreakdown {
		if row.Year != i+1 {
			t.Errorf("row %d has year %d", i, row.Year)
		}
		if i > 0 && row.StartingAmount != result.YearlyBreakdown[i-1].EndingAmount {
			t.Errorf("year %d starts at %.2f but previous year ended at %.2f",
				row.Year, row.StartingAmount, result.YearlyBreakdown[i-1].EndingAmount)
		}
		moved := row.StartingAmount + row.Contributions + row.InterestEarned
		if math.Abs(moved-row.EndingAmount) > 1e-9 {
			t.Errorf("year %d: %.4f + %.4f + %.4f != %.4f",
				row.Year, row.StartingAmount, row.Contributions, row.InterestEarned, row.EndingAmount)
		}
		interest += row.InterestEarned
		contributions += row.Contributions
	}

	if result.YearlyBreakdown[0].StartingAmount != input.Principal {
		t.Errorf("first year starts at %v, expected principal", result.YearlyBreakdown[0].StartingAmount)
	}
	if last := result.YearlyBreakdown[6]; last.EndingAmount != result.FinalAmount {
		t.Errorf("last year ends at %v, expected final amount %v", last.EndingAmount, result.FinalAmount)
	}
	if math.Abs(interest-result.TotalInterest) > 1e-6 {
		t.Errorf("sum of yearly interest %.6f != total interest %.6f", interest, result.TotalInterest)
	}
	if math.Abs(contributions-result.TotalContributions) > 1e-6 {
		t.Errorf("sum of yearly contributions %.6f != total %.6f", contributions, result.TotalContributions)
	}
}

func TestFractionalYears(t *testing.T) {
	result := Project(Input{Principal: 1000, AnnualRatePercent: 4, CompoundingFrequency: 12, Years: 2.5, PeriodicContribution: 10})
	if len(result.YearlyBreakdown) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(result.YearlyBreakdown))
	}
	last := result.YearlyBreakdown[2]
	if math.Abs(last.Contributions-60) > 1e-9 {
		t.Errorf("partial year contributions = %v, expected 60", last.Contributions)
	}
	if last.EndingAmount != result.FinalAmount {
		t.Errorf("partial year should end at the final amount")
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	input := Input{Principal: 8000, AnnualRatePercent: 6.25, CompoundingFrequency: 4, Years: 12, PeriodicContribution: 75}
	first := Project(input)
	second := Project(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Project is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestRoundedAndWithoutBreakdown(t *testing.T) {
	result := Project(Input{Principal: 10000, AnnualRatePercent: 7, CompoundingFrequency: 12, Years: 10})
	rounded := result.Rounded()
	if rounded.FinalAmount != 20096.61 {
		t.Errorf("rounded final amount = %v, expected 20096.61", rounded.FinalAmount)
	}
	if len(rounded.YearlyBreakdown) != 10 {
		t.Errorf("rounded breakdown has %d rows, expected 10", len(rounded.YearlyBreakdown))
	}
	if result.WithoutBreakdown().YearlyBreakdown != nil {
		t.Errorf("WithoutBreakdown should drop the yearly rows")
	}
}
