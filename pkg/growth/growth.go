// Package growth projects the future value of a compounding balance with
// optional monthly contributions.
package growth

import (
	"math"

	"github.com/iwvelando/toolhub/pkg/constants"
	"github.com/iwvelando/toolhub/pkg/mathutil"
)

// Input describes a compound growth projection. PeriodicContribution is
// deposited monthly regardless of the compounding frequency.
type Input struct {
	Principal            float64 `json:"principal"`
	AnnualRatePercent    float64 `json:"annualRatePercent"`
	CompoundingFrequency int     `json:"compoundingFrequency"`
	Years                float64 `json:"years"`
	PeriodicContribution float64 `json:"periodicContribution,omitempty"`
}

// YearlyBreakdown is the balance movement over one year of the projection.
type YearlyBreakdown struct {
	Year           int     `json:"year"`
	StartingAmount float64 `json:"startingAmount"`
	Contributions  float64 `json:"contributions"`
	InterestEarned float64 `json:"interestEarned"`
	EndingAmount   float64 `json:"endingAmount"`
}

// Result is the outcome of a projection.
type Result struct {
	Input              Input             `json:"input"`
	FinalAmount        float64           `json:"finalAmount"`
	TotalContributions float64           `json:"totalContributions"`
	TotalInterest      float64           `json:"totalInterest"`
	YearlyBreakdown    []YearlyBreakdown `json:"yearlyBreakdown,omitempty"`
}

// PrincipalValue returns the compounded value of the principal after years.
func PrincipalValue(principal, annualRatePercent float64, compoundingFrequency int, years float64) float64 {
	if compoundingFrequency <= 0 {
		compoundingFrequency = constants.Annually
	}
	rate := mathutil.PercentToDecimal(annualRatePercent)
	n := float64(compoundingFrequency)
	return principal * math.Pow(1+rate/n, n*years)
}

// ContributionValue returns the future value of monthly contributions made
// for the given number of years. A zero rate falls back to the plain sum.
func ContributionValue(contribution, annualRatePercent, years float64) float64 {
	if contribution == 0 {
		return 0
	}
	rate := mathutil.PercentToDecimal(annualRatePercent)
	if rate == 0 {
		return contribution * constants.MonthsPerYear * years
	}
	monthlyRate := rate / constants.MonthsPerYear
	return contribution * (math.Pow(1+monthlyRate, constants.MonthsPerYear*years) - 1) / monthlyRate
}

// ValueAt returns the projected balance at time t in years.
func (in Input) ValueAt(t float64) float64 {
	return PrincipalValue(in.Principal, in.AnnualRatePercent, in.CompoundingFrequency, t) +
		ContributionValue(in.PeriodicContribution, in.AnnualRatePercent, t)
}

// Project computes the final amount, total interest and a per-year breakdown.
// A fractional final year yields a shorter last breakdown row.
func Project(in Input) Result {
	final := in.ValueAt(in.Years)
	contributions := in.PeriodicContribution * constants.MonthsPerYear * in.Years

	result := Result{
		Input:              in,
		FinalAmount:        final,
		TotalContributions: contributions,
		TotalInterest:      final - in.Principal - contributions,
	}

	if in.Years <= 0 {
		return result
	}

	years := int(math.Ceil(in.Years))
	result.YearlyBreakdown = make([]YearlyBreakdown, 0, years)
	start := in.Principal
	for year := 1; year <= years; year++ {
		tStart := float64(year - 1)
		tEnd := math.Min(float64(year), in.Years)

		end := in.ValueAt(tEnd)
		deposited := in.PeriodicContribution * constants.MonthsPerYear * (tEnd - tStart)
		result.YearlyBreakdown = append(result.YearlyBreakdown, YearlyBreakdown{
			Year:           year,
			StartingAmount: start,
			Contributions:  deposited,
			InterestEarned: end - start - deposited,
			EndingAmount:   end,
		})
		start = end
	}

	return result
}

// Rounded returns a copy of the result with monetary values rounded to cents.
func (r Result) Rounded() Result {
	rounded := Result{
		Input:              r.Input,
		FinalAmount:        mathutil.Round(r.FinalAmount),
		TotalContributions: mathutil.Round(r.TotalContributions),
		TotalInterest:      mathutil.Round(r.TotalInterest),
	}
	if r.YearlyBreakdown != nil {
		rounded.YearlyBreakdown = make([]YearlyBreakdown, len(r.YearlyBreakdown))
		for i, row := range r.YearlyBreakdown {
			rounded.YearlyBreakdown[i] = YearlyBreakdown{
				Year:           row.Year,
				StartingAmount: mathutil.Round(row.StartingAmount),
				Contributions:  mathutil.Round(row.Contributions),
				InterestEarned: mathutil.Round(row.InterestEarned),
				EndingAmount:   mathutil.Round(row.EndingAmount),
			}
		}
	}
	return rounded
}

// WithoutBreakdown returns a copy of the result that omits the yearly rows.
func (r Result) WithoutBreakdown() Result {
	r.YearlyBreakdown = nil
	return r
}
