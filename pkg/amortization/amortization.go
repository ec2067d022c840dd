// Package amortization computes periodic loan payments and the schedule that
// splits each payment between interest and principal.
//
// All values are kept unrounded. Callers round at presentation time with
// Entry.Rounded or Result.Rounded so that long schedules do not accumulate
// rounding drift.
package amortization

import (
	"math"

	"github.com/iwvelando/toolhub/pkg/constants"
	"github.com/iwvelando/toolhub/pkg/mathutil"
)

// LoanTerms describes a fixed-rate loan.
type LoanTerms struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         float64 `json:"termYears"`
	PaymentsPerYear   int     `json:"paymentsPerYear,omitempty"` // defaults to monthly
	DownPayment       float64 `json:"downPayment,omitempty"`
}

// FinancedAmount is the amount borrowed after the down payment.
func (t LoanTerms) FinancedAmount() float64 {
	return t.Principal - t.DownPayment
}

// Frequency returns the number of payments per year, defaulting to monthly.
func (t LoanTerms) Frequency() int {
	if t.PaymentsPerYear <= 0 {
		return constants.Monthly
	}
	return t.PaymentsPerYear
}

// PeriodRate returns the interest rate applied each payment period.
func (t LoanTerms) PeriodRate() float64 {
	return mathutil.PercentToDecimal(t.AnnualRatePercent) / float64(t.Frequency())
}

// TotalPeriods returns the number of scheduled payments.
func (t LoanTerms) TotalPeriods() int {
	return int(math.Round(t.TermYears * float64(t.Frequency())))
}

// Entry holds the values for a given payment.
type Entry struct {
	Period           int     `json:"period"`
	Payment          float64 `json:"payment"`
	PrincipalPortion float64 `json:"principalPortion"`
	InterestPortion  float64 `json:"interestPortion"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// Rounded returns a copy of the entry with monetary values rounded to cents.
func (e Entry) Rounded() Entry {
	return Entry{
		Period:           e.Period,
		Payment:          mathutil.Round(e.Payment),
		PrincipalPortion: mathutil.Round(e.PrincipalPortion),
		InterestPortion:  mathutil.Round(e.InterestPortion),
		RemainingBalance: mathutil.Round(e.RemainingBalance),
	}
}

// PeriodicPayment calculates the payment for a loan using the standard annuity
// formula. A zero rate divides the principal evenly across the periods.
func PeriodicPayment(principal, periodRate float64, totalPeriods int) float64 {
	if totalPeriods <= 0 {
		return 0
	}
	if periodRate == 0 {
		return principal / float64(totalPeriods)
	}

	power := math.Pow(1.00+periodRate, float64(totalPeriods))
	discountFactor := (power - 1.00) / power
	return principal * periodRate / discountFactor
}

// InterestPayment calculates the interest accrued on a balance for one period.
func InterestPayment(balance, periodRate float64) float64 {
	return balance * periodRate
}

// ComputeSchedule unrolls the period-by-period schedule for a loan paid with a
// fixed periodic payment. The final entry absorbs floating point drift so the
// remaining balance always ends at exactly zero.
func ComputeSchedule(principal, periodRate float64, totalPeriods int, periodicPayment float64) []Entry {
	return ComputeScheduleWithExtra(principal, periodRate, totalPeriods, periodicPayment, 0)
}

// ComputeScheduleWithExtra is ComputeSchedule with an additional principal
// payment every period. The extra amount is capped to the outstanding balance,
// and the schedule stops as soon as the loan is paid off.
//
// The payment is expected to cover each period's interest, which holds for
// any payment produced by PeriodicPayment. A smaller payment is raised to the
// interest due so the balance never grows, and the final period settles
// whatever principal remains.
func ComputeScheduleWithExtra(principal, periodRate float64, totalPeriods int, periodicPayment, extraPerPeriod float64) []Entry {
	if totalPeriods <= 0 || principal <= 0 {
		return nil
	}
	if extraPerPeriod < 0 {
		extraPerPeriod = 0
	}

	schedule := make([]Entry, 0, totalPeriods)
	balance := principal
	for period := 1; period <= totalPeriods; period++ {
		interest := InterestPayment(balance, periodRate)
		payment := math.Max(periodicPayment+extraPerPeriod, interest)
		principalPaid := payment - interest

		if period == totalPeriods || principalPaid > balance ||
			mathutil.WithinTolerance(principalPaid, balance, constants.BalanceEpsilon) {
			principalPaid = balance
			payment = principalPaid + interest
			balance = 0
		} else {
			balance -= principalPaid
		}

		schedule = append(schedule, Entry{
			Period:           period,
			Payment:          payment,
			PrincipalPortion: principalPaid,
			InterestPortion:  interest,
			RemainingBalance: balance,
		})

		if balance == 0 {
			break
		}
	}

	return schedule
}

// Totals sums the payments, principal and interest of a schedule.
func Totals(schedule []Entry) (paid, principal, interest float64) {
	for _, entry := range schedule {
		paid += entry.Payment
		principal += entry.PrincipalPortion
		interest += entry.InterestPortion
	}
	return paid, principal, interest
}
