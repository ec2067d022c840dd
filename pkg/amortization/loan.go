package amortization

import "github.com/iwvelando/toolhub/pkg/mathutil"

// Summary aggregates a computed loan.
type Summary struct {
	FinancedAmount   float64 `json:"financedAmount"`
	PeriodRate       float64 `json:"periodRate"`
	PeriodicPayment  float64 `json:"periodicPayment"`
	NumberOfPayments int     `json:"numberOfPayments"`
	PayoffPeriods    int     `json:"payoffPeriods"`
	TotalPaid        float64 `json:"totalPaid"`
	TotalInterest    float64 `json:"totalInterest"`
	TotalCost        float64 `json:"totalCost"`
	InterestSaved    float64 `json:"interestSaved,omitempty"`
}

// Result is a loan summary together with its schedule.
type Result struct {
	Terms          LoanTerms `json:"terms"`
	ExtraPerPeriod float64   `json:"extraPerPeriod,omitempty"`
	Summary
	Schedule []Entry `json:"schedule,omitempty"`
}

// Calculate computes the payment, schedule and totals for the given terms.
// extraPerPeriod is an optional additional principal payment made every
// period. Terms are expected to be validated by the caller.
func Calculate(terms LoanTerms, extraPerPeriod float64) Result {
	financed := terms.FinancedAmount()
	periodRate := terms.PeriodRate()
	totalPeriods := terms.TotalPeriods()
	payment := PeriodicPayment(financed, periodRate, totalPeriods)

	schedule := ComputeScheduleWithExtra(financed, periodRate, totalPeriods, payment, extraPerPeriod)
	paid, _, interest := Totals(schedule)

	result := Result{
		Terms:          terms,
		ExtraPerPeriod: extraPerPeriod,
		Summary: Summary{
			FinancedAmount:   financed,
			PeriodRate:       periodRate,
			PeriodicPayment:  payment,
			NumberOfPayments: totalPeriods,
			PayoffPeriods:    len(schedule),
			TotalPaid:        paid,
			TotalInterest:    interest,
			TotalCost:        paid + terms.DownPayment,
		},
		Schedule: schedule,
	}

	if extraPerPeriod > 0 {
		_, _, baselineInterest := Totals(ComputeSchedule(financed, periodRate, totalPeriods, payment))
		result.InterestSaved = baselineInterest - interest
	}

	return result
}

// Rounded returns a copy of the result with monetary values rounded to cents
// and the period rate rounded to six decimals.
func (r Result) Rounded() Result {
	rounded := Result{
		Terms:          r.Terms,
		ExtraPerPeriod: mathutil.Round(r.ExtraPerPeriod),
		Summary: Summary{
			FinancedAmount:   mathutil.Round(r.FinancedAmount),
			PeriodRate:       mathutil.RoundTo(r.PeriodRate, 6),
			PeriodicPayment:  mathutil.Round(r.PeriodicPayment),
			NumberOfPayments: r.NumberOfPayments,
			PayoffPeriods:    r.PayoffPeriods,
			TotalPaid:        mathutil.Round(r.TotalPaid),
			TotalInterest:    mathutil.Round(r.TotalInterest),
			TotalCost:        mathutil.Round(r.TotalCost),
			InterestSaved:    mathutil.Round(r.InterestSaved),
		},
	}
	if r.Schedule != nil {
		rounded.Schedule = make([]Entry, len(r.Schedule))
		for i, entry := range r.Schedule {
			rounded.Schedule[i] = entry.Rounded()
		}
	}
	return rounded
}

// WithoutSchedule returns a copy of the result that omits the schedule.
func (r Result) WithoutSchedule() Result {
	r.Schedule = nil
	return r
}
