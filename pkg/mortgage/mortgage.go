// Package mortgage layers private mortgage insurance, property tax and
// homeowner's insurance on top of a monthly amortization schedule.
package mortgage

import (
	"github.com/iwvelando/toolhub/pkg/amortization"
	"github.com/iwvelando/toolhub/pkg/constants"
	"github.com/iwvelando/toolhub/pkg/mathutil"
)

// Rider holds the optional costs charged alongside principal and interest.
type Rider struct {
	PMIRatePercent    float64 `json:"pmiRatePercent,omitempty"`
	AnnualPropertyTax float64 `json:"annualPropertyTax,omitempty"`
	AnnualInsurance   float64 `json:"annualInsurance,omitempty"`
}

// MonthlyTax is the flat monthly share of the annual property tax.
func (r Rider) MonthlyTax() float64 {
	return r.AnnualPropertyTax / constants.MonthsPerYear
}

// MonthlyInsurance is the flat monthly share of the annual insurance premium.
func (r Rider) MonthlyInsurance() float64 {
	return r.AnnualInsurance / constants.MonthsPerYear
}

// PMIPayment returns the insurance charged on a balance for one month. It is
// zero once the balance is at or below 80% of the original loan amount. The
// home price plays no part in the cutoff.
func PMIPayment(balance, originalLoanAmount, pmiRatePercent float64) float64 {
	if pmiRatePercent <= 0 || originalLoanAmount <= 0 {
		return 0
	}
	if balance/originalLoanAmount <= constants.PMILoanToValueCutoff {
		return 0
	}
	return balance * mathutil.PercentToDecimal(pmiRatePercent) / constants.MonthsPerYear
}

// Entry is an amortization entry with the rider costs for the same month.
type Entry struct {
	amortization.Entry
	PMI          float64 `json:"pmi"`
	Tax          float64 `json:"tax"`
	Insurance    float64 `json:"insurance"`
	TotalPayment float64 `json:"totalPayment"`
}

// Result summarises a mortgage and carries its monthly schedule.
type Result struct {
	Terms                       amortization.LoanTerms `json:"terms"`
	Rider                       Rider                  `json:"rider"`
	LoanAmount                  float64                `json:"loanAmount"`
	MonthlyPrincipalAndInterest float64                `json:"monthlyPrincipalAndInterest"`
	MonthlyTax                  float64                `json:"monthlyTax"`
	MonthlyInsurance            float64                `json:"monthlyInsurance"`
	InitialPMI                  float64                `json:"initialPmi"`
	InitialTotalPayment         float64                `json:"initialTotalPayment"`
	NumberOfPayments            int                    `json:"numberOfPayments"`
	PMIPeriods                  int                    `json:"pmiPeriods"`
	TotalPMI                    float64                `json:"totalPmi"`
	TotalInterest               float64                `json:"totalInterest"`
	TotalTax                    float64                `json:"totalTax"`
	TotalInsurance              float64                `json:"totalInsurance"`
	TotalCost                   float64                `json:"totalCost"`
	Schedule                    []Entry                `json:"schedule,omitempty"`
}

// Calculate computes a monthly mortgage for the given home price (terms
// Principal) and down payment. PaymentsPerYear is always monthly. Terms are
// expected to be validated by the caller.
func Calculate(terms amortization.LoanTerms, rider Rider) Result {
	terms.PaymentsPerYear = constants.Monthly
	loan := amortization.Calculate(terms, 0)

	result := Result{
		Terms:                       terms,
		Rider:                       rider,
		LoanAmount:                  loan.FinancedAmount,
		MonthlyPrincipalAndInterest: loan.PeriodicPayment,
		MonthlyTax:                  rider.MonthlyTax(),
		MonthlyInsurance:            rider.MonthlyInsurance(),
		NumberOfPayments:            loan.NumberOfPayments,
		TotalInterest:               loan.TotalInterest,
		Schedule:                    make([]Entry, 0, len(loan.Schedule)),
	}

	balance := loan.FinancedAmount
	for _, entry := range loan.Schedule {
		pmi := PMIPayment(balance, loan.FinancedAmount, rider.PMIRatePercent)
		if pmi > 0 {
			result.PMIPeriods++
		}

		withRider := Entry{
			Entry:        entry,
			PMI:          pmi,
			Tax:          result.MonthlyTax,
			Insurance:    result.MonthlyInsurance,
			TotalPayment: entry.Payment + pmi + result.MonthlyTax + result.MonthlyInsurance,
		}
		result.Schedule = append(result.Schedule, withRider)

		result.TotalPMI += pmi
		result.TotalTax += withRider.Tax
		result.TotalInsurance += withRider.Insurance
		balance = entry.RemainingBalance
	}

	if len(result.Schedule) > 0 {
		result.InitialPMI = result.Schedule[0].PMI
		result.InitialTotalPayment = result.Schedule[0].TotalPayment
	}

	result.TotalCost = terms.DownPayment + loan.TotalPaid + result.TotalPMI + result.TotalTax + result.TotalInsurance
	return result
}

// Rounded returns a copy of the result with monetary values rounded to cents.
func (r Result) Rounded() Result {
	rounded := r
	rounded.LoanAmount = mathutil.Round(r.LoanAmount)
	rounded.MonthlyPrincipalAndInterest = mathutil.Round(r.MonthlyPrincipalAndInterest)
	rounded.MonthlyTax = mathutil.Round(r.MonthlyTax)
	rounded.MonthlyInsurance = mathutil.Round(r.MonthlyInsurance)
	rounded.InitialPMI = mathutil.Round(r.InitialPMI)
	rounded.InitialTotalPayment = mathutil.Round(r.InitialTotalPayment)
	rounded.TotalPMI = mathutil.Round(r.TotalPMI)
	rounded.TotalInterest = mathutil.Round(r.TotalInterest)
	rounded.TotalTax = mathutil.Round(r.TotalTax)
	rounded.TotalInsurance = mathutil.Round(r.TotalInsurance)
	rounded.TotalCost = mathutil.Round(r.TotalCost)

	if r.Schedule != nil {
		rounded.Schedule = make([]Entry, len(r.Schedule))
		for i, entry := range r.Schedule {
			rounded.Schedule[i] = Entry{
				Entry:        entry.Entry.Rounded(),
				PMI:          mathutil.Round(entry.PMI),
				Tax:          mathutil.Round(entry.Tax),
				Insurance:    mathutil.Round(entry.Insurance),
				TotalPayment: mathutil.Round(entry.TotalPayment),
			}
		}
	}
	return rounded
}

// WithoutSchedule returns a copy of the result that omits the schedule.
func (r Result) WithoutSchedule() Result {
	r.Schedule = nil
	return r
}
