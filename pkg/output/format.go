// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/toolhub/internal/calculator"
	"github.com/iwvelando/toolhub/pkg/format"
	"github.com/iwvelando/toolhub/pkg/percent"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable report.
// Schedules and yearly breakdowns are included when withSchedule is set.
func PrettyFormat(w io.Writer, batch calculator.BatchResult, withSchedule bool) error {
	p := message.NewPrinter(language.English)
	batch = batch.Rounded()
	ew := &errWriter{w: w}

	sections := 0
	separate := func() {
		if sections > 0 {
			ew.printf("\n")
		}
		sections++
	}

	for _, loan := range batch.Loans {
		separate()
		ew.printf("--- Loan %s ---\n", loan.Name)
		ew.line(p.Sprintf("Financed amount  | $%.2f", loan.FinancedAmount))
		ew.line(fmt.Sprintf("Rate             | %s over %d payments (%.6f per period)",
			format.Percent(loan.Terms.AnnualRatePercent), loan.NumberOfPayments, loan.PeriodRate))
		ew.line(p.Sprintf("Payment          | $%.2f", loan.PeriodicPayment))
		if loan.ExtraPerPeriod > 0 {
			ew.line(p.Sprintf("Extra payment    | $%.2f, paid off after %d payments", loan.ExtraPerPeriod, loan.PayoffPeriods))
			ew.line(p.Sprintf("Interest saved   | $%.2f", loan.InterestSaved))
		}
		ew.line(p.Sprintf("Total interest   | $%.2f", loan.TotalInterest))
		ew.line(p.Sprintf("Total paid       | $%.2f", loan.TotalPaid))
		ew.line(p.Sprintf("Total cost       | $%.2f", loan.TotalCost))

		if withSchedule && len(loan.Schedule) > 0 {
			ew.printf("\nPeriod | Payment | Principal | Interest | Balance\n")
			ew.printf("______ | _______ | _________ | ________ | _______\n")
			for _, e := range loan.Schedule {
				ew.line(p.Sprintf("%d | $%.2f | $%.2f | $%.2f | $%.2f",
					e.Period, e.Payment, e.PrincipalPortion, e.InterestPortion, e.RemainingBalance))
			}
		}
	}

	for _, m := range batch.Mortgages {
		separate()
		ew.printf("--- Mortgage %s ---\n", m.Name)
		ew.line(p.Sprintf("Loan amount      | $%.2f", m.LoanAmount))
		ew.line(fmt.Sprintf("Rate             | %s over %d months", format.Percent(m.Terms.AnnualRatePercent), m.NumberOfPayments))
		ew.line(p.Sprintf("Principal + int. | $%.2f", m.MonthlyPrincipalAndInterest))
		ew.line(p.Sprintf("Property tax     | $%.2f", m.MonthlyTax))
		ew.line(p.Sprintf("Insurance        | $%.2f", m.MonthlyInsurance))
		ew.line(p.Sprintf("PMI              | $%.2f for %d months", m.InitialPMI, m.PMIPeriods))
		ew.line(p.Sprintf("Monthly payment  | $%.2f", m.InitialTotalPayment))
		ew.line(p.Sprintf("Total interest   | $%.2f", m.TotalInterest))
		ew.line(p.Sprintf("Total PMI        | $%.2f", m.TotalPMI))
		ew.line(p.Sprintf("Total cost       | $%.2f", m.TotalCost))

		if withSchedule && len(m.Schedule) > 0 {
			ew.printf("\nMonth | Principal | Interest | PMI | Tax | Insurance | Total | Balance\n")
			ew.printf("_____ | _________ | ________ | ___ | ___ | _________ | _____ | _______\n")
			for _, e := range m.Schedule {
				ew.line(p.Sprintf("%d | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f",
					e.Period, e.PrincipalPortion, e.InterestPortion, e.PMI, e.Tax, e.Insurance, e.TotalPayment, e.RemainingBalance))
			}
		}
	}

	for _, g := range batch.Growth {
		separate()
		ew.printf("--- Growth %s ---\n", g.Name)
		ew.line(fmt.Sprintf("Rate             | %s compounded %d times a year for %g years",
			format.Percent(g.Input.AnnualRatePercent), g.Input.CompoundingFrequency, g.Input.Years))
		ew.line(p.Sprintf("Final amount     | $%.2f", g.FinalAmount))
		ew.line(p.Sprintf("Contributions    | $%.2f", g.TotalContributions))
		ew.line(p.Sprintf("Interest earned  | $%.2f", g.TotalInterest))

		if withSchedule && len(g.YearlyBreakdown) > 0 {
			ew.printf("\nYear | Start | Contributions | Interest | End\n")
			ew.printf("____ | _____ | _____________ | ________ | ___\n")
			for _, row := range g.YearlyBreakdown {
				ew.line(p.Sprintf("%d | $%.2f | $%.2f | $%.2f | $%.2f",
					row.Year, row.StartingAmount, row.Contributions, row.InterestEarned, row.EndingAmount))
			}
		}
	}

	for _, tip := range batch.Tips {
		separate()
		ew.printf("--- Tip %s ---\n", tip.Name)
		ew.line(fmt.Sprintf("Tip              | %s of %s", format.Percent(tip.Input.TipPercent), format.Currency(tip.Input.Bill)))
		ew.line(p.Sprintf("Tip amount       | $%.2f", tip.Tip))
		ew.line(p.Sprintf("Total            | $%.2f", tip.Total))
		if tip.Input.People > 1 {
			ew.line(p.Sprintf("Per person       | $%.2f (tip $%.2f) for %d people", tip.PerPerson, tip.TipPerPerson, tip.Input.People))
		}
	}

	for _, pct := range batch.Percents {
		separate()
		ew.printf("--- Percentage %s ---\n", pct.Name)
		ew.line("Question         | " + question(pct.Input))
		if pct.IsPercent {
			ew.line("Answer           | " + format.Percent(pct.Answer))
		} else {
			ew.line(p.Sprintf("Answer           | %.2f", pct.Answer))
		}
	}

	return ew.err
}

func question(in percent.Input) string {
	switch in.Operation {
	case percent.OperationOf:
		return fmt.Sprintf("%s of %s", format.Percent(in.Percent), number(in.Value))
	case percent.OperationWhatPercent:
		return fmt.Sprintf("%s as a share of %s", number(in.Part), number(in.Whole))
	case percent.OperationChange:
		return fmt.Sprintf("change from %s to %s", number(in.From), number(in.To))
	}
	return in.Operation
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// errWriter keeps the first write error so the report can be written
// without checking every line.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) line(s string) {
	ew.printf("%s\n", s)
}
