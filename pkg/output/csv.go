package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iwvelando/toolhub/internal/calculator"
)

// CsvFormat writes one section per calculation in comma-separated value
// format: a header and summary row, then the schedule rows when present.
// Sections are separated by an empty record.
func CsvFormat(w io.Writer, batch calculator.BatchResult) error {
	batch = batch.Rounded()
	cw := csv.NewWriter(w)

	first := true
	section := func(records ...[]string) {
		if !first {
			_ = cw.Write([]string{})
		}
		first = false
		_ = cw.WriteAll(records)
	}

	for _, loan := range batch.Loans {
		records := [][]string{
			{"loan", "financed amount", "period rate", "payment", "number of payments", "payoff periods", "total paid", "total interest", "total cost", "interest saved"},
			{loan.Name, money(loan.FinancedAmount), decimal(loan.PeriodRate, 6), money(loan.PeriodicPayment),
				strconv.Itoa(loan.NumberOfPayments), strconv.Itoa(loan.PayoffPeriods), money(loan.TotalPaid),
				money(loan.TotalInterest), money(loan.TotalCost), money(loan.InterestSaved)},
		}
		if len(loan.Schedule) > 0 {
			records = append(records, []string{"period", "payment", "principal", "interest", "balance"})
			for _, e := range loan.Schedule {
				records = append(records, []string{strconv.Itoa(e.Period), money(e.Payment),
					money(e.PrincipalPortion), money(e.InterestPortion), money(e.RemainingBalance)})
			}
		}
		section(records...)
	}

	for _, m := range batch.Mortgages {
		records := [][]string{
			{"mortgage", "loan amount", "principal and interest", "tax", "insurance", "initial pmi", "initial payment", "pmi months", "total pmi", "total interest", "total cost"},
			{m.Name, money(m.LoanAmount), money(m.MonthlyPrincipalAndInterest), money(m.MonthlyTax),
				money(m.MonthlyInsurance), money(m.InitialPMI), money(m.InitialTotalPayment),
				strconv.Itoa(m.PMIPeriods), money(m.TotalPMI), money(m.TotalInterest), money(m.TotalCost)},
		}
		if len(m.Schedule) > 0 {
			records = append(records, []string{"month", "principal", "interest", "pmi", "tax", "insurance", "total", "balance"})
			for _, e := range m.Schedule {
				records = append(records, []string{strconv.Itoa(e.Period), money(e.PrincipalPortion),
					money(e.InterestPortion), money(e.PMI), money(e.Tax), money(e.Insurance),
					money(e.TotalPayment), money(e.RemainingBalance)})
			}
		}
		section(records...)
	}

	for _, g := range batch.Growth {
		records := [][]string{
			{"growth", "final amount", "total contributions", "total interest"},
			{g.Name, money(g.FinalAmount), money(g.TotalContributions), money(g.TotalInterest)},
		}
		if len(g.YearlyBreakdown) > 0 {
			records = append(records, []string{"year", "starting amount", "contributions", "interest", "ending amount"})
			for _, row := range g.YearlyBreakdown {
				records = append(records, []string{strconv.Itoa(row.Year), money(row.StartingAmount),
					money(row.Contributions), money(row.InterestEarned), money(row.EndingAmount)})
			}
		}
		section(records...)
	}

	for _, tip := range batch.Tips {
		section(
			[]string{"tip", "bill", "tip", "total", "tip per person", "per person"},
			[]string{tip.Name, money(tip.Input.Bill), money(tip.Tip), money(tip.Total), money(tip.TipPerPerson), money(tip.PerPerson)},
		)
	}

	for _, pct := range batch.Percents {
		section(
			[]string{"percentage", "operation", "answer", "unit"},
			[]string{pct.Name, pct.Input.Operation, decimal(pct.Answer, -1), unit(pct.IsPercent)},
		)
	}

	cw.Flush()
	return cw.Error()
}

func unit(isPercent bool) string {
	if isPercent {
		return "percent"
	}
	return "amount"
}

func money(v float64) string {
	return decimal(v, 2)
}

func decimal(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}
