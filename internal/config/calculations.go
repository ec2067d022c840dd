package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/toolhub/pkg/amortization"
	"github.com/iwvelando/toolhub/pkg/constants"
	"github.com/iwvelando/toolhub/pkg/growth"
	"github.com/iwvelando/toolhub/pkg/mortgage"
	"github.com/iwvelando/toolhub/pkg/percent"
)

// Loan indicates a loan and its parameters.
type Loan struct {
	Name            string  `yaml:"name,omitempty" mapstructure:"name" json:"name,omitempty"`
	Principal       float64 `yaml:"principal" mapstructure:"principal" json:"principal"`
	DownPayment     float64 `yaml:"downPayment,omitempty" mapstructure:"downPayment" json:"downPayment,omitempty"`
	// AnnualRate is a percentage such as 6.5.
	AnnualRate      float64 `yaml:"annualRate" mapstructure:"annualRate" json:"annualRate"`
	TermYears       float64 `yaml:"termYears" mapstructure:"termYears" json:"termYears"`
	PaymentsPerYear int     `yaml:"paymentsPerYear,omitempty" mapstructure:"paymentsPerYear" json:"paymentsPerYear,omitempty"`
	// ExtraPayment is added to every payment.
	ExtraPayment    float64 `yaml:"extraPayment,omitempty" mapstructure:"extraPayment" json:"extraPayment,omitempty"`
}

// Terms converts the loan into engine terms.
func (l Loan) Terms() amortization.LoanTerms {
	return amortization.LoanTerms{
		Principal:         l.Principal,
		AnnualRatePercent: l.AnnualRate,
		TermYears:         l.TermYears,
		PaymentsPerYear:   l.PaymentsPerYear,
		DownPayment:       l.DownPayment,
	}
}

// Mortgage indicates a home purchase financed with a monthly mortgage.
type Mortgage struct {
	Name              string  `yaml:"name,omitempty" mapstructure:"name" json:"name,omitempty"`
	HomePrice         float64 `yaml:"homePrice" mapstructure:"homePrice" json:"homePrice"`
	DownPayment       float64 `yaml:"downPayment,omitempty" mapstructure:"downPayment" json:"downPayment,omitempty"`
	// AnnualRate is a percentage such as 6.5.
	AnnualRate        float64 `yaml:"annualRate" mapstructure:"annualRate" json:"annualRate"`
	TermYears         float64 `yaml:"termYears" mapstructure:"termYears" json:"termYears"`
	// PMIRate is an annual percentage of the remaining balance.
	PMIRate           float64 `yaml:"pmiRate,omitempty" mapstructure:"pmiRate" json:"pmiRate,omitempty"`
	AnnualPropertyTax float64 `yaml:"annualPropertyTax,omitempty" mapstructure:"annualPropertyTax" json:"annualPropertyTax,omitempty"`
	AnnualInsurance   float64 `yaml:"annualInsurance,omitempty" mapstructure:"annualInsurance" json:"annualInsurance,omitempty"`
}

// Terms converts the mortgage into engine terms.
func (m Mortgage) Terms() amortization.LoanTerms {
	return amortization.LoanTerms{
		Principal:         m.HomePrice,
		AnnualRatePercent: m.AnnualRate,
		TermYears:         m.TermYears,
		PaymentsPerYear:   constants.Monthly,
		DownPayment:       m.DownPayment,
	}
}

// Rider converts the mortgage costs into an engine rider.
func (m Mortgage) Rider() mortgage.Rider {
	return mortgage.Rider{
		PMIRatePercent:    m.PMIRate,
		AnnualPropertyTax: m.AnnualPropertyTax,
		AnnualInsurance:   m.AnnualInsurance,
	}
}

// Growth indicates a compound growth projection.
type Growth struct {
	Name                string  `yaml:"name,omitempty" mapstructure:"name" json:"name,omitempty"`
	Principal           float64 `yaml:"principal" mapstructure:"principal" json:"principal"`
	// AnnualRate is a percentage such as 6.5.
	AnnualRate          float64 `yaml:"annualRate" mapstructure:"annualRate" json:"annualRate"`
	Compounding         string  `yaml:"compounding,omitempty" mapstructure:"compounding" json:"compounding,omitempty"`
	Years               float64 `yaml:"years" mapstructure:"years" json:"years"`
	MonthlyContribution float64 `yaml:"monthlyContribution,omitempty" mapstructure:"monthlyContribution" json:"monthlyContribution,omitempty"`
}

// Input converts the projection into engine input. An unparseable
// compounding frequency becomes 0 and is rejected by validation.
func (g Growth) Input() growth.Input {
	frequency, _ := ParseFrequency(g.Compounding)
	return growth.Input{
		Principal:            g.Principal,
		AnnualRatePercent:    g.AnnualRate,
		CompoundingFrequency: frequency,
		Years:                g.Years,
		PeriodicContribution: g.MonthlyContribution,
	}
}

// Tip indicates a bill to split.
type Tip struct {
	Name       string  `yaml:"name,omitempty" mapstructure:"name" json:"name,omitempty"`
	Bill       float64 `yaml:"bill" mapstructure:"bill" json:"bill"`
	TipPercent float64 `yaml:"tipPercent" mapstructure:"tipPercent" json:"tipPercent"`
	People     int     `yaml:"people,omitempty" mapstructure:"people" json:"people,omitempty"`
}

// Input converts the tip into engine input.
func (t Tip) Input() percent.TipInput {
	return percent.TipInput{Bill: t.Bill, TipPercent: t.TipPercent, People: t.People}
}

// Percent indicates a percentage question. Operation is one of "of",
// "whatPercent" or "change", and only that operation's operands are read.
type Percent struct {
	Name      string  `yaml:"name,omitempty" mapstructure:"name" json:"name,omitempty"`
	Operation string  `yaml:"operation" mapstructure:"operation" json:"operation"`
	Percent   float64 `yaml:"percent,omitempty" mapstructure:"percent" json:"percent,omitempty"`
	Value     float64 `yaml:"value,omitempty" mapstructure:"value" json:"value,omitempty"`
	Part      float64 `yaml:"part,omitempty" mapstructure:"part" json:"part,omitempty"`
	Whole     float64 `yaml:"whole,omitempty" mapstructure:"whole" json:"whole,omitempty"`
	From      float64 `yaml:"from,omitempty" mapstructure:"from" json:"from,omitempty"`
	To        float64 `yaml:"to,omitempty" mapstructure:"to" json:"to,omitempty"`
}

// Input converts the question into engine input.
func (p Percent) Input() percent.Input {
	return percent.Input{
		Operation: strings.TrimSpace(p.Operation),
		Percent:   p.Percent,
		Value:     p.Value,
		Part:      p.Part,
		Whole:     p.Whole,
		From:      p.From,
		To:        p.To,
	}
}

var frequencyNames = map[string]int{
	"annually":     constants.Annually,
	"yearly":       constants.Annually,
	"semiannually": constants.Semiannually,
	"quarterly":    constants.Quarterly,
	"monthly":      constants.Monthly,
	"semimonthly":  constants.Semimonthly,
	"biweekly":     constants.Biweekly,
	"weekly":       constants.Weekly,
	"daily":        constants.Daily,
}

// ParseFrequency accepts a frequency name such as "monthly" or a number of
// periods per year. An empty value means monthly.
func ParseFrequency(value string) (int, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.Monthly, nil
	}
	if n, ok := frequencyNames[trimmed]; ok {
		return n, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("unknown compounding frequency %q", value)
	}
	if n < 1 || n > constants.MaxPeriodsPerYear {
		return 0, fmt.Errorf("compounding frequency %d must be between 1 and %d", n, constants.MaxPeriodsPerYear)
	}
	return n, nil
}

func loanNames(loans []Loan) []string {
	names := make([]string, 0, len(loans))
	for _, l := range loans {
		names = append(names, l.Name)
	}
	return names
}

func mortgageNames(mortgages []Mortgage) []string {
	names := make([]string, 0, len(mortgages))
	for _, m := range mortgages {
		names = append(names, m.Name)
	}
	return names
}

func growthNames(projections []Growth) []string {
	names := make([]string, 0, len(projections))
	for _, g := range projections {
		names = append(names, g.Name)
	}
	return names
}

func tipNames(tips []Tip) []string {
	names := make([]string, 0, len(tips))
	for _, t := range tips {
		names = append(names, t.Name)
	}
	return names
}

func percentNames(percents []Percent) []string {
	names := make([]string, 0, len(percents))
	for _, p := range percents {
		names = append(names, p.Name)
	}
	return names
}
