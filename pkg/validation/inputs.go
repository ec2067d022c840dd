package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/toolhub/pkg/amortization"
	"github.com/iwvelando/toolhub/pkg/constants"
	"github.com/iwvelando/toolhub/pkg/growth"
	"github.com/iwvelando/toolhub/pkg/mathutil"
	"github.com/iwvelando/toolhub/pkg/mortgage"
	"github.com/iwvelando/toolhub/pkg/percent"
	"go.uber.org/multierr"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// FieldError is a single failed check on one input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Unwrap lets callers match any validation failure with errors.Is.
func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

// Messages flattens a validation error into its human-readable messages.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	errs := multierr.Errors(err)
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Error())
	}
	return messages
}

type checker struct {
	err error
}

func (c *checker) fail(field, format string, args ...interface{}) {
	c.err = multierr.Append(c.err, &FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// number reports whether the value is usable and records a failure otherwise.
func (c *checker) number(field, label string, value float64) bool {
	if !mathutil.IsFinite(value) {
		c.fail(field, "%s must be a number", label)
		return false
	}
	return true
}

func (c *checker) positive(field, label string, value float64) {
	if !c.number(field, label, value) {
		return
	}
	if value <= 0 {
		c.fail(field, "%s must be greater than zero", label)
		return
	}
	c.bounded(field, label, value)
}

func (c *checker) nonNegative(field, label string, value float64) {
	if !c.number(field, label, value) {
		return
	}
	if value < 0 {
		c.fail(field, "%s cannot be negative", label)
		return
	}
	c.bounded(field, label, value)
}

// bounded rejects finite values whose magnitude exceeds constants.MaxAmount.
func (c *checker) bounded(field, label string, value float64) {
	if mathutil.IsFinite(value) && math.Abs(value) > constants.MaxAmount {
		c.fail(field, "%s cannot exceed one billion", label)
	}
}

// operand accepts any finite value within constants.MaxAmount, negative or not.
func (c *checker) operand(field, label string, value float64) bool {
	if !c.number(field, label, value) {
		return false
	}
	c.bounded(field, label, value)
	return math.Abs(value) <= constants.MaxAmount
}

func (c *checker) rate(field, label string, value float64) {
	if !c.number(field, label, value) {
		return
	}
	if value < 0 {
		c.fail(field, "%s cannot be negative", label)
	} else if value > constants.MaxAnnualRatePercent {
		c.fail(field, "%s cannot exceed %.0f%%", label, constants.MaxAnnualRatePercent)
	}
}

func (c *checker) term(field, label string, value float64) {
	if !c.number(field, label, value) {
		return
	}
	if value <= 0 {
		c.fail(field, "%s must be greater than zero", label)
	} else if value > constants.MaxTermYears {
		c.fail(field, "%s cannot exceed %.0f years", label, constants.MaxTermYears)
	}
}

func (c *checker) frequency(field, label string, value int, optional bool) {
	if optional && value == 0 {
		return
	}
	if value < 1 || value > constants.MaxPeriodsPerYear {
		c.fail(field, "%s must be between 1 and %d per year", label, constants.MaxPeriodsPerYear)
	}
}

// ValidateLoan checks loan terms and an optional extra payment per period.
func ValidateLoan(terms amortization.LoanTerms, extraPerPeriod float64) error {
	var c checker
	c.positive("principal", "Loan amount", terms.Principal)
	c.nonNegative("downPayment", "Down payment", terms.DownPayment)
	if mathutil.IsFinite(terms.Principal) && mathutil.IsFinite(terms.DownPayment) &&
		terms.Principal > 0 && terms.DownPayment >= 0 && terms.Principal <= terms.DownPayment {
		c.fail("downPayment", "Down payment must be less than the loan amount")
	}
	c.rate("annualRatePercent", "Interest rate", terms.AnnualRatePercent)
	c.term("termYears", "Loan term", terms.TermYears)
	c.frequency("paymentsPerYear", "Payments", terms.PaymentsPerYear, true)
	c.nonNegative("extraPerPeriod", "Extra payment", extraPerPeriod)
	checkPeriods(&c, terms)
	return c.err
}

// ValidateMortgage checks a mortgage where terms.Principal is the home price.
func ValidateMortgage(terms amortization.LoanTerms, rider mortgage.Rider) error {
	var c checker
	c.positive("homePrice", "Home price", terms.Principal)
	c.nonNegative("downPayment", "Down payment", terms.DownPayment)
	if mathutil.IsFinite(terms.Principal) && mathutil.IsFinite(terms.DownPayment) &&
		terms.Principal > 0 && terms.DownPayment >= 0 && terms.DownPayment >= terms.Principal {
		c.fail("downPayment", "Down payment must be less than the home price")
	}
	c.rate("annualRatePercent", "Interest rate", terms.AnnualRatePercent)
	c.term("termYears", "Loan term", terms.TermYears)
	c.rate("pmiRatePercent", "PMI rate", rider.PMIRatePercent)
	c.nonNegative("annualPropertyTax", "Property tax", rider.AnnualPropertyTax)
	c.nonNegative("annualInsurance", "Home insurance", rider.AnnualInsurance)
	monthly := terms
	monthly.PaymentsPerYear = constants.Monthly
	checkPeriods(&c, monthly)
	return c.err
}

// ValidateGrowth checks a compound growth projection.
func ValidateGrowth(in growth.Input) error {
	var c checker
	c.nonNegative("principal", "Initial investment", in.Principal)
	c.nonNegative("periodicContribution", "Monthly contribution", in.PeriodicContribution)
	if in.Principal == 0 && in.PeriodicContribution == 0 {
		c.fail("principal", "Initial investment or monthly contribution must be greater than zero")
	}
	c.rate("annualRatePercent", "Interest rate", in.AnnualRatePercent)
	c.frequency("compoundingFrequency", "Compounding", in.CompoundingFrequency, false)
	c.term("years", "Investment period", in.Years)
	return c.err
}

// ValidateTip checks a bill split.
func ValidateTip(in percent.TipInput) error {
	var c checker
	c.positive("bill", "Bill amount", in.Bill)
	c.rate("tipPercent", "Tip percentage", in.TipPercent)
	if in.People < 0 {
		c.fail("people", "Number of people cannot be negative")
	}
	return c.err
}

// ValidatePercent checks one percentage question. Each operation only looks at
// the operands it uses.
func ValidatePercent(in percent.Input) error {
	var c checker
	switch in.Operation {
	case percent.OperationOf:
		c.operand("percent", "Percentage", in.Percent)
		c.operand("value", "Value", in.Value)
	case percent.OperationWhatPercent:
		c.operand("part", "Part", in.Part)
		if c.operand("whole", "Whole", in.Whole) && in.Whole == 0 {
			c.fail("whole", "Whole cannot be zero")
		}
	case percent.OperationChange:
		if c.operand("from", "Starting value", in.From) && in.From == 0 {
			c.fail("from", "Starting value cannot be zero")
		}
		c.operand("to", "Ending value", in.To)
	default:
		c.fail("operation", "Operation must be one of %s", strings.Join(percent.Operations(), ", "))
	}
	return c.err
}

func checkPeriods(c *checker, terms amortization.LoanTerms) {
	if !mathutil.IsFinite(terms.TermYears) || terms.TermYears <= 0 || terms.TermYears > constants.MaxTermYears {
		return
	}
	if terms.PaymentsPerYear < 0 || terms.PaymentsPerYear > constants.MaxPeriodsPerYear {
		return
	}
	if terms.TotalPeriods() < 1 {
		c.fail("termYears", "Loan term is shorter than one payment period")
	}
}
