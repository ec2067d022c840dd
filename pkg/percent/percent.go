// Package percent implements the percentage and tip calculators.
package percent

import (
	"errors"
	"fmt"

	"github.com/iwvelando/toolhub/pkg/constants"
	"github.com/iwvelando/toolhub/pkg/mathutil"
)

// ErrZeroBase is returned when a percentage is taken relative to zero.
var ErrZeroBase = errors.New("percentage base cannot be zero")

// Of returns percent% of value, e.g. Of(15, 80) == 12.
func Of(percent, value float64) float64 {
	return mathutil.ApplyPercentage(value, percent)
}

// WhatPercent returns which percentage part is of whole.
func WhatPercent(part, whole float64) (float64, error) {
	if whole == 0 {
		return 0, ErrZeroBase
	}
	return part / whole * constants.PercentageMultiplier, nil
}

// Change returns the percentage change going from one value to another.
func Change(from, to float64) (float64, error) {
	if from == 0 {
		return 0, ErrZeroBase
	}
	return (to - from) / from * constants.PercentageMultiplier, nil
}

// Percentage operations understood by Evaluate.
const (
	OperationOf          = "of"
	OperationWhatPercent = "whatPercent"
	OperationChange      = "change"
)

// percentPlaces is how many decimals a percentage answer keeps once rounded.
const percentPlaces = 3

// ErrUnknownOperation is returned by Evaluate for an unrecognised operation.
var ErrUnknownOperation = errors.New("unknown percentage operation")

// Operations lists the supported operations in a stable order.
func Operations() []string {
	return []string{OperationOf, OperationWhatPercent, OperationChange}
}

// Input is one percentage question. OperationOf reads Percent and Value,
// OperationWhatPercent reads Part and Whole, and OperationChange reads From
// and To.
type Input struct {
	Operation string  `json:"operation"`
	Percent   float64 `json:"percent,omitempty"`
	Value     float64 `json:"value,omitempty"`
	Part      float64 `json:"part,omitempty"`
	Whole     float64 `json:"whole,omitempty"`
	From      float64 `json:"from,omitempty"`
	To        float64 `json:"to,omitempty"`
}

// Result is the answer to a percentage question.
type Result struct {
	Input  Input   `json:"input"`
	Answer float64 `json:"answer"`
	// IsPercent is false when Answer is an amount rather than a percentage.
	IsPercent bool `json:"isPercent"`
}

// Evaluate answers the question described by in.
func Evaluate(in Input) (Result, error) {
	result := Result{Input: in, IsPercent: true}
	var err error
	switch in.Operation {
	case OperationOf:
		result.Answer = Of(in.Percent, in.Value)
		result.IsPercent = false
	case OperationWhatPercent:
		result.Answer, err = WhatPercent(in.Part, in.Whole)
	case OperationChange:
		result.Answer, err = Change(in.From, in.To)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOperation, in.Operation)
	}
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// Rounded rounds amounts to cents and percentages to three decimals.
func (r Result) Rounded() Result {
	if r.IsPercent {
		r.Answer = mathutil.RoundTo(r.Answer, percentPlaces)
	} else {
		r.Answer = mathutil.Round(r.Answer)
	}
	return r
}

// TipInput is a bill to split.
type TipInput struct {
	Bill       float64 `json:"bill"`
	TipPercent float64 `json:"tipPercent"`
	People     int     `json:"people,omitempty"` // defaults to one
}

// TipResult is the tip and how it splits.
type TipResult struct {
	Input        TipInput `json:"input"`
	Tip          float64  `json:"tip"`
	Total        float64  `json:"total"`
	TipPerPerson float64  `json:"tipPerPerson"`
	PerPerson    float64  `json:"perPerson"`
}

// Tip computes the tip on a bill and each person's share.
func Tip(in TipInput) TipResult {
	people := in.People
	if people <= 0 {
		people = 1
	}
	tip := Of(in.TipPercent, in.Bill)
	total := in.Bill + tip
	return TipResult{
		Input:        in,
		Tip:          tip,
		Total:        total,
		TipPerPerson: tip / float64(people),
		PerPerson:    total / float64(people),
	}
}

// Rounded returns a copy of the result with monetary values rounded to cents.
func (r TipResult) Rounded() TipResult {
	return TipResult{
		Input:        r.Input,
		Tip:          mathutil.Round(r.Tip),
		Total:        mathutil.Round(r.Total),
		TipPerPerson: mathutil.Round(r.TipPerPerson),
		PerPerson:    mathutil.Round(r.PerPerson),
	}
}
