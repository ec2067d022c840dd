package percent

import (
	"errors"
	"math"
	"testing"
)

func TestOf(t *testing.T) {
	if got := Of(15, 80); math.Abs(got-12) > 1e-9 {
		t.Errorf("Of(15, 80) = %v, expected 12", got)
	}
	if got := Of(0, 80); got != 0 {
		t.Errorf("Of(0, 80) = %v, expected 0", got)
	}
}

func TestWhatPercentAndChange(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(a, b float64) (float64, error)
		a, b     float64
		expected float64
		wantErr  bool
	}{
		{"Part of whole", WhatPercent, 25, 200, 12.5, false},
		{"Part of zero", WhatPercent, 25, 0, 0, true},
		{"Increase", Change, 80, 100, 25, false},
		{"Decrease", Change, 100, 80, -20, false},
		{"From zero", Change, 0, 10, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.a, tt.b)
			if tt.wantErr {
				if !errors.Is(err, ErrZeroBase) {
					t.Errorf("expected ErrZeroBase, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		input     Input
		expected  float64
		isPercent bool
		wantErr   error
	}{
		{"Of", Input{Operation: OperationOf, Percent: 15, Value: 80}, 12, false, nil},
		{"What percent", Input{Operation: OperationWhatPercent, Part: 1, Whole: 3}, 33.333, true, nil},
		{"Change", Input{Operation: OperationChange, From: 80, To: 100}, 25, true, nil},
		{"Whole of zero", Input{Operation: OperationWhatPercent, Part: 1}, 0, true, ErrZeroBase},
		{"Change from zero", Input{Operation: OperationChange, To: 5}, 0, true, ErrZeroBase},
		{"Unknown", Input{Operation: "ratio"}, 0, false, ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Evaluate(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Evaluate() error = %v, expected %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate() unexpected error = %v", err)
			}
			rounded := result.Rounded()
			if rounded.Answer != tt.expected {
				t.Errorf("answer = %v, expected %v", rounded.Answer, tt.expected)
			}
			if rounded.IsPercent != tt.isPercent {
				t.Errorf("isPercent = %v, expected %v", rounded.IsPercent, tt.isPercent)
			}
			if rounded.Input != tt.input {
				t.Errorf("input not echoed: %+v", rounded.Input)
			}
		})
	}
}

func TestTip(t *testing.T) {
	result := Tip(TipInput{Bill: 120, TipPercent: 18, People: 4}).Rounded()
	if result.Tip != 21.6 {
		t.Errorf("tip = %v, expected 21.6", result.Tip)
	}
	if result.Total != 141.6 {
		t.Errorf("total = %v, expected 141.6", result.Total)
	}
	if result.PerPerson != 35.4 {
		t.Errorf("per person = %v, expected 35.4", result.PerPerson)
	}
	if result.TipPerPerson != 5.4 {
		t.Errorf("tip per person = %v, expected 5.4", result.TipPerPerson)
	}

	single := Tip(TipInput{Bill: 50, TipPercent: 20})
	if single.PerPerson != single.Total {
		t.Errorf("missing people should default to one")
	}
}
