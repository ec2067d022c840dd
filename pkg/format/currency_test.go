package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Cents", 0.5, "$0.50"},
		{"Thousands", 1234.56, "$1,234.56"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -1234.5, "-$1,234.50"},
		{"Negative rounds to zero", -0.001, "$0.00"},
		{"Binary midpoint", 1.005, "$1.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		percent  float64
		expected string
	}{
		{5, "5%"},
		{6.125, "6.125%"},
		{4.5, "4.5%"},
		{0, "0%"},
		{0.41666, "0.417%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.percent); got != tt.expected {
			t.Errorf("Percent(%v) = %q, expected %q", tt.percent, got, tt.expected)
		}
	}
}
