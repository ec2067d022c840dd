package calculator

import (
	"context"
	"errors"

	"github.com/iwvelando/toolhub/internal/config"
	"github.com/iwvelando/toolhub/pkg/validation"
	"go.uber.org/zap"
)

// BatchResult holds every calculation run from a configuration.
type BatchResult struct {
	Loans     []LoanResult     `json:"loans,omitempty"`
	Mortgages []MortgageResult `json:"mortgages,omitempty"`
	Growth    []GrowthResult   `json:"growth,omitempty"`
	Tips      []TipResult      `json:"tips,omitempty"`
	Percents  []PercentResult  `json:"percentages,omitempty"`
}

// Count returns the number of calculations in the batch.
func (b BatchResult) Count() int {
	return len(b.Loans) + len(b.Mortgages) + len(b.Growth) + len(b.Tips) + len(b.Percents)
}

// Rounded returns a copy of the batch with every value rounded for display.
func (b BatchResult) Rounded() BatchResult {
	out := BatchResult{}
	for _, r := range b.Loans {
		out.Loans = append(out.Loans, LoanResult{Name: r.Name, Result: r.Result.Rounded()})
	}
	for _, r := range b.Mortgages {
		out.Mortgages = append(out.Mortgages, MortgageResult{Name: r.Name, Result: r.Result.Rounded()})
	}
	for _, r := range b.Growth {
		out.Growth = append(out.Growth, GrowthResult{Name: r.Name, Result: r.Result.Rounded()})
	}
	for _, r := range b.Tips {
		out.Tips = append(out.Tips, TipResult{Name: r.Name, TipResult: r.TipResult.Rounded()})
	}
	for _, r := range b.Percents {
		out.Percents = append(out.Percents, PercentResult{Name: r.Name, Result: r.Result.Rounded()})
	}
	return out
}

// WithoutSchedules drops the per-period tables, keeping the summaries.
func (b BatchResult) WithoutSchedules() BatchResult {
	out := BatchResult{Tips: b.Tips, Percents: b.Percents}
	for _, r := range b.Loans {
		out.Loans = append(out.Loans, LoanResult{Name: r.Name, Result: r.Result.WithoutSchedule()})
	}
	for _, r := range b.Mortgages {
		out.Mortgages = append(out.Mortgages, MortgageResult{Name: r.Name, Result: r.Result.WithoutSchedule()})
	}
	for _, r := range b.Growth {
		out.Growth = append(out.Growth, GrowthResult{Name: r.Name, Result: r.Result.WithoutBreakdown()})
	}
	return out
}

// Batch runs every calculation in conf. Invalid entries are skipped and
// reported as warnings; only a context error aborts the batch.
func (s *Service) Batch(ctx context.Context, conf *config.Configuration) (BatchResult, []string, error) {
	var batch BatchResult
	var warnings []string

	// record reports whether the entry produced a result. Validation failures
	// become warnings; anything else is returned.
	record := func(kind, name string, err error) (bool, error) {
		if err == nil {
			return true, nil
		}
		if errors.Is(err, validation.ErrInvalidInput) {
			warnings = append(warnings, describe(kind, name, err)...)
			return false, nil
		}
		return false, err
	}

	for _, l := range conf.Loans {
		r, err := s.Loan(ctx, l)
		ok, err := record("Loan", l.Name, err)
		if err != nil {
			return batch, warnings, err
		}
		if ok {
			batch.Loans = append(batch.Loans, r)
		}
	}

	for _, m := range conf.Mortgages {
		r, err := s.Mortgage(ctx, m)
		ok, err := record("Mortgage", m.Name, err)
		if err != nil {
			return batch, warnings, err
		}
		if ok {
			batch.Mortgages = append(batch.Mortgages, r)
		}
	}

	for _, g := range conf.Growth {
		r, err := s.Growth(ctx, g)
		ok, err := record("Growth projection", g.Name, err)
		if err != nil {
			return batch, warnings, err
		}
		if ok {
			batch.Growth = append(batch.Growth, r)
		}
	}

	for _, t := range conf.Tips {
		r, err := s.Tip(ctx, t)
		ok, err := record("Tip", t.Name, err)
		if err != nil {
			return batch, warnings, err
		}
		if ok {
			batch.Tips = append(batch.Tips, r)
		}
	}

	for _, p := range conf.Percents {
		r, err := s.Percent(ctx, p)
		ok, err := record("Percentage", p.Name, err)
		if err != nil {
			return batch, warnings, err
		}
		if ok {
			batch.Percents = append(batch.Percents, r)
		}
	}

	s.logger.Info("batch complete",
		zap.String("op", "calculator.Batch"),
		zap.Int("calculations", batch.Count()),
		zap.Int("warnings", len(warnings)),
	)
	return batch, warnings, nil
}
