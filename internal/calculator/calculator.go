// Package calculator runs validated calculations through the engines and
// memoises their results.
package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iwvelando/toolhub/internal/cache"
	"github.com/iwvelando/toolhub/internal/config"
	"github.com/iwvelando/toolhub/pkg/amortization"
	"github.com/iwvelando/toolhub/pkg/growth"
	"github.com/iwvelando/toolhub/pkg/mortgage"
	"github.com/iwvelando/toolhub/pkg/percent"
	"github.com/iwvelando/toolhub/pkg/validation"
	"go.uber.org/zap"
)

// Service validates requests, consults the cache and runs the engines.
type Service struct {
	logger *zap.Logger
	cache  cache.Cache
}

// New creates a Service. A nil logger or cache disables logging or caching.
func New(logger *zap.Logger, c cache.Cache) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &Service{logger: logger, cache: c}
}

// LoanResult is a named loan calculation.
type LoanResult struct {
	Name string `json:"name"`
	amortization.Result
}

// MortgageResult is a named mortgage calculation.
type MortgageResult struct {
	Name string `json:"name"`
	mortgage.Result
}

// GrowthResult is a named growth projection.
type GrowthResult struct {
	Name string `json:"name"`
	growth.Result
}

// TipResult is a named bill split.
type TipResult struct {
	Name string `json:"name"`
	percent.TipResult
}

// PercentResult is a named percentage question and its answer.
type PercentResult struct {
	Name string `json:"name"`
	percent.Result
}

type loanKey struct {
	Terms amortization.LoanTerms
	Extra float64
}

type mortgageKey struct {
	Terms amortization.LoanTerms
	Rider mortgage.Rider
}

// Loan calculates an amortized loan.
func (s *Service) Loan(ctx context.Context, req config.Loan) (LoanResult, error) {
	terms := req.Terms()
	if err := validation.ValidateLoan(terms, req.ExtraPayment); err != nil {
		return LoanResult{}, err
	}

	result, err := cached(ctx, s, "calculator.Loan", "loan", loanKey{Terms: terms, Extra: req.ExtraPayment},
		func() amortization.Result { return amortization.Calculate(terms, req.ExtraPayment) })
	if err != nil {
		return LoanResult{}, err
	}

	s.logger.Debug("loan calculated",
		zap.String("op", "calculator.Loan"),
		zap.String("name", req.Name),
		zap.Float64("payment", result.PeriodicPayment),
		zap.Int("payments", result.PayoffPeriods),
	)
	return LoanResult{Name: req.Name, Result: result}, nil
}

// Mortgage calculates a monthly mortgage with PMI, tax and insurance.
func (s *Service) Mortgage(ctx context.Context, req config.Mortgage) (MortgageResult, error) {
	terms := req.Terms()
	rider := req.Rider()
	if err := validation.ValidateMortgage(terms, rider); err != nil {
		return MortgageResult{}, err
	}

	result, err := cached(ctx, s, "calculator.Mortgage", "mortgage", mortgageKey{Terms: terms, Rider: rider},
		func() mortgage.Result { return mortgage.Calculate(terms, rider) })
	if err != nil {
		return MortgageResult{}, err
	}

	s.logger.Debug("mortgage calculated",
		zap.String("op", "calculator.Mortgage"),
		zap.String("name", req.Name),
		zap.Float64("initial_payment", result.InitialTotalPayment),
		zap.Int("pmi_periods", result.PMIPeriods),
	)
	return MortgageResult{Name: req.Name, Result: result}, nil
}

// Growth projects compound growth with monthly contributions.
func (s *Service) Growth(ctx context.Context, req config.Growth) (GrowthResult, error) {
	in := req.Input()
	if err := validation.ValidateGrowth(in); err != nil {
		return GrowthResult{}, err
	}

	result, err := cached(ctx, s, "calculator.Growth", "growth", in,
		func() growth.Result { return growth.Project(in) })
	if err != nil {
		return GrowthResult{}, err
	}

	s.logger.Debug("growth projected",
		zap.String("op", "calculator.Growth"),
		zap.String("name", req.Name),
		zap.Float64("final_amount", result.FinalAmount),
	)
	return GrowthResult{Name: req.Name, Result: result}, nil
}

// Tip splits a bill.
func (s *Service) Tip(ctx context.Context, req config.Tip) (TipResult, error) {
	in := req.Input()
	if err := validation.ValidateTip(in); err != nil {
		return TipResult{}, err
	}

	// Too cheap to be worth a cache round trip.
	result := percent.Tip(in)

	s.logger.Debug("tip calculated",
		zap.String("op", "calculator.Tip"),
		zap.String("name", req.Name),
		zap.Float64("total", result.Total),
	)
	return TipResult{Name: req.Name, TipResult: result}, nil
}

// Percent answers a percentage question.
func (s *Service) Percent(ctx context.Context, req config.Percent) (PercentResult, error) {
	in := req.Input()
	if err := validation.ValidatePercent(in); err != nil {
		return PercentResult{}, err
	}

	result, err := percent.Evaluate(in)
	if err != nil {
		return PercentResult{}, err
	}

	s.logger.Debug("percentage calculated",
		zap.String("op", "calculator.Percent"),
		zap.String("name", req.Name),
		zap.String("operation", in.Operation),
		zap.Float64("answer", result.Answer),
	)
	return PercentResult{Name: req.Name, Result: result}, nil
}

// cached returns the stored result for request, computing and storing it on
// a miss. Cache failures are logged and otherwise ignored; only a context
// error is returned.
func cached[T any](ctx context.Context, s *Service, op, namespace string, request interface{}, compute func() T) (T, error) {
	var result T
	if err := ctx.Err(); err != nil {
		return result, err
	}

	key, err := cache.Key(namespace, request)
	if err != nil {
		s.logger.Warn("cache key failed", zap.String("op", op), zap.Error(err))
		return compute(), nil
	}

	data, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.logger.Warn("cache lookup failed", zap.String("op", op), zap.String("key", key), zap.Error(err))
	case ok:
		if err := json.Unmarshal(data, &result); err == nil {
			s.logger.Debug("cache hit", zap.String("op", op), zap.String("key", key))
			return result, nil
		}
		s.logger.Warn("discarding undecodable cache entry", zap.String("op", op), zap.String("key", key))
	}

	result = compute()

	encoded, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("op", op), zap.Error(err))
		return result, nil
	}
	if err := s.cache.Set(ctx, key, encoded); err != nil {
		s.logger.Warn("cache store failed", zap.String("op", op), zap.String("key", key), zap.Error(err))
	}
	return result, nil
}

// describe prefixes each validation message with the entry it belongs to.
func describe(kind, name string, err error) []string {
	messages := validation.Messages(err)
	warnings := make([]string, 0, len(messages))
	for _, m := range messages {
		warnings = append(warnings, fmt.Sprintf("%s '%s': %s", kind, name, m))
	}
	return warnings
}
