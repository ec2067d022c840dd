package calculator

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iwvelando/toolhub/internal/cache"
	"github.com/iwvelando/toolhub/internal/config"
	"github.com/iwvelando/toolhub/pkg/validation"
	"go.uber.org/zap"
)

// countingCache wraps a memory cache and records traffic.
type countingCache struct {
	mu      sync.Mutex
	inner   *cache.Memory
	gets    int
	hits    int
	sets    int
	failGet bool
}

func newCountingCache() *countingCache {
	return &countingCache{inner: cache.NewMemory(time.Minute, time.Minute)}
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return nil, false, errors.New("backend down")
	}
	data, ok, err := c.inner.Get(ctx, key)
	if ok {
		c.hits++
	}
	return data, ok, err
}

func (c *countingCache) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	return c.inner.Set(ctx, key, value)
}

func (c *countingCache) Close() error { return c.inner.Close() }

var carLoan = config.Loan{Name: "car", Principal: 25000, AnnualRate: 5, TermYears: 5}

func TestLoan(t *testing.T) {
	svc := New(zap.NewNop(), nil)

	result, err := svc.Loan(context.Background(), carLoan)
	if err != nil {
		t.Fatalf("Loan() error = %v", err)
	}
	if result.Name != "car" {
		t.Errorf("name = %q, want car", result.Name)
	}
	if math.Abs(result.PeriodicPayment-471.78) > 0.01 {
		t.Errorf("payment = %.4f, want ~471.78", result.PeriodicPayment)
	}
	if len(result.Schedule) != 60 {
		t.Errorf("schedule length = %d, want 60", len(result.Schedule))
	}
}

func TestLoanValidation(t *testing.T) {
	svc := New(nil, nil)

	_, err := svc.Loan(context.Background(), config.Loan{Principal: 1000, DownPayment: 1000, AnnualRate: 5, TermYears: 1})
	if !errors.Is(err, validation.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if msgs := validation.Messages(err); len(msgs) != 1 || !strings.Contains(msgs[0], "Down payment") {
		t.Errorf("unexpected messages %q", msgs)
	}
}

func TestCachedResults(t *testing.T) {
	c := newCountingCache()
	svc := New(zap.NewNop(), c)
	ctx := context.Background()

	first, err := svc.Loan(ctx, carLoan)
	if err != nil {
		t.Fatalf("Loan() error = %v", err)
	}

	// The name is not part of the calculation, so a renamed request hits.
	renamed := carLoan
	renamed.Name = "truck"
	second, err := svc.Loan(ctx, renamed)
	if err != nil {
		t.Fatalf("Loan() error = %v", err)
	}

	if c.sets != 1 || c.hits != 1 {
		t.Errorf("expected 1 set and 1 hit, got %d sets and %d hits", c.sets, c.hits)
	}
	if second.Name != "truck" {
		t.Errorf("cached result should carry the request name, got %q", second.Name)
	}
	if first.TotalInterest != second.TotalInterest || len(first.Schedule) != len(second.Schedule) {
		t.Error("cached result differs from computed result")
	}
	if first.Schedule[10] != second.Schedule[10] {
		t.Errorf("cached schedule entry differs: %+v vs %+v", first.Schedule[10], second.Schedule[10])
	}
}

func TestCacheFailureIgnored(t *testing.T) {
	c := newCountingCache()
	c.failGet = true
	svc := New(zap.NewNop(), c)

	result, err := svc.Growth(context.Background(), config.Growth{Principal: 10000, AnnualRate: 7, Years: 10})
	if err != nil {
		t.Fatalf("Growth() should ignore cache failures, got %v", err)
	}
	if math.Abs(result.FinalAmount-20096.61) > 0.01 {
		t.Errorf("final amount = %.4f, want ~20096.61", result.FinalAmount)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(nil, nil).Loan(ctx, carLoan); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMortgage(t *testing.T) {
	svc := New(zap.NewNop(), nil)

	result, err := svc.Mortgage(context.Background(), config.Mortgage{
		Name: "house", HomePrice: 300000, DownPayment: 30000, AnnualRate: 6, TermYears: 30,
		PMIRate: 0.5, AnnualPropertyTax: 3600, AnnualInsurance: 1200,
	})
	if err != nil {
		t.Fatalf("Mortgage() error = %v", err)
	}
	if result.LoanAmount != 270000 {
		t.Errorf("loan amount = %v, want 270000", result.LoanAmount)
	}
	if result.PMIPeriods == 0 || result.PMIPeriods >= result.NumberOfPayments {
		t.Errorf("unexpected PMI periods %d of %d", result.PMIPeriods, result.NumberOfPayments)
	}

	_, err = svc.Mortgage(context.Background(), config.Mortgage{HomePrice: 300000, DownPayment: 300000, AnnualRate: 6, TermYears: 30})
	if !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("down payment equal to home price should be rejected, got %v", err)
	}
}

func TestTip(t *testing.T) {
	result, err := New(nil, nil).Tip(context.Background(), config.Tip{Name: "dinner", Bill: 100, TipPercent: 20, People: 4})
	if err != nil {
		t.Fatalf("Tip() error = %v", err)
	}
	if result.Total != 120 || result.PerPerson != 30 {
		t.Errorf("unexpected tip result %+v", result.TipResult)
	}
}

func TestPercent(t *testing.T) {
	svc := New(nil, nil)
	result, err := svc.Percent(context.Background(), config.Percent{Name: "discount", Operation: "of", Percent: 25, Value: 80})
	if err != nil {
		t.Fatalf("Percent() error = %v", err)
	}
	if result.Name != "discount" || result.Answer != 20 || result.IsPercent {
		t.Errorf("unexpected percent result %+v", result)
	}

	_, err = svc.Percent(context.Background(), config.Percent{Operation: "change", To: 10})
	if !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("change from zero should be rejected, got %v", err)
	}
}

func TestBatch(t *testing.T) {
	conf := &config.Configuration{
		Loans: []config.Loan{
			carLoan,
			{Name: "broken", Principal: -5, AnnualRate: 150, TermYears: 5},
		},
		Mortgages: []config.Mortgage{{Name: "house", HomePrice: 250000, DownPayment: 50000, AnnualRate: 5, TermYears: 15}},
		Growth: []config.Growth{
			{Name: "savings", Principal: 1000, AnnualRate: 4, Compounding: "monthly", Years: 3, MonthlyContribution: 50},
			{Name: "hourly", Principal: 1000, AnnualRate: 4, Compounding: "hourly", Years: 3},
		},
		Tips: []config.Tip{{Name: "lunch", Bill: 40, TipPercent: 15}},
		Percents: []config.Percent{
			{Name: "raise", Operation: "change", From: 80, To: 100},
			{Name: "split", Operation: "whatPercent", Part: 5},
		},
	}

	batch, warnings, err := New(zap.NewNop(), nil).Batch(context.Background(), conf)
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	if batch.Count() != 5 {
		t.Errorf("expected 5 results, got %d", batch.Count())
	}
	if len(batch.Percents) != 1 || batch.Percents[0].Answer != 25 {
		t.Errorf("unexpected percentages %+v", batch.Percents)
	}
	if len(batch.Loans) != 1 || batch.Loans[0].Name != "car" {
		t.Errorf("unexpected loans %+v", batch.Loans)
	}

	joined := strings.Join(warnings, "\n")
	for _, want := range []string{
		"Loan 'broken': Loan amount must be greater than zero",
		"Loan 'broken': Interest rate cannot exceed 100%",
		"Growth projection 'hourly': Compounding must be between 1 and 365 per year",
		"Percentage 'split': Whole cannot be zero",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings %q missing %q", warnings, want)
		}
	}
}

func TestBatchRoundedAndWithoutSchedules(t *testing.T) {
	conf := &config.Configuration{
		Loans:  []config.Loan{carLoan},
		Growth: []config.Growth{{Name: "savings", Principal: 1000, AnnualRate: 4, Years: 3}},
	}
	batch, _, err := New(nil, nil).Batch(context.Background(), conf)
	if err != nil {
		t.Fatalf("Batch() error = %v", err)
	}

	rounded := batch.Rounded()
	if got := rounded.Loans[0].PeriodicPayment; got != 471.78 {
		t.Errorf("rounded payment = %v, want 471.78", got)
	}
	if rounded.Loans[0].Name != "car" {
		t.Errorf("rounding lost the name")
	}

	bare := batch.WithoutSchedules()
	if bare.Loans[0].Schedule != nil || bare.Growth[0].YearlyBreakdown != nil {
		t.Error("WithoutSchedules() should drop schedules and breakdowns")
	}
	if batch.Loans[0].Schedule == nil {
		t.Error("WithoutSchedules() must not modify the original")
	}
}
