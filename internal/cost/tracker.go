// Package cost tracks token usage and API spend for transparency.
package cost

import (
	"strings"
	"sync"
	"time"
)

// defaultRatePerMillion is the blended USD rate per 1M tokens applied
// to models without an entry in the rate table.
const defaultRatePerMillion = 0.50

// ratePerMillion holds blended per-1M-token USD rates by model name
// prefix. Blended means a rough average of input and output pricing;
// the point is trend visibility, not billing accuracy.
var ratePerMillion = map[string]float64{
	"gpt-4o-mini":      0.30,
	"gpt-4o":           5.00,
	"gpt-4.1-mini":     0.80,
	"claude-3-5-haiku": 2.00,
	"claude-haiku":     2.00,
	"claude-sonnet":    7.50,
	"claude-opus":      37.50,
}

// Tracker monitors model usage and estimates costs.
type Tracker struct {
	mu      sync.Mutex
	daily   *DailyStats
	monthly *MonthlyStats
}

// DailyStats tracks usage for a single day.
type DailyStats struct {
	Date     string
	Tokens   int
	Cost     float64
	Requests int
}

// MonthlyStats tracks usage for a month.
type MonthlyStats struct {
	Month    string
	Tokens   int
	Cost     float64
	Requests int
}

// NewTracker creates a new cost tracker.
func NewTracker() *Tracker {
	now := time.Now()
	return &Tracker{
		daily:   &DailyStats{Date: now.Format("2006-01-02")},
		monthly: &MonthlyStats{Month: now.Format("2006-01")},
	}
}

// Record records a model request and returns the estimated cost.
func (t *Tracker) Record(model string, tokens int) float64 {
	cost := Estimate(model, tokens)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.daily.Tokens += tokens
	t.daily.Cost += cost
	t.daily.Requests++

	t.monthly.Tokens += tokens
	t.monthly.Cost += cost
	t.monthly.Requests++

	return cost
}

// Estimate returns the estimated USD cost for a number of tokens on
// the given model. The longest matching name prefix wins so dated
// variants share their family's rate.
func Estimate(model string, tokens int) float64 {
	rate := defaultRatePerMillion
	longest := 0
	for prefix, r := range ratePerMillion {
		if len(prefix) > longest && strings.HasPrefix(model, prefix) {
			rate = r
			longest = len(prefix)
		}
	}
	return float64(tokens) / 1_000_000 * rate
}

// GetDailyStats returns a copy of the current daily statistics.
func (t *Tracker) GetDailyStats() DailyStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *t.daily
}

// GetMonthlyStats returns a copy of the current monthly statistics.
func (t *Tracker) GetMonthlyStats() MonthlyStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *t.monthly
}

// ResetDaily resets daily stats (call at midnight).
func (t *Tracker) ResetDaily() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.daily = &DailyStats{Date: time.Now().Format("2006-01-02")}
}

// ResetMonthly resets monthly stats (call on 1st of month).
func (t *Tracker) ResetMonthly() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.monthly = &MonthlyStats{Month: time.Now().Format("2006-01")}
}
