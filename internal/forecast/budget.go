package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerloom/ledgerloom/internal/model"
	"github.com/ledgerloom/ledgerloom/internal/predictor"
	"github.com/ledgerloom/ledgerloom/internal/storage"
)

// Recommender suggests per-category budgets from monthly spending averages,
// with the same cache/predictor/fallback shape as the forecast service.
type Recommender struct {
	cache  storage.CacheStore
	client predictor.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewRecommender creates a budget recommender.
func NewRecommender(cache storage.CacheStore, client predictor.Client, logger *slog.Logger) *Recommender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recommender{
		cache:  cache,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the time source used for seasonal adjustments.
func (r *Recommender) SetClock(now func() time.Time) {
	r.now = now
}

// Recommendation carries suggested budgets and a human-readable analysis of
// the projected savings.
type Recommendation struct {
	Budgets  map[string]float64 `json:"budgets"`
	Analysis string             `json:"analysis"`
}

// categoryDiscounts holds the optimization factor applied to each category's
// monthly average. Categories not listed get the default discount.
var categoryDiscounts = map[string]float64{
	model.CategoryFood:          0.90,
	model.CategoryShopping:      0.85,
	model.CategoryEntertainment: 0.80,
	model.CategoryTransport:     0.95,
}

const defaultDiscount = 0.97

// seasonalBoosts lifts specific categories in months where spending
// predictably spikes: the new-year period, the autumn travel window, and
// year-end shopping.
var seasonalBoosts = map[string]map[time.Month]float64{
	model.CategoryFood:      {time.January: 1.25},
	model.CategoryTransport: {time.September: 1.15, time.October: 1.15},
	model.CategoryShopping:  {time.November: 1.20, time.December: 1.20},
}

// Recommend suggests a budget per category. Empty input yields an empty
// recommendation without error and without touching the cache.
func (r *Recommender) Recommend(ctx context.Context, monthlyAverages map[string]float64, applySeasonalAdjustments bool) Recommendation {
	if len(monthlyAverages) == 0 {
		return Recommendation{Budgets: map[string]float64{}}
	}

	month := r.now().Month()
	key := budgetKey(monthlyAverages, applySeasonalAdjustments, month)
	if cached, ok := r.lookup(ctx, key); ok {
		r.logger.Debug("budget cache hit")
		return cached
	}

	rec := r.predict(ctx, monthlyAverages, applySeasonalAdjustments, month)
	if len(rec.Budgets) == 0 {
		rec = r.fallback(monthlyAverages, applySeasonalAdjustments, month)
	}

	r.store(ctx, key, rec)
	return rec
}

// ClearCache empties the budget cache.
func (r *Recommender) ClearCache(ctx context.Context) error {
	return r.cache.Clear(ctx, budgetBucket)
}

func (r *Recommender) predict(ctx context.Context, averages map[string]float64, applySeasonal bool, month time.Month) Recommendation {
	if r.client == nil {
		return Recommendation{}
	}

	content, err := r.client.Complete(ctx, budgetSystemPrompt, buildBudgetPrompt(averages, applySeasonal, month))
	if err != nil {
		r.logger.Warn("budget predictor unavailable", "error", err)
		return Recommendation{}
	}

	payload, ok := predictor.ExtractJSON(content)
	if !ok {
		r.logger.Warn("budget response carried no JSON object")
		return Recommendation{}
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		r.logger.Warn("budget response unparseable", "error", err)
		return Recommendation{}
	}
	return rec
}

// fallback discounts each category's average by a fixed optimization factor,
// then lifts seasonal categories for the current month when enabled.
func (r *Recommender) fallback(averages map[string]float64, applySeasonal bool, month time.Month) Recommendation {
	budgets := make(map[string]float64, len(averages))
	var totalBase, totalBudget float64

	for category, average := range averages {
		discount := defaultDiscount
		if d, ok := categoryDiscounts[category]; ok {
			discount = d
		}
		budget := average * discount

		if applySeasonal {
			if boost, ok := seasonalBoosts[category][month]; ok {
				budget *= boost
			}
		}

		budgets[category] = round2(budget)
		totalBase += average
		totalBudget += budget
	}

	analysis := fmt.Sprintf(
		"Recommended budgets total %.2f against %.2f of average monthly spending, a projected saving of %.2f per month.",
		round2(totalBudget), round2(totalBase), round2(totalBase-totalBudget))

	return Recommendation{Budgets: budgets, Analysis: analysis}
}

const budgetSystemPrompt = "You are a personal finance budgeting assistant. " +
	"Respond with ONLY a JSON object of the form " +
	`{"budgets": {"<category>": amount, ...}, "analysis": "<short summary>"}.`

func buildBudgetPrompt(averages map[string]float64, applySeasonal bool, month time.Month) string {
	var sb strings.Builder
	sb.WriteString("Average monthly spending per category:\n")
	for _, category := range sortedPeriods(averages) {
		fmt.Fprintf(&sb, "%s: %.2f\n", category, averages[category])
	}
	fmt.Fprintf(&sb, "\nCurrent month: %s.\n", month)
	if applySeasonal {
		sb.WriteString("Account for seasonal spending patterns.\n")
	}
	sb.WriteString("Recommend a realistic budget per category that reduces spending without being punishing.")
	return sb.String()
}

// budgetKey derives the cache key from the sorted averages, the seasonal
// flag, and the month the seasonal adjustment would apply to.
func budgetKey(averages map[string]float64, applySeasonal bool, month time.Month) string {
	var sb strings.Builder
	categories := make([]string, 0, len(averages))
	for category := range averages {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		sb.WriteString(category)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(averages[category], 'f', 2, 64))
		sb.WriteByte(';')
	}
	fmt.Fprintf(&sb, "|seasonal=%t|month=%d", applySeasonal, month)
	return hashKey(sb.String())
}

func (r *Recommender) lookup(ctx context.Context, key string) (Recommendation, bool) {
	value, ok, err := r.cache.Get(ctx, budgetBucket, key)
	if err != nil {
		r.logger.Warn("cache lookup failed", "bucket", budgetBucket, "error", err)
		return Recommendation{}, false
	}
	if !ok {
		return Recommendation{}, false
	}
	var rec Recommendation
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		r.logger.Warn("cached entry unparseable", "bucket", budgetBucket, "error", err)
		return Recommendation{}, false
	}
	return rec, true
}

func (r *Recommender) store(ctx context.Context, key string, rec Recommendation) {
	encoded, err := json.Marshal(rec)
	if err != nil {
		r.logger.Warn("failed to encode cache entry", "bucket", budgetBucket, "error", err)
		return
	}
	if err := r.cache.Put(ctx, budgetBucket, key, string(encoded)); err != nil {
		r.logger.Warn("cache write failed", "bucket", budgetBucket, "error", err)
	}
}
