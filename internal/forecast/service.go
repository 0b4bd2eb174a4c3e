// Package forecast predicts future spending and recommends budgets using the
// same cache-then-predictor-then-fallback layering as classification.
package forecast

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ledgerloom/ledgerloom/internal/predictor"
	"github.com/ledgerloom/ledgerloom/internal/storage"
)

const (
	forecastBucket = "forecast"
	budgetBucket   = "budget"
)

// periodLayout formats the YYYY-MM period keys used throughout.
const periodLayout = "2006-01"

// recentPeriods is how many trailing months the fallback averages over.
const recentPeriods = 3

// Service forecasts per-period spending. A nil predictor client is allowed;
// the local model then serves every miss.
type Service struct {
	cache  storage.CacheStore
	client predictor.Client
	logger *slog.Logger
	rng    *rand.Rand
	mu     sync.Mutex // guards rng
}

// NewService creates a forecast service.
func NewService(cache storage.CacheStore, client predictor.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cache:  cache,
		client: client,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRandSource replaces the jitter source. Tests inject a fixed seed.
func (s *Service) SetRandSource(src rand.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rand.New(src)
}

// Result carries per-period predictions and the explanation that produced
// them (the predictor's rationale or the fallback's templated text).
type Result struct {
	Predictions map[string]float64 `json:"predictions"`
	Explanation string             `json:"explanation"`
}

// Forecast predicts spending for the horizonMonths periods following the
// history. An empty history yields an empty prediction set without error and
// without touching the cache.
func (s *Service) Forecast(ctx context.Context, history map[string]float64, horizonMonths int) Result {
	if len(history) == 0 || horizonMonths <= 0 {
		return Result{Predictions: map[string]float64{}}
	}

	key := forecastKey(history, horizonMonths)
	if cached, ok := s.lookup(ctx, forecastBucket, key); ok {
		s.logger.Debug("forecast cache hit", "horizon", horizonMonths)
		return cached
	}

	result := s.predict(ctx, history, horizonMonths)
	if len(result.Predictions) == 0 {
		result = s.fallback(history, horizonMonths)
	}

	s.store(ctx, forecastBucket, key, result)
	return result
}

// ClearCache empties the forecast cache.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx, forecastBucket)
}

// predict asks the predictor for a structured forecast. Anything unusable
// yields a zero-length prediction set, triggering the local fallback.
func (s *Service) predict(ctx context.Context, history map[string]float64, horizonMonths int) Result {
	if s.client == nil {
		return Result{}
	}

	content, err := s.client.Complete(ctx, forecastSystemPrompt, buildForecastPrompt(history, horizonMonths))
	if err != nil {
		s.logger.Warn("forecast predictor unavailable", "error", err)
		return Result{}
	}

	payload, ok := predictor.ExtractJSON(content)
	if !ok {
		s.logger.Warn("forecast response carried no JSON object")
		return Result{}
	}

	var result Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		s.logger.Warn("forecast response unparseable", "error", err)
		return Result{}
	}
	return result
}

// fallback projects the mean of the last three known periods forward,
// scaled by the calendar-month seasonal factor and perturbed by a small
// bounded random factor.
func (s *Service) fallback(history map[string]float64, horizonMonths int) Result {
	periods := sortedPeriods(history)

	n := recentPeriods
	if len(periods) < n {
		n = len(periods)
	}
	var sum float64
	for _, period := range periods[len(periods)-n:] {
		sum += history[period]
	}
	mean := sum / float64(n)

	last, err := time.Parse(periodLayout, periods[len(periods)-1])
	if err != nil {
		last = time.Now()
	}

	predictions := make(map[string]float64, horizonMonths)
	for i := 1; i <= horizonMonths; i++ {
		month := last.AddDate(0, i, 0)
		estimate := mean * seasonalFactor(month.Month()) * s.jitter()
		predictions[month.Format(periodLayout)] = round2(estimate)
	}

	explanation := fmt.Sprintf(
		"Projected from the average of the last %d months (%.2f) with per-month seasonal factors; the prediction service was unavailable.",
		n, mean)

	return Result{Predictions: predictions, Explanation: explanation}
}

// jitter returns a multiplier within ±5% of one.
func (s *Service) jitter() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return 1 + (s.rng.Float64()-0.5)*0.1
}

const forecastSystemPrompt = "You are a personal finance forecasting assistant. " +
	"Respond with ONLY a JSON object of the form " +
	`{"predictions": {"YYYY-MM": amount, ...}, "explanation": "<short rationale>"}.`

func buildForecastPrompt(history map[string]float64, horizonMonths int) string {
	var sb strings.Builder
	sb.WriteString("Monthly spending history, in chronological order:\n")
	for _, period := range sortedPeriods(history) {
		fmt.Fprintf(&sb, "%s: %.2f\n", period, history[period])
	}
	fmt.Fprintf(&sb, "\nForecast total spending for the next %d months.", horizonMonths)
	return sb.String()
}

// forecastKey derives the cache key from the sorted series plus horizon.
func forecastKey(history map[string]float64, horizonMonths int) string {
	var sb strings.Builder
	for _, period := range sortedPeriods(history) {
		sb.WriteString(period)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(history[period], 'f', 2, 64))
		sb.WriteByte(';')
	}
	fmt.Fprintf(&sb, "|h=%d", horizonMonths)
	return hashKey(sb.String())
}

func (s *Service) lookup(ctx context.Context, bucket, key string) (Result, bool) {
	value, ok, err := s.cache.Get(ctx, bucket, key)
	if err != nil {
		s.logger.Warn("cache lookup failed", "bucket", bucket, "error", err)
		return Result{}, false
	}
	if !ok {
		return Result{}, false
	}
	var result Result
	if err := json.Unmarshal([]byte(value), &result); err != nil {
		s.logger.Warn("cached entry unparseable", "bucket", bucket, "error", err)
		return Result{}, false
	}
	return result, true
}

func (s *Service) store(ctx context.Context, bucket, key string, result Result) {
	encoded, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("failed to encode cache entry", "bucket", bucket, "error", err)
		return
	}
	if err := s.cache.Put(ctx, bucket, key, string(encoded)); err != nil {
		s.logger.Warn("cache write failed", "bucket", bucket, "error", err)
	}
}

func sortedPeriods(series map[string]float64) []string {
	periods := make([]string, 0, len(series))
	for period := range series {
		periods = append(periods, period)
	}
	sort.Strings(periods)
	return periods
}

func hashKey(data string) string {
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
