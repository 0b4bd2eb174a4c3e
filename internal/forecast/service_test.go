package forecast

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerloom/ledgerloom/internal/storage"
)

// stubClient returns a fixed response or error for every completion.
type stubClient struct {
	response string
	err      error
	calls    int
}

func (s *stubClient) Complete(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.response, s.err
}

func TestForecastEmptyHistory(t *testing.T) {
	cache := storage.NewMemoryStore()
	service := NewService(cache, nil, nil)

	result := service.Forecast(context.Background(), nil, 3)

	assert.Empty(t, result.Predictions)
	assert.Empty(t, result.Explanation)
}

func TestForecastZeroHorizon(t *testing.T) {
	service := NewService(storage.NewMemoryStore(), nil, nil)

	result := service.Forecast(context.Background(), map[string]float64{"2024-01": 100}, 0)

	assert.Empty(t, result.Predictions)
}

func TestForecastFallbackPeriods(t *testing.T) {
	service := NewService(storage.NewMemoryStore(), nil, nil)
	service.SetRandSource(rand.NewSource(1))

	history := map[string]float64{
		"2024-01": 1000,
		"2024-02": 1100,
		"2024-03": 1200,
		"2024-04": 1300,
	}
	result := service.Forecast(context.Background(), history, 3)

	require.Len(t, result.Predictions, 3)
	assert.Contains(t, result.Predictions, "2024-05")
	assert.Contains(t, result.Predictions, "2024-06")
	assert.Contains(t, result.Predictions, "2024-07")
	assert.NotEmpty(t, result.Explanation)

	// Mean of the last three months is 1200; jitter stays within ±5% and the
	// seasonal factor within [0.95, 1.20].
	for period, value := range result.Predictions {
		assert.Greater(t, value, 1200*0.95*0.9, "period %s", period)
		assert.Less(t, value, 1200*1.20*1.1, "period %s", period)
	}
}

func TestForecastCacheMakesRepeatCallsIdentical(t *testing.T) {
	service := NewService(storage.NewMemoryStore(), nil, nil)
	history := map[string]float64{"2024-01": 800, "2024-02": 900}

	first := service.Forecast(context.Background(), history, 2)
	second := service.Forecast(context.Background(), history, 2)

	// The fallback jitters, so equality proves the second call hit the cache.
	assert.Equal(t, first, second)
}

func TestForecastUsesPredictorResponse(t *testing.T) {
	client := &stubClient{
		response: `Here you go: {"predictions": {"2024-04": 950.25}, "explanation": "stable trend"}`,
	}
	service := NewService(storage.NewMemoryStore(), client, nil)

	result := service.Forecast(context.Background(), map[string]float64{"2024-03": 1000}, 1)

	assert.Equal(t, map[string]float64{"2024-04": 950.25}, result.Predictions)
	assert.Equal(t, "stable trend", result.Explanation)
	assert.Equal(t, 1, client.calls)
}

func TestForecastPredictorErrorFallsBack(t *testing.T) {
	client := &stubClient{err: errors.New("predictor down")}
	service := NewService(storage.NewMemoryStore(), client, nil)
	service.SetRandSource(rand.NewSource(7))

	result := service.Forecast(context.Background(), map[string]float64{"2024-01": 500}, 1)

	require.Len(t, result.Predictions, 1)
	assert.Contains(t, result.Predictions, "2024-02")
	assert.Contains(t, result.Explanation, "unavailable")
}

func TestForecastGibberishResponseFallsBack(t *testing.T) {
	client := &stubClient{response: "I am not sure about that."}
	service := NewService(storage.NewMemoryStore(), client, nil)
	service.SetRandSource(rand.NewSource(7))

	result := service.Forecast(context.Background(), map[string]float64{"2024-01": 500}, 1)

	require.Len(t, result.Predictions, 1)
}

func TestClearForecastCache(t *testing.T) {
	cache := storage.NewMemoryStore()
	client := &stubClient{
		response: `{"predictions": {"2024-04": 1.0}, "explanation": "x"}`,
	}
	service := NewService(cache, client, nil)
	history := map[string]float64{"2024-03": 100}

	service.Forecast(context.Background(), history, 1)
	require.NoError(t, service.ClearCache(context.Background()))
	service.Forecast(context.Background(), history, 1)

	assert.Equal(t, 2, client.calls)
}

func TestSeasonalFactor(t *testing.T) {
	assert.InDelta(t, 1.20, seasonalFactor(12), 1e-9)
	assert.InDelta(t, 1.15, seasonalFactor(1), 1e-9)
	assert.InDelta(t, 1.0, seasonalFactor(5), 1e-9)
}
