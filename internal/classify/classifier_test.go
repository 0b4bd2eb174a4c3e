package classify

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerloom/ledgerloom/internal/model"
	"github.com/ledgerloom/ledgerloom/internal/rules"
	"github.com/ledgerloom/ledgerloom/internal/storage"
)

// mockClient scripts predictor responses per call.
type mockClient struct {
	responses []string
	errs      []error
	calls     atomic.Int64
}

func (m *mockClient) Complete(_ context.Context, _, _ string) (string, error) {
	idx := int(m.calls.Add(1)) - 1
	var err error
	if idx < len(m.errs) {
		err = m.errs[idx]
	}
	var resp string
	if idx < len(m.responses) {
		resp = m.responses[idx]
	}
	return resp, err
}

func (m *mockClient) Close() error { return nil }

func newTestRules(t *testing.T) *rules.Store {
	t.Helper()
	store, err := rules.NewStore(filepath.Join(t.TempDir(), "rules.txt"))
	require.NoError(t, err)
	return store
}

func TestClassifyRuleMatchBypassesPredictor(t *testing.T) {
	ruleStore := newTestRules(t)
	require.NoError(t, ruleStore.Add("coffee", "Food"))
	client := &mockClient{}
	classifier := New(ruleStore, storage.NewMemoryStore(), client, nil, 1)

	category := classifier.Classify(context.Background(), "morning coffee", decimal.RequireFromString("-4.50"))

	assert.Equal(t, "Food", category)
	assert.Zero(t, client.calls.Load(), "predictor must not be consulted when a rule matches")
}

func TestClassifyCachesPredictorResult(t *testing.T) {
	client := &mockClient{
		responses: []string{`{"category": "Transport"}`, ""},
		errs:      []error{nil, errors.New("predictor down")},
	}
	classifier := New(newTestRules(t), storage.NewMemoryStore(), client, nil, 1)
	ctx := context.Background()
	amount := decimal.RequireFromString("-18.20")

	first := classifier.Classify(ctx, "ride downtown", amount)
	second := classifier.Classify(ctx, "ride downtown", amount)

	assert.Equal(t, "Transport", first)
	assert.Equal(t, "Transport", second, "second call must be served from cache")
	assert.Equal(t, int64(1), client.calls.Load())
}

func TestClassifyInvalidLabelFallsBackToHeuristic(t *testing.T) {
	client := &mockClient{responses: []string{`{"category": "Gambling"}`}}
	cache := storage.NewMemoryStore()
	classifier := New(newTestRules(t), cache, client, nil, 1)
	ctx := context.Background()

	category := classifier.Classify(ctx, "taxi home", decimal.RequireFromString("-30"))

	assert.Equal(t, model.CategoryTransport, category)
	key := model.ClassificationKey("taxi home", decimal.RequireFromString("-30"))
	_, ok, err := cache.Get(ctx, "classification", key)
	require.NoError(t, err)
	assert.False(t, ok, "heuristic results must not be cached")
}

func TestClassifyBareLabelResponse(t *testing.T) {
	client := &mockClient{responses: []string{"Entertainment"}}
	classifier := New(newTestRules(t), storage.NewMemoryStore(), client, nil, 1)

	category := classifier.Classify(context.Background(), "steam purchase xyz", decimal.RequireFromString("-20"))

	assert.Equal(t, "Entertainment", category)
}

func TestClassifyNilClientRunsOffline(t *testing.T) {
	classifier := New(newTestRules(t), storage.NewMemoryStore(), nil, nil, 1)

	category := classifier.Classify(context.Background(), "grocery run", decimal.RequireFromString("-60"))

	assert.Equal(t, model.CategoryFood, category)
}

func TestClassifyBatchPreservesOrderAndIsolation(t *testing.T) {
	ruleStore := newTestRules(t)
	require.NoError(t, ruleStore.Add("coffee", "Food"))
	// Only the unmatched pair reaches the predictor, and it fails.
	client := &mockClient{errs: []error{errors.New("predictor down")}}
	classifier := New(ruleStore, storage.NewMemoryStore(), client, nil, 2)

	pairs := []Pair{
		{Description: "coffee to go", Amount: decimal.RequireFromString("-3")},
		{Description: "uber to office", Amount: decimal.RequireFromString("-15")},
		{Description: "coffee beans", Amount: decimal.RequireFromString("-12")},
	}
	categories := classifier.ClassifyBatch(context.Background(), pairs)

	assert.Equal(t, []string{"Food", model.CategoryTransport, "Food"}, categories)
}

func TestClassifyBatchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	classifier := New(newTestRules(t), storage.NewMemoryStore(), nil, nil, 1)

	categories := classifier.ClassifyBatch(ctx, []Pair{
		{Description: "salary", Amount: decimal.RequireFromString("5000")},
	})

	require.Len(t, categories, 1)
	assert.Equal(t, model.CategoryIncome, categories[0])
}

func TestClearCache(t *testing.T) {
	client := &mockClient{
		responses: []string{`{"category": "Transport"}`, `{"category": "Shopping"}`},
	}
	classifier := New(newTestRules(t), storage.NewMemoryStore(), client, nil, 1)
	ctx := context.Background()
	amount := decimal.RequireFromString("-18.20")

	first := classifier.Classify(ctx, "ride downtown", amount)
	require.NoError(t, classifier.ClearCache(ctx))
	second := classifier.Classify(ctx, "ride downtown", amount)

	assert.Equal(t, "Transport", first)
	assert.Equal(t, "Shopping", second, "cleared cache must re-consult the predictor")
	assert.Equal(t, int64(2), client.calls.Load())
}
