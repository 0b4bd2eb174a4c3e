// Package classify assigns spending categories to transactions through
// layered strategies: user rules, cached results, the AI predictor, and a
// deterministic heuristic fallback, in that order.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/model"
	"github.com/ledgerloom/ledgerloom/internal/predictor"
	"github.com/ledgerloom/ledgerloom/internal/rules"
	"github.com/ledgerloom/ledgerloom/internal/storage"
)

const cacheBucket = "classification"

const defaultWorkers = 4

// Classifier resolves categories for (description, amount) pairs. A nil
// predictor client is allowed: classification then runs fully offline on
// rules, cache, and the heuristic.
type Classifier struct {
	rules   *rules.Store
	cache   storage.CacheStore
	client  predictor.Client
	logger  *slog.Logger
	workers int
}

// New creates a classifier. workers bounds the batch worker pool; values
// below one select the default.
func New(ruleStore *rules.Store, cache storage.CacheStore, client predictor.Client, logger *slog.Logger, workers int) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Classifier{
		rules:   ruleStore,
		cache:   cache,
		client:  client,
		logger:  logger,
		workers: workers,
	}
}

// Pair is one classification input.
type Pair struct {
	Description string
	Amount      decimal.Decimal
}

// Classify resolves the category for one (description, amount) pair. It
// never fails: predictor trouble degrades to the heuristic fallback.
//
// Rule matches and heuristic results are not cached. A later rule edit must
// win over an old match, and a predictor that was down may succeed next time.
func (c *Classifier) Classify(ctx context.Context, description string, amount decimal.Decimal) string {
	if category, ok := c.rules.Match(description); ok {
		c.logger.Debug("rule match", "description", description, "category", category)
		return category
	}

	key := model.ClassificationKey(description, amount)
	if value, ok, err := c.cache.Get(ctx, cacheBucket, key); err != nil {
		c.logger.Warn("cache lookup failed", "error", err)
	} else if ok {
		c.logger.Debug("cache hit", "description", description, "category", value)
		return value
	}

	if c.client != nil {
		category, err := c.predict(ctx, description, amount)
		if err == nil {
			if putErr := c.cache.Put(ctx, cacheBucket, key, category); putErr != nil {
				c.logger.Warn("cache write failed", "error", putErr)
			}
			c.logger.Info("transaction classified",
				"description", description,
				"category", category)
			return category
		}
		c.logger.Warn("predictor unavailable, using heuristic",
			"description", description,
			"error", err)
	}

	return FallbackCategory(description, amount)
}

// ClassifyBatch resolves pairs concurrently on a bounded worker pool,
// preserving input order. Each element resolves independently; a predictor
// failure on one item never affects the others.
func (c *Classifier) ClassifyBatch(ctx context.Context, pairs []Pair) []string {
	categories := make([]string, len(pairs))
	sem := make(chan struct{}, c.workers)
	var wg sync.WaitGroup

	for i, pair := range pairs {
		wg.Add(1)
		go func(idx int, p Pair) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				categories[idx] = FallbackCategory(p.Description, p.Amount)
				return
			}

			categories[idx] = c.Classify(ctx, p.Description, p.Amount)
		}(i, pair)
	}

	wg.Wait()
	return categories
}

// ClearCache empties the classification cache. The only invalidation path.
func (c *Classifier) ClearCache(ctx context.Context) error {
	return c.cache.Clear(ctx, cacheBucket)
}

func (c *Classifier) predict(ctx context.Context, description string, amount decimal.Decimal) (string, error) {
	content, err := c.client.Complete(ctx, classifySystemPrompt(), c.buildPrompt(description, amount))
	if err != nil {
		return "", err
	}

	category := strings.TrimSpace(content)
	if payload, ok := predictor.ExtractJSON(content); ok {
		var resp struct {
			Category string `json:"category"`
		}
		if err := json.Unmarshal([]byte(payload), &resp); err == nil && resp.Category != "" {
			category = strings.TrimSpace(resp.Category)
		}
	}

	if !model.ValidCategory(category) {
		return "", fmt.Errorf("%w: label %q outside vocabulary", common.ErrPredictorFailure, category)
	}
	return category, nil
}

func classifySystemPrompt() string {
	return fmt.Sprintf(
		"You are a personal finance transaction classifier. "+
			"Classify transactions into exactly one of these categories: %s. "+
			"Respond with ONLY a JSON object of the form {\"category\": \"<name>\"}.",
		strings.Join(model.Categories, ", "))
}

// buildPrompt embeds the transaction and any user rules as hints.
func (c *Classifier) buildPrompt(description string, amount decimal.Decimal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Transaction description: %s\nAmount: %s (negative means expense)\n", description, amount.String())

	if userRules := c.rules.Rules(); len(userRules) > 0 {
		sb.WriteString("\nThe user has defined these keyword rules as hints:\n")
		for _, rule := range userRules {
			fmt.Fprintf(&sb, "- %q -> %s\n", rule.Keyword, rule.Category)
		}
	}

	sb.WriteString("\nChoose the single best category.")
	return sb.String()
}
