package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ledgerloom/ledgerloom/internal/classify"
	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/predictor"
	"github.com/ledgerloom/ledgerloom/internal/rules"
	"github.com/ledgerloom/ledgerloom/internal/storage"
)

func dataDir() (string, error) {
	if dir := viper.GetString("data.dir"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "ledgerloom"), nil
}

func ledgerPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ledger.csv"), nil
}

func counterPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "id_counter.txt"), nil
}

func openCacheStore() (storage.CacheStore, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStore(filepath.Join(dir, "cache.db"))
	if err != nil {
		return nil, common.NewUserError("failed to open cache database", err)
	}
	return store, nil
}

func openRuleStore() (*rules.Store, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	store, err := rules.NewStore(filepath.Join(dir, "rules.txt"))
	if err != nil {
		return nil, common.NewUserError("failed to load category rules", err)
	}
	return store, nil
}

// newPredictorClient builds the AI client from configuration. A missing API
// key is not an error: the engine runs offline on rules, cache, and the
// heuristic, which is also what every predictor failure degrades to.
func newPredictorClient() predictor.Client {
	apiKey := viper.GetString("predictor.api_key")
	if apiKey == "" {
		slog.Warn("no predictor API key configured, running offline")
		return nil
	}

	client, err := predictor.NewClient(predictor.Config{
		BaseURL:   viper.GetString("predictor.base_url"),
		APIKey:    apiKey,
		Model:     viper.GetString("predictor.model"),
		Timeout:   viper.GetDuration("predictor.timeout"),
		RateLimit: viper.GetInt("predictor.rate_limit"),
	})
	if err != nil {
		slog.Warn("failed to create predictor client, running offline", "error", err)
		return nil
	}
	return client
}

func newClassifier() (*classify.Classifier, storage.CacheStore, error) {
	ruleStore, err := openRuleStore()
	if err != nil {
		return nil, nil, err
	}
	cache, err := openCacheStore()
	if err != nil {
		return nil, nil, err
	}
	workers := viper.GetInt("classify.workers")
	return classify.New(ruleStore, cache, newPredictorClient(), slog.Default(), workers), cache, nil
}

func init() {
	viper.SetDefault("predictor.timeout", 30*time.Second)
	viper.SetDefault("predictor.rate_limit", 60)
	viper.SetDefault("classify.workers", 4)
}
