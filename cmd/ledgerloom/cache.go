package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ledgerloom/ledgerloom/internal/forecast"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached predictor results",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear all cached classification and forecast results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			classifier, cache, err := newClassifier()
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			if err := classifier.ClearCache(cmd.Context()); err != nil {
				return err
			}
			service := forecast.NewService(cache, nil, slog.Default())
			if err := service.ClearCache(cmd.Context()); err != nil {
				return err
			}
			recommender := forecast.NewRecommender(cache, nil, slog.Default())
			if err := recommender.ClearCache(cmd.Context()); err != nil {
				return err
			}

			fmt.Println("Caches cleared")
			return nil
		},
	})

	return cmd
}
