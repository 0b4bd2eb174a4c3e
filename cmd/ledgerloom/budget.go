package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/forecast"
	"github.com/ledgerloom/ledgerloom/internal/ledger"
)

func budgetCmd() *cobra.Command {
	var seasonal bool

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Recommend per-category budgets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lpath, err := ledgerPath()
			if err != nil {
				return err
			}
			transactions, _, err := ledger.Load(lpath)
			if err != nil {
				return common.NewUserError("failed to load ledger", err)
			}

			cache, err := openCacheStore()
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			recommender := forecast.NewRecommender(cache, newPredictorClient(), slog.Default())
			rec := recommender.Recommend(cmd.Context(), ledger.CategoryMonthlyAverages(transactions), seasonal)

			if len(rec.Budgets) == 0 {
				fmt.Println("No spending history to recommend budgets from")
				return nil
			}

			categories := make([]string, 0, len(rec.Budgets))
			for category := range rec.Budgets {
				categories = append(categories, category)
			}
			sort.Strings(categories)
			for _, category := range categories {
				fmt.Printf("%-15s %.2f\n", category, rec.Budgets[category])
			}
			fmt.Printf("\n%s\n", rec.Analysis)
			return nil
		},
	}

	cmd.Flags().BoolVar(&seasonal, "seasonal", false, "apply seasonal adjustments for the current month")
	return cmd
}
