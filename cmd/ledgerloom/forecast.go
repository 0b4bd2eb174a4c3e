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

func forecastCmd() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast spending for the coming months",
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

			service := forecast.NewService(cache, newPredictorClient(), slog.Default())
			result := service.Forecast(cmd.Context(), ledger.MonthlyExpenseTotals(transactions), months)

			if len(result.Predictions) == 0 {
				fmt.Println("Not enough history to forecast")
				return nil
			}

			periods := make([]string, 0, len(result.Predictions))
			for period := range result.Predictions {
				periods = append(periods, period)
			}
			sort.Strings(periods)
			for _, period := range periods {
				fmt.Printf("%s: %.2f\n", period, result.Predictions[period])
			}
			fmt.Printf("\n%s\n", result.Explanation)
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 3, "forecast horizon in months")
	return cmd
}
