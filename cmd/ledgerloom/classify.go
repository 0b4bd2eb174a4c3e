package main

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ledgerloom/ledgerloom/internal/classify"
	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/ledger"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

// classifyChunkSize bounds how many records go through the batch classifier
// between progress updates.
const classifyChunkSize = 16

func classifyCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Assign categories to ledger transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lpath, err := ledgerPath()
			if err != nil {
				return err
			}
			transactions, _, err := ledger.Load(lpath)
			if err != nil {
				return common.NewUserError("failed to load ledger", err)
			}

			var targets []int
			for i, tx := range transactions {
				if all || tx.Category == "" {
					targets = append(targets, i)
				}
			}
			if len(targets) == 0 {
				fmt.Println("Nothing to classify")
				return nil
			}

			classifier, cache, err := newClassifier()
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			bar := progressbar.Default(int64(len(targets)), "classifying")
			for start := 0; start < len(targets); start += classifyChunkSize {
				end := start + classifyChunkSize
				if end > len(targets) {
					end = len(targets)
				}
				chunk := targets[start:end]

				pairs := make([]classify.Pair, len(chunk))
				for i, idx := range chunk {
					pairs[i] = classify.Pair{
						Description: transactions[idx].Description,
						Amount:      transactions[idx].Amount,
					}
				}
				categories := classifier.ClassifyBatch(cmd.Context(), pairs)
				for i, idx := range chunk {
					transactions[idx].Category = categories[i]
				}
				_ = bar.Add(len(chunk))
			}

			if err := ledger.Save(lpath, transactions); err != nil {
				return common.NewUserError("failed to save ledger", err)
			}
			fmt.Printf("Classified %d transactions\n", len(targets))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "reclassify every transaction, not just uncategorized ones")
	return cmd
}

// classifyTransactions runs the batch classifier over records, filling the
// category field of those that lack one.
func classifyTransactions(ctx context.Context, classifier *classify.Classifier, records []model.Transaction) []model.Transaction {
	pairs := make([]classify.Pair, len(records))
	for i, tx := range records {
		pairs[i] = classify.Pair{Description: tx.Description, Amount: tx.Amount}
	}
	categories := classifier.ClassifyBatch(ctx, pairs)
	for i := range records {
		if records[i].Category == "" {
			records[i].Category = categories[i]
		}
	}
	return records
}
