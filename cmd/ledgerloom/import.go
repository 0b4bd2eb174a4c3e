package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/ingest"
	"github.com/ledgerloom/ledgerloom/internal/ledger"
)

func importCmd() *cobra.Command {
	var runClassify bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a transaction export into the ledger",
		Long: `Import reads a transaction export (hand-built CSV or a wallet app
export), detects its encoding and format, and appends the normalized records
to the ledger.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return common.NewUserError("failed to read import file", err)
			}

			lpath, err := ledgerPath()
			if err != nil {
				return err
			}
			cpath, err := counterPath()
			if err != nil {
				return err
			}

			existing, maxID, err := ledger.Load(lpath)
			if err != nil {
				return common.NewUserError("failed to load ledger", err)
			}

			ids, err := ingest.NewIDAllocator(cpath)
			if err != nil {
				return common.NewUserError("failed to open id counter", err)
			}
			// Ledger files may carry ids the counter has never seen.
			if err := ids.Reconcile(maxID); err != nil {
				return common.NewUserError("failed to reconcile id counter", err)
			}

			result := ingest.NewPipeline(ids, slog.Default()).Import(raw)
			if !result.OK {
				return common.NewUserError("import failed", fmt.Errorf("%s", result.Err))
			}

			records := result.Transactions
			if runClassify {
				classifier, cache, err := newClassifier()
				if err != nil {
					return err
				}
				defer func() { _ = cache.Close() }()
				records = classifyTransactions(cmd.Context(), classifier, records)
			}

			if err := ledger.Save(lpath, append(existing, records...)); err != nil {
				return common.NewUserError("failed to save ledger", err)
			}

			fmt.Printf("Imported %d transactions (%d rows skipped) from %s file decoded as %s\n",
				result.Imported, result.Skipped, result.Format, result.Encoding)
			return nil
		},
	}

	cmd.Flags().BoolVar(&runClassify, "classify", false, "classify imported transactions")
	return cmd
}
