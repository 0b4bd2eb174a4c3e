// Package ledger reads and writes the persisted transaction file: a CSV with
// header ID,User,Source,Date,Amount,Category,Description, ISO dates, and
// signed decimal amounts.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerloom/ledgerloom/internal/ingest"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

var header = []string{"ID", "User", "Source", "Date", "Amount", "Category", "Description"}

const dateLayout = "2006-01-02"

// Save writes transactions to path, replacing any previous file.
func Save(path string, transactions []model.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ledger file: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	for _, tx := range transactions {
		record := []string{
			strconv.FormatInt(tx.ID, 10),
			tx.User,
			tx.Source,
			tx.Date.Format(dateLayout),
			tx.Amount.String(),
			tx.Category,
			tx.Description,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write ledger row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger file: %w", err)
	}
	return file.Close()
}

// Load parses the ledger file at path, returning the records and the largest
// id seen (for allocator reconciliation). A missing file yields an empty
// ledger without error.
func Load(path string) ([]model.Transaction, int64, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read ledger file: %w", err)
	}

	lines := strings.Split(strings.TrimPrefix(string(data), "\ufeff"), "\n")
	var transactions []model.Transaction
	var maxID int64

	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if i == 0 || strings.TrimSpace(line) == "" {
			continue // header or blank
		}

		fields := ingest.ParseLine(line)
		if len(fields) < len(header) {
			return nil, 0, fmt.Errorf("ledger line %d: %d fields, want %d", i+1, len(fields), len(header))
		}

		id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("ledger line %d: invalid id %q: %w", i+1, fields[0], err)
		}
		date, err := time.Parse(dateLayout, strings.TrimSpace(fields[3]))
		if err != nil {
			return nil, 0, fmt.Errorf("ledger line %d: invalid date %q: %w", i+1, fields[3], err)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(fields[4]))
		if err != nil {
			return nil, 0, fmt.Errorf("ledger line %d: invalid amount %q: %w", i+1, fields[4], err)
		}

		if id > maxID {
			maxID = id
		}
		transactions = append(transactions, model.Transaction{
			ID:          id,
			User:        fields[1],
			Source:      fields[2],
			Date:        date,
			Amount:      amount,
			Category:    fields[5],
			Description: fields[6],
		})
	}

	return transactions, maxID, nil
}
