// Package model defines the canonical transaction record and the
// classification vocabulary shared across the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction source tags.
const (
	SourceManual  = "manual"
	SourceImport  = "import"
	SourceWalletA = "walletA"
	SourceWalletW = "walletW"
)

// Transaction is the canonical record every export format normalizes into.
// Amounts are signed: negative for expenses, positive for income. Only the
// Category field is mutated after import.
type Transaction struct {
	Date        time.Time
	User        string
	Source      string
	Category    string
	Description string
	Amount      decimal.Decimal
	ID          int64
}

// ClassificationKey returns the stable cache key for a (description, amount)
// pair. The description is lower-cased and trimmed so trivially different
// spellings of the same transaction share one cache entry.
func ClassificationKey(description string, amount decimal.Decimal) string {
	data := fmt.Sprintf("%s|%s", strings.ToLower(strings.TrimSpace(description)), amount.String())
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
