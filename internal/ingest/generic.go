package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

// genericAdapter parses the hand-built six-column export:
// User,Source,Date,Amount,Category,Description with a single header row.
// Amounts pass through unchanged; missing trailing fields default to empty.
type genericAdapter struct{}

const (
	genericColumns    = 6
	genericMinColumns = 4 // through the Amount column
)

func (genericAdapter) Format() Format { return FormatGeneric }

func (genericAdapter) Scan(_ []string) (int, string) {
	return 1, ""
}

func (genericAdapter) Convert(fields []string, _ string) (model.Transaction, error) {
	if len(fields) < genericMinColumns {
		return model.Transaction{}, fmt.Errorf("%w: %d columns", errSkipRow, len(fields))
	}
	for len(fields) < genericColumns {
		fields = append(fields, "")
	}

	date, err := parseRowDate(fields[2])
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %q", common.ErrAmountParse, fields[3])
	}

	source := strings.TrimSpace(fields[1])
	if source == "" {
		source = model.SourceImport
	}

	return model.Transaction{
		User:        strings.TrimSpace(fields[0]),
		Source:      source,
		Date:        date,
		Amount:      amount,
		Category:    strings.TrimSpace(fields[4]),
		Description: strings.TrimSpace(fields[5]),
	}, nil
}
