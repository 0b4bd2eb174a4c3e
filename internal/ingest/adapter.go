package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

// errSkipRow marks a row that does not match the format and should be
// silently skipped. It is an outcome, not a fault.
var errSkipRow = errors.New("row skipped")

// Adapter owns the column layout, header handling, and amount-sign
// convention of one export format.
type Adapter interface {
	Format() Format

	// Scan inspects the header block and returns the index of the first data
	// row along with any owner identity embedded in the header (empty when
	// the format carries none).
	Scan(lines []string) (skip int, user string)

	// Convert maps one tokenized row onto a transaction. Rows that do not
	// match the format return errSkipRow; bad amount fields return an error
	// wrapping common.ErrAmountParse. Both are skipped by the pipeline.
	Convert(fields []string, user string) (model.Transaction, error)
}

// adapterFor returns the adapter handling the sniffed format.
func adapterFor(format Format) Adapter {
	switch format {
	case FormatWalletA:
		return walletAAdapter{}
	case FormatWalletW:
		return walletWAdapter{}
	default:
		return genericAdapter{}
	}
}

// Direction labels the wallet apps use for the transfer type column.
const (
	directionOutgoing = "支出"
	directionIncoming = "收入"
)

// dateLayouts are tried in order against the date portion of a row.
var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006/1/2"}

// parseRowDate truncates a date-time string to its date portion and parses
// it. Wallet exports carry "2024-01-05 12:34:56"; only the calendar date is
// kept.
func parseRowDate(raw string) (time.Time, error) {
	datePart := strings.TrimSpace(raw)
	if idx := strings.IndexByte(datePart, ' '); idx > 0 {
		datePart = datePart[:idx]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, datePart); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", errSkipRow, raw)
}

// parseWalletAmount strips currency decoration from a wallet amount string
// and negates it when the direction column marks an outgoing transfer.
func parseWalletAmount(raw, direction string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "¥")
	cleaned = strings.TrimPrefix(cleaned, "￥")
	cleaned = strings.TrimSuffix(cleaned, "元")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", common.ErrAmountParse, raw)
	}
	if strings.Contains(direction, directionOutgoing) {
		amount = amount.Neg()
	}
	return amount, nil
}

// headerUser extracts the owner identity from a header line carrying the
// given label prefix, e.g. "姓名:张三". Both half- and full-width colons
// appear in the wild.
func headerUser(line, label string) (string, bool) {
	idx := strings.Index(line, label)
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len(label):]
	rest = strings.TrimLeft(rest, ":：")
	rest = strings.Trim(strings.TrimSpace(rest), `"`)
	if rest == "" {
		return "", false
	}
	return rest, true
}
