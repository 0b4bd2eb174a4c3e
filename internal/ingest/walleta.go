package ingest

import (
	"fmt"
	"strings"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

// walletAAdapter parses the mobile-wallet export: a locale-specific header
// block carrying the 支付宝 marker and optionally the owner's 姓名: line,
// followed by rows of at least seven columns:
// time, category hint, counterparty, description, amount, direction, status.
type walletAAdapter struct{}

const walletAMinColumns = 7

// walletAUserLabel marks the header line the owner identity is read from.
const walletAUserLabel = "姓名"

// placeholderUser is assigned when the header block names no owner.
const placeholderUser = "imported"

func (walletAAdapter) Format() Format { return FormatWalletA }

func (walletAAdapter) Scan(lines []string) (int, string) {
	return scanWalletHeader(lines, walletAUserLabel, walletAMinColumns)
}

func (walletAAdapter) Convert(fields []string, user string) (model.Transaction, error) {
	if len(fields) < walletAMinColumns {
		return model.Transaction{}, fmt.Errorf("%w: %d columns", errSkipRow, len(fields))
	}

	date, err := parseRowDate(fields[0])
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := parseWalletAmount(fields[4], strings.TrimSpace(fields[5]))
	if err != nil {
		return model.Transaction{}, err
	}

	description := strings.TrimSpace(fields[3])
	if description == "" {
		description = strings.TrimSpace(fields[2])
	}

	return model.Transaction{
		User:        user,
		Source:      model.SourceWalletA,
		Date:        date,
		Amount:      amount,
		Description: description,
	}, nil
}

// scanWalletHeader walks the header block of a wallet export: it remembers
// any owner line, and stops at the first line that tokenizes into enough
// columns to be a data row. Wallet header blocks vary in length between app
// versions, so the boundary is detected rather than fixed.
func scanWalletHeader(lines []string, userLabel string, minColumns int) (int, string) {
	user := placeholderUser
	for i, line := range lines {
		if name, ok := headerUser(line, userLabel); ok {
			user = name
			continue
		}
		fields := ParseLine(line)
		if len(fields) >= minColumns && !blankRow(fields) {
			if _, err := parseRowDate(fields[0]); err == nil {
				return i, user
			}
		}
	}
	return len(lines), user
}
