package ingest

import (
	"fmt"
	"strings"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

// walletWAdapter parses the messaging-wallet export: a header block carrying
// the 微信支付 marker and optionally the owner's 昵称: line, followed by rows
// of at least six columns:
// time, type, counterparty, direction, amount, status.
type walletWAdapter struct{}

const walletWMinColumns = 6

// walletWUserLabel marks the header line the owner identity is read from.
const walletWUserLabel = "昵称"

func (walletWAdapter) Format() Format { return FormatWalletW }

func (walletWAdapter) Scan(lines []string) (int, string) {
	return scanWalletHeader(lines, walletWUserLabel, walletWMinColumns)
}

func (walletWAdapter) Convert(fields []string, user string) (model.Transaction, error) {
	if len(fields) < walletWMinColumns {
		return model.Transaction{}, fmt.Errorf("%w: %d columns", errSkipRow, len(fields))
	}

	date, err := parseRowDate(fields[0])
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := parseWalletAmount(fields[4], strings.TrimSpace(fields[3]))
	if err != nil {
		return model.Transaction{}, err
	}

	description := strings.TrimSpace(fields[2])
	if description == "" {
		description = strings.TrimSpace(fields[1])
	}

	return model.Transaction{
		User:        user,
		Source:      model.SourceWalletW,
		Date:        date,
		Amount:      amount,
		Description: description,
	}, nil
}
