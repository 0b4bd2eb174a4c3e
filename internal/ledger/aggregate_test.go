package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

func tx(date string, amount string, category string) model.Transaction {
	parsed, _ := time.Parse("2006-01-02", date)
	return model.Transaction{
		Date:     parsed,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
	}
}

func TestMonthlyExpenseTotals(t *testing.T) {
	transactions := []model.Transaction{
		tx("2024-01-05", "-40", "Food"),
		tx("2024-01-20", "-60", "Transport"),
		tx("2024-02-01", "-25", "Food"),
		tx("2024-02-10", "5000", "Income"), // income excluded
		tx("2024-02-15", "0", ""),          // zero excluded
	}

	totals := MonthlyExpenseTotals(transactions)

	assert.Equal(t, map[string]float64{
		"2024-01": 100,
		"2024-02": 25,
	}, totals)
}

func TestCategoryMonthlyAverages(t *testing.T) {
	transactions := []model.Transaction{
		tx("2024-01-05", "-40", "Food"),
		tx("2024-02-05", "-60", "Food"),
		tx("2024-01-10", "-30", ""), // uncategorized counts as Other
		tx("2024-01-15", "2000", "Income"),
	}

	averages := CategoryMonthlyAverages(transactions)

	assert.InDelta(t, 50, averages["Food"], 1e-9)
	assert.InDelta(t, 30, averages[model.CategoryOther], 1e-9)
	assert.NotContains(t, averages, "Income")
}
