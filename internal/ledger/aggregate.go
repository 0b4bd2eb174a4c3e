package ledger

import "github.com/ledgerloom/ledgerloom/internal/model"

// MonthlyExpenseTotals sums expense magnitudes by YYYY-MM period. Income
// (positive amounts) is excluded: forecasting operates on spending.
func MonthlyExpenseTotals(transactions []model.Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, tx := range transactions {
		if !tx.Amount.IsNegative() {
			continue
		}
		period := tx.Date.Format("2006-01")
		totals[period] += tx.Amount.Neg().InexactFloat64()
	}
	return totals
}

// CategoryMonthlyAverages averages per-category expense totals over the
// months each category appears in. Uncategorized records count as Other.
func CategoryMonthlyAverages(transactions []model.Transaction) map[string]float64 {
	sums := make(map[string]float64)
	months := make(map[string]map[string]struct{})

	for _, tx := range transactions {
		if !tx.Amount.IsNegative() {
			continue
		}
		category := tx.Category
		if category == "" {
			category = model.CategoryOther
		}
		sums[category] += tx.Amount.Neg().InexactFloat64()

		period := tx.Date.Format("2006-01")
		if months[category] == nil {
			months[category] = make(map[string]struct{})
		}
		months[category][period] = struct{}{}
	}

	averages := make(map[string]float64, len(sums))
	for category, sum := range sums {
		averages[category] = sum / float64(len(months[category]))
	}
	return averages
}
