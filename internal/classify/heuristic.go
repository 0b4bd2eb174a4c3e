package classify

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

// keywordChecks is the ordered deterministic fallback table. Order matters:
// the first matching keyword wins.
var keywordChecks = []struct {
	keyword  string
	category string
}{
	{"salary", model.CategoryIncome},
	{"payroll", model.CategoryIncome},
	{"refund", model.CategoryIncome},
	{"coffee", model.CategoryFood},
	{"restaurant", model.CategoryFood},
	{"grocery", model.CategoryFood},
	{"supermarket", model.CategoryFood},
	{"lunch", model.CategoryFood},
	{"dinner", model.CategoryFood},
	{"taxi", model.CategoryTransport},
	{"uber", model.CategoryTransport},
	{"metro", model.CategoryTransport},
	{"bus", model.CategoryTransport},
	{"train", model.CategoryTransport},
	{"fuel", model.CategoryTransport},
	{"rent", model.CategoryHousing},
	{"mortgage", model.CategoryHousing},
	{"electric", model.CategoryUtilities},
	{"water", model.CategoryUtilities},
	{"internet", model.CategoryUtilities},
	{"phone", model.CategoryUtilities},
	{"pharmacy", model.CategoryHealth},
	{"doctor", model.CategoryHealth},
	{"hospital", model.CategoryHealth},
	{"cinema", model.CategoryEntertainment},
	{"movie", model.CategoryEntertainment},
	{"game", model.CategoryEntertainment},
	{"tuition", model.CategoryEducation},
	{"course", model.CategoryEducation},
	{"book", model.CategoryEducation},
	{"mall", model.CategoryShopping},
	{"store", model.CategoryShopping},
	{"shop", model.CategoryShopping},
}

// largeExpenseThreshold is the placeholder boundary below which an unmatched
// expense is guessed to be housing-related.
var largeExpenseThreshold = decimal.NewFromInt(-1000)

// FallbackCategory applies the deterministic keyword heuristic, then an
// amount-sign guess, defaulting to Other. It is the last classification
// layer and never fails.
func FallbackCategory(description string, amount decimal.Decimal) string {
	lowered := strings.ToLower(description)
	for _, check := range keywordChecks {
		if strings.Contains(lowered, check.keyword) {
			return check.category
		}
	}

	if amount.IsPositive() {
		return model.CategoryIncome
	}
	if amount.LessThan(largeExpenseThreshold) {
		return model.CategoryHousing
	}
	return model.CategoryOther
}
