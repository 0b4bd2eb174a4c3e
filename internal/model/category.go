package model

// The fixed classification vocabulary. Predictor responses outside this set
// are treated as failures.
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategoryHousing       = "Housing"
	CategoryUtilities     = "Utilities"
	CategoryHealth        = "Health"
	CategoryEducation     = "Education"
	CategoryIncome        = "Income"
	CategoryOther         = "Other"
)

// Categories lists the vocabulary in presentation order.
var Categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHousing,
	CategoryUtilities,
	CategoryHealth,
	CategoryEducation,
	CategoryIncome,
	CategoryOther,
}

// ValidCategory reports whether name is part of the fixed vocabulary.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Rule maps a keyword to a category. Keywords are stored lower-cased and
// matched as case-insensitive substrings of transaction descriptions.
type Rule struct {
	Keyword  string
	Category string
}
