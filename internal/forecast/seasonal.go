package forecast

import "time"

// monthlyFactors models predictable overall spending swings by calendar
// month. Unlisted months use 1.0.
var monthlyFactors = map[time.Month]float64{
	time.January:   1.15,
	time.February:  0.95,
	time.July:      1.05,
	time.September: 1.05,
	time.November:  1.10,
	time.December:  1.20,
}

func seasonalFactor(m time.Month) float64 {
	if f, ok := monthlyFactors[m]; ok {
		return f
	}
	return 1.0
}
