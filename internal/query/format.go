package query

import "strconv"

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}

func formatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}
