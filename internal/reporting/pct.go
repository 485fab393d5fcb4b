package reporting

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PctChange formats the change from previous to current as a signed
// percentage with one decimal, e.g. "+10.0%" or "-25.5%". A zero previous
// value yields "+0%".
func PctChange(current, previous decimal.Decimal) string {
	if previous.IsZero() {
		return "+0%"
	}
	diff := current.Sub(previous)
	pct := diff.Div(previous).Mul(hundred).Abs().Round(1)

	sign := "+"
	if diff.IsNegative() {
		sign = "-"
	}
	return sign + pct.StringFixed(1) + "%"
}
