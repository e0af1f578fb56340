package dto

import "github.com/shopspring/decimal"

// Money renders an amount rounded half away from zero to two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
