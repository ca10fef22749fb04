package models

import "github.com/shopspring/decimal"

// PricePlaces is the number of decimal places a stored product price keeps.
const PricePlaces = 2

// RoundPrice rounds half away from zero to PricePlaces, so 99.999 becomes 100.
func RoundPrice(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(PricePlaces).Float64()
	return f
}
