package utils

import (
	"fmt"
	"math"
)

// RoundMoney rounds to 2 decimal places. Fare math keeps full precision and
// only presentation-facing values go through here.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatUSD renders an amount with a dollar sign for documents.
func FormatUSD(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}
