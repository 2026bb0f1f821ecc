// Package currency formats amounts as Vietnamese đồng.
package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount with Vietnamese digit grouping and the
// đồng sign: 145000 → "145.000₫". VND has no minor unit, so the amount
// is rounded to a whole number.
func FormatVND(amount float64) string {
	return printer.Sprintf("%d₫", int64(math.Round(amount)))
}
