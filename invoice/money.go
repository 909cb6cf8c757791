package invoice

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is used when an invoice names none.
const DefaultCurrency = "INR"

var printer = message.NewPrinter(language.English)

// FormatAmount renders v with two decimals and thousands grouping, prefixed by
// the currency code: FormatAmount("INR", 1062) == "INR 1,062.00". Negative
// values carry the sign before the code.
func FormatAmount(currency string, v float64) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	sign := ""
	if v < 0 && math.Abs(v) >= 0.005 {
		sign = "-"
	}
	return sign + currency + " " + printer.Sprintf("%.2f", math.Abs(v))
}

// FormatRate renders a percentage without trailing zeros: 18 -> "18", 12.5 -> "12.5".
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
