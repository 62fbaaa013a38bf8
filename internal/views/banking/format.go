package banking

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders d as US dollars, e.g. $1,234.56 or -$5.00. The printer only
// groups the whole dollars; cents come straight from the decimal.
func FormatCurrency(d decimal.Decimal) string {
	rounded := d.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Shift(2).IntPart()
	return currencyPrinter.Sprintf("%s$%d", sign, whole.IntPart()) + fmt.Sprintf(".%02d", cents)
}

// FormatCardNumber groups a card number in blocks of four.
func FormatCardNumber(number string) string {
	var groups []string
	for len(number) > 4 {
		groups = append(groups, number[:4])
		number = number[4:]
	}
	if number != "" {
		groups = append(groups, number)
	}
	return strings.Join(groups, " ")
}
