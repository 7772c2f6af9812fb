package output

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"vfx-cost/core/types"
)

// FormatMoney rounds to whole units and adds thousands separators and the
// currency label, e.g. "12,345 MMK". Rounding is for display only.
func FormatMoney(amount decimal.Decimal, currency types.Currency) string {
	s := humanize.BigComma(amount.Round(0).BigInt())
	if currency == "" {
		return s
	}
	return s + " " + string(currency)
}

// FormatAmount formats an amount without a currency label
func FormatAmount(amount decimal.Decimal) string {
	return FormatMoney(amount, "")
}

// FormatSeconds formats a duration in seconds without trailing zeros, e.g. "2.75s"
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(types.Amount(seconds), 'f', -1, 64) + "s"
}
