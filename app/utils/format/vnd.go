package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var vnd = accounting.Accounting{
	Symbol:    "₫",
	Precision: 0,
	Thousand:  ".",
	Decimal:   ",",
	Format:    "%v %s",
}

// VND formats amounts the way the storefront prints prices, e.g. "150.000 ₫".
func VND(amount interface{}) string {
	switch v := amount.(type) {
	case decimal.Decimal:
		return vnd.FormatMoneyDecimal(v)
	case *decimal.Decimal:
		if v == nil {
			return vnd.FormatMoney(0)
		}
		return vnd.FormatMoneyDecimal(*v)
	case float64:
		return vnd.FormatMoney(v)
	case int:
		return vnd.FormatMoney(v)
	case int64:
		return vnd.FormatMoney(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return vnd.FormatMoney(0)
		}
		return vnd.FormatMoneyDecimal(parsed)
	default:
		return vnd.FormatMoney(0)
	}
}

func Percent(p decimal.Decimal) string {
	return p.Round(0).String() + "%"
}
