// Package money holds the fixed two-fraction-digit monetary convention shared by carts,
// orders and their responses.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const Places = 2

// Round rounds half to even at two fraction digits.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Places)
}

// LineTotal is quantity × unitPrice rounded to two places.
func LineTotal(quantity int32, unitPrice decimal.Decimal) decimal.Decimal {
	return Round(unitPrice.Mul(decimal.NewFromInt32(quantity)))
}

// Sum adds already rounded amounts and rounds the result once.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return Round(total)
}

// Amount is a decimal that always serializes as a JSON string with two fraction digits.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: Round(d)}
}

func (a Amount) String() string {
	return a.Decimal.StringFixedBank(Places)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("failed parsing amount=%s with error=%w", raw, err)
	}
	a.Decimal = Round(d)
	return nil
}
