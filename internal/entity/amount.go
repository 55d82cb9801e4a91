package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount accepts thousands separators ("1,250.50") and rejects negative
// values or anything finer than cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Decimal{}, &ValidationError{Field: "amount", Reason: "is required"}
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &ValidationError{Field: "amount", Reason: "is not a number"}
	}
	if err := checkAmount(amount); err != nil {
		return decimal.Decimal{}, err
	}
	return amount, nil
}

func checkAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if !amount.Round(2).Equal(amount) {
		return &ValidationError{Field: "amount", Reason: "must not have more than two decimal places"}
	}
	return nil
}
