package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Type string

const (
	Income  Type = "INCOME"
	Expense Type = "EXPENSE"
)

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case Income, Expense:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

func (t Type) Valid() bool {
	return t == Income || t == Expense
}

// Fields is everything a transaction carries besides its identity. It is the
// body sent to the remote ledger on create and update.
type Fields struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        Type            `json:"type"`
	Date        Date            `json:"date"`
}

type Transaction struct {
	ID string `json:"id"`
	Fields
}

func (t Transaction) Pending() bool {
	return IsPending(t.ID)
}

// Validate checks already typed fields, e.g. ones decoded from a request body.
func (f Fields) Validate() error {
	if strings.TrimSpace(f.Description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if err := checkAmount(f.Amount); err != nil {
		return err
	}
	if !f.Type.Valid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("must be %s or %s", Income, Expense)}
	}
	if f.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	return nil
}

// Balance is total income minus total expense.
func Balance(txns []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range txns {
		if t.Type == Income {
			balance = balance.Add(t.Amount)
		} else {
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}
