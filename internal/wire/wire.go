// Package wire is the JSON shape of transactions exchanged with the ledger
// service. Amounts travel as JSON numbers with two decimals and ids may be
// numbers or strings.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"moneymgr/internal/entity"

	"github.com/shopspring/decimal"
)

// Body is a transaction without identity, as sent on create and update.
type Body struct {
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
	Date        string      `json:"date"`
}

// Transaction is a ledger response object.
type Transaction struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Description *string         `json:"description"`
	Amount      *json.Number    `json:"amount"`
	Type        *string         `json:"type"`
	Date        *string         `json:"date"`
}

func NewBody(f entity.Fields) Body {
	return Body{
		Description: f.Description,
		Amount:      json.Number(f.Amount.StringFixed(2)),
		Type:        string(f.Type),
		Date:        f.Date.String(),
	}
}

func FromEntity(t entity.Transaction) Transaction {
	id, _ := json.Marshal(t.ID)
	b := NewBody(t.Fields)
	return Transaction{
		ID:          id,
		Description: &b.Description,
		Amount:      &b.Amount,
		Type:        &b.Type,
		Date:        &b.Date,
	}
}

// Fields decodes a request body. Errors are validation errors.
func (b Body) Fields() (entity.Fields, error) {
	return entity.Draft{
		Description: b.Description,
		Amount:      b.Amount.String(),
		Type:        b.Type,
		Date:        b.Date,
	}.Validate()
}

// Entity converts a response object, failing with entity.DeserializationErr
// when a field is missing, malformed or breaks the transaction rules.
func (t Transaction) Entity() (entity.Transaction, error) {
	id, err := decodeID(t.ID)
	if err != nil {
		return entity.Transaction{}, malformed("id", err)
	}

	if t.Description == nil {
		return entity.Transaction{}, malformed("description", errMissing)
	}
	if t.Amount == nil {
		return entity.Transaction{}, malformed("amount", errMissing)
	}
	if t.Type == nil {
		return entity.Transaction{}, malformed("type", errMissing)
	}
	if t.Date == nil {
		return entity.Transaction{}, malformed("date", errMissing)
	}

	amount, err := decimal.NewFromString(t.Amount.String())
	if err != nil {
		return entity.Transaction{}, malformed("amount", err)
	}
	typ := entity.Type(*t.Type)
	if !typ.Valid() {
		return entity.Transaction{}, malformed("type", fmt.Errorf("unknown type %q", *t.Type))
	}
	date, err := entity.ParseDate(*t.Date)
	if err != nil {
		return entity.Transaction{}, malformed("date", err)
	}

	fields := entity.Fields{
		Description: *t.Description,
		Amount:      amount,
		Type:        typ,
		Date:        date,
	}
	if err := fields.Validate(); err != nil {
		var v *entity.ValidationError
		if errors.As(err, &v) {
			return entity.Transaction{}, malformed(v.Field, err)
		}
		return entity.Transaction{}, malformed("fields", err)
	}

	return entity.Transaction{ID: id, Fields: fields}, nil
}

var errMissing = errors.New("missing")

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errMissing
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		if s == "" {
			return "", errMissing
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return "", fmt.Errorf("id %s is not an integer", n)
	}
	return n.String(), nil
}

func malformed(field string, err error) error {
	return fmt.Errorf("%w: field %s: %v", entity.DeserializationErr, field, err)
}
