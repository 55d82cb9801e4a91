package entity

import "strings"

// Draft is raw user input for a transaction, as typed into a form or a command.
type Draft struct {
	Description string
	Amount      string
	Type        string
	Date        string
}

func (d Draft) Validate() (Fields, error) {
	description := strings.TrimSpace(d.Description)
	if description == "" {
		return Fields{}, &ValidationError{Field: "description", Reason: "must not be empty"}
	}

	amount, err := ParseAmount(d.Amount)
	if err != nil {
		return Fields{}, err
	}

	t, err := ParseType(d.Type)
	if err != nil {
		return Fields{}, &ValidationError{Field: "type", Reason: err.Error()}
	}

	date, err := ParseDate(strings.TrimSpace(d.Date))
	if err != nil {
		return Fields{}, &ValidationError{Field: "date", Reason: "must be in YYYY-MM-DD format"}
	}

	return Fields{
		Description: description,
		Amount:      amount,
		Type:        t,
		Date:        date,
	}, nil
}
