package telegram

import (
	"errors"
	"strings"

	"moneymgr/internal/entity"
)

var errUsage = errors.New("usage: <INCOME|EXPENSE> <amount> <YYYY-MM-DD> <description>")

// draftParser reads "<type> <amount> <date> <description...>".
func draftParser(args string) (entity.Draft, error) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 4)
	if len(parts) != 4 {
		return entity.Draft{}, errUsage
	}

	return entity.Draft{
		Type:        parts[0],
		Amount:      parts[1],
		Date:        parts[2],
		Description: parts[3],
	}, nil
}

// editParser reads "<id> <type> <amount> <date> <description...>".
func editParser(args string) (string, entity.Draft, error) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", entity.Draft{}, errors.New("usage: <id> <INCOME|EXPENSE> <amount> <YYYY-MM-DD> <description>")
	}

	draft, err := draftParser(parts[1])
	if err != nil {
		return "", entity.Draft{}, err
	}
	return parts[0], draft, nil
}

func idParser(args string) (string, error) {
	id := strings.TrimSpace(args)
	if id == "" || strings.Contains(id, " ") {
		return "", errors.New("usage: <id>")
	}
	return id, nil
}

// dateParser returns the zero date for empty args.
func dateParser(args string) (entity.Date, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return entity.Date{}, nil
	}
	return entity.ParseDate(args)
}

// loginParser reads "<email> <name...>".
func loginParser(args string) (email, name string, err error) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) != 2 {
		return "", "", errors.New("usage: <email> <name>")
	}
	return parts[0], parts[1], nil
}
