package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"moneymgr/internal/entity"

	"github.com/google/subcommands"
)

type listCmd struct {
	app  *App
	date string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions, newest first" }
func (*listCmd) Usage() string {
	return `moneyctl list [-d <date>]

  Refreshes the view from the ledger and prints it. Transactions kept only
  locally are marked with a *.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Only show transactions on this date (YYYY-MM-DD).")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var day entity.Date
	if c.date != "" {
		d, err := entity.ParseDate(c.date)
		if err != nil {
			return c.app.fail(fmt.Errorf("invalid date %q: %w", c.date, err))
		}
		day = d
	}

	var txns []entity.Transaction
	for _, t := range c.app.Session.Refresh(ctx) {
		if day.IsZero() || t.Date == day {
			txns = append(txns, t)
		}
	}

	c.app.printTransactions(txns)
	return subcommands.ExitSuccess
}

type draftFlags struct {
	typ         string
	amount      string
	date        string
	description string
}

func (d *draftFlags) set(f *flag.FlagSet, defaultDate string) {
	f.StringVar(&d.typ, "t", "", "Transaction type, INCOME or EXPENSE.")
	f.StringVar(&d.amount, "a", "", "Amount, e.g. 12.30 or 1,200.")
	f.StringVar(&d.date, "d", defaultDate, "Date (YYYY-MM-DD).")
	f.StringVar(&d.description, "m", "", "Description.")
}

func (d *draftFlags) draft() entity.Draft {
	return entity.Draft{
		Description: d.description,
		Amount:      d.amount,
		Type:        d.typ,
		Date:        d.date,
	}
}

type addCmd struct {
	app *App
	draftFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new transaction" }
func (*addCmd) Usage() string {
	return `moneyctl add -t <INCOME|EXPENSE> -a <amount> [-d <date>] -m <description>

  Records a transaction in the ledger. When the ledger cannot be reached the
  transaction is kept locally and pushed by a later sync.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.set(f, time.Now().Format(entity.DateFormat))
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.app.Session.Refresh(ctx)

	n, err := c.app.Session.Create(ctx, c.draft())
	if err != nil {
		return c.app.fail(err)
	}

	c.app.notice(n, "Transaction added.")
	return subcommands.ExitSuccess
}

type editCmd struct {
	app *App
	draftFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change an existing transaction" }
func (*editCmd) Usage() string {
	return `moneyctl edit [-t <type>] [-a <amount>] [-d <date>] [-m <description>] <id>

  Replaces the fields of a transaction. Fields left out keep their current value.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.set(f, "")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(c.app.Err, c.Usage())
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	c.app.Session.Refresh(ctx)

	current, ok := c.app.Session.Find(id)
	if !ok {
		return c.app.fail(fmt.Errorf("transaction %s: %w", id, entity.NotInViewErr))
	}

	draft := c.draft()
	if draft.Type == "" {
		draft.Type = string(current.Type)
	}
	if draft.Amount == "" {
		draft.Amount = current.Amount.StringFixed(2)
	}
	if draft.Date == "" {
		draft.Date = current.Date.String()
	}
	if draft.Description == "" {
		draft.Description = current.Description
	}

	n, err := c.app.Session.Update(ctx, id, draft)
	if err != nil {
		return c.app.fail(err)
	}

	c.app.notice(n, "Transaction updated.")
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	app *App
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a transaction" }
func (*deleteCmd) Usage() string {
	return `moneyctl delete <id>
`
}

func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(c.app.Err, c.Usage())
		return subcommands.ExitUsageError
	}

	c.app.Session.Refresh(ctx)
	c.app.notice(c.app.Session.Delete(ctx, f.Arg(0)), "Transaction deleted.")
	return subcommands.ExitSuccess
}

type syncCmd struct {
	app *App
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "push locally kept transactions to the ledger" }
func (*syncCmd) Usage() string {
	return `moneyctl sync

  Pushes transactions saved while the ledger was unreachable, oldest first,
  then refreshes the view.
`
}

func (*syncCmd) SetFlags(*flag.FlagSet) {}

func (c *syncCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.app.Session.Refresh(ctx)
	result := c.app.Session.Push(ctx)
	txns := c.app.Session.Refresh(ctx)

	fmt.Fprintf(c.app.Out, "Pushed %d, kept %d offline. %d transactions in view.\n",
		len(result.Pushed), len(result.Kept), len(txns))
	if len(result.Dropped) > 0 {
		fmt.Fprintf(c.app.Err, "Dropped %d edits of transactions deleted from the ledger.\n", len(result.Dropped))
	}
	if len(result.Kept) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
