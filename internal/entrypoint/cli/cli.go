package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"moneymgr/internal/entity"
	"moneymgr/internal/usecase"

	"github.com/google/subcommands"
)

// App is what every moneyctl subcommand runs against.
type App struct {
	Session     *usecase.Session
	Login       *usecase.Login
	Logout      *usecase.Logout
	CurrentUser *usecase.CurrentUser

	Out io.Writer
	Err io.Writer
}

// Register the subcommands.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&listCmd{app: app}, "transactions")
	c.Register(&addCmd{app: app}, "transactions")
	c.Register(&editCmd{app: app}, "transactions")
	c.Register(&deleteCmd{app: app}, "transactions")
	c.Register(&syncCmd{app: app}, "transactions")

	c.Register(&loginCmd{app: app}, "identity")
	c.Register(&logoutCmd{app: app}, "identity")
	c.Register(&whoamiCmd{app: app}, "identity")
}

func (a *App) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(a.Err, err)
	return subcommands.ExitFailure
}

func (a *App) notice(n *entity.Notice, done string) {
	if n != nil {
		fmt.Fprintln(a.Err, n.Message())
		return
	}
	fmt.Fprintln(a.Out, done)
}

func (a *App) printTransactions(txns []entity.Transaction) {
	if len(txns) == 0 {
		fmt.Fprintln(a.Out, "No transactions.")
		return
	}

	w := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tDESCRIPTION")
	for _, t := range txns {
		id := t.ID
		if t.Pending() {
			id += "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", id, t.Date, t.Type, t.Amount.StringFixed(2), t.Description)
	}
	w.Flush()
}
