package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type loginCmd struct {
	app   *App
	name  string
	email string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "remember who is using this cache" }
func (*loginCmd) Usage() string {
	return `moneyctl login -n <name> -e <email>
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Display name.")
	f.StringVar(&c.email, "e", "", "Email address.")
}

func (c *loginCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	u, err := c.app.Login.Execute(c.name, c.email)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.Out, "Logged in as %s <%s>\n", u.Name, u.Email)
	return subcommands.ExitSuccess
}

type logoutCmd struct {
	app *App
}

func (*logoutCmd) Name() string           { return "logout" }
func (*logoutCmd) Synopsis() string       { return "forget the logged in user" }
func (*logoutCmd) Usage() string          { return "moneyctl logout\n" }
func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (c *logoutCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.app.Logout.Execute(); err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintln(c.app.Out, "Logged out.")
	return subcommands.ExitSuccess
}

type whoamiCmd struct {
	app *App
}

func (*whoamiCmd) Name() string           { return "whoami" }
func (*whoamiCmd) Synopsis() string       { return "print the logged in user" }
func (*whoamiCmd) Usage() string          { return "moneyctl whoami\n" }
func (*whoamiCmd) SetFlags(*flag.FlagSet) {}

func (c *whoamiCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	u, ok, err := c.app.CurrentUser.Execute()
	if err != nil {
		return c.app.fail(err)
	}
	if !ok {
		fmt.Fprintln(c.app.Out, "Not logged in.")
		return subcommands.ExitFailure
	}
	fmt.Fprintf(c.app.Out, "%s <%s>\n", u.Name, u.Email)
	return subcommands.ExitSuccess
}
