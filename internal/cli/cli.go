// Package cli implements wavectl, a terminal client that shares the console's
// token store and session handling.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/jrsteele09/wave-console/estimates"
	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/paging"
	"github.com/jrsteele09/wave-console/session"
	"github.com/jrsteele09/wave-console/users"
)

const usage = `usage: wavectl <command>

commands:
  login              sign in and remember the session
  register           create an account and sign in
  logout             sign out and forget the session
  whoami             show the signed-in user
  estimates [page]   list estimates`

// EstimateLister is the backend call used by the estimates command.
type EstimateLister interface {
	ListEstimates(ctx context.Context, p paging.Params) (*estimates.Page, error)
}

type CLI struct {
	session      *session.Controller
	api          EstimateLister
	reader       *bufio.Reader
	out          io.Writer
	readPassword PasswordReader
	pageSize     int
}

type Option func(*CLI)

// WithPasswordReader replaces the terminal password prompt.
func WithPasswordReader(fn PasswordReader) Option {
	return func(c *CLI) {
		c.readPassword = fn
	}
}

func WithPageSize(n int) Option {
	return func(c *CLI) {
		c.pageSize = n
	}
}

func New(ctrl *session.Controller, api EstimateLister, in io.Reader, out io.Writer, opts ...Option) *CLI {
	reader := bufio.NewReader(in)
	c := &CLI{
		session:      ctrl,
		api:          api,
		reader:       reader,
		out:          out,
		readPassword: terminalPassword(reader),
		pageSize:     paging.DefaultPerPage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes one command.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(c.out, usage)
		return errors.New("no command given")
	}

	switch args[0] {
	case "login":
		return c.login(ctx)
	case "register":
		return c.register(ctx)
	case "logout":
		return c.logout(ctx)
	case "whoami":
		return c.whoami(ctx)
	case "estimates":
		return c.estimates(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(c.out, usage)
		return nil
	default:
		fmt.Fprintln(c.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (c *CLI) login(ctx context.Context) error {
	email, err := prompt(c.reader, c.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(c.out, "Password", c.readPassword)
	if err != nil {
		return err
	}

	creds := users.Credentials{Email: email, Password: password}
	if err := users.ValidateCredentials(creds); err != nil {
		return err
	}

	path, err := c.session.Login(ctx, creds)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Signed in as %s\n-> %s\n", email, path)
	return nil
}

func (c *CLI) register(ctx context.Context) error {
	email, err := prompt(c.reader, c.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(c.out, "Password", c.readPassword)
	if err != nil {
		return err
	}
	confirm, err := promptPassword(c.out, "Confirm password", c.readPassword)
	if err != nil {
		return err
	}

	reg := users.Registration{Email: email, Password: password, ConfirmPassword: confirm}
	if err := users.ValidateRegistration(reg); err != nil {
		return err
	}

	path, err := c.session.Register(ctx, reg.Credentials())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Account created for %s\n-> %s\n", email, path)
	return nil
}

func (c *CLI) logout(ctx context.Context) error {
	path := c.session.Logout(ctx)
	fmt.Fprintf(c.out, "Signed out\n-> %s\n", path)
	return nil
}

// signedIn resolves the stored session and returns the user.
func (c *CLI) signedIn(ctx context.Context) (*users.User, error) {
	state := c.session.Resolve(ctx)
	if state.User == nil {
		return nil, errors.Wrapf(errors.ErrNotAuthenticated, "run 'wavectl login' first")
	}
	return state.User, nil
}

func (c *CLI) whoami(ctx context.Context) error {
	user, err := c.signedIn(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s (id %d)\n", user.Email, user.ID)
	return nil
}

func (c *CLI) estimates(ctx context.Context, args []string) error {
	if _, err := c.signedIn(ctx); err != nil {
		return err
	}

	params := paging.Params{Page: 1, PerPage: c.pageSize}
	if len(args) > 0 {
		page, err := strconv.Atoi(args[0])
		if err != nil || page < 1 {
			return fmt.Errorf("invalid page %q", args[0])
		}
		params.Page = page
	}

	page, err := c.api.ListEstimates(ctx, params.Normalize())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tCUSTOMER\tISSUED\tTOTAL")
	for _, e := range page.Estimates {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.EstimateNumber, e.Customer.Name, e.IssueDate, estimates.FormatAmount(e.Total))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "page %d of %d (%d total)\n", page.Page, page.TotalPages, page.Total)
	return nil
}
