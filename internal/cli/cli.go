// Package cli implements the interactive menus over an app.Session. Every
// menu action maps to one service call; typing the cancel word at any prompt
// abandons the action before a transaction is opened.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/angelmondragon/bikewish/internal/app"
	"github.com/angelmondragon/bikewish/internal/catalog"
	"github.com/angelmondragon/bikewish/internal/items"
	"github.com/angelmondragon/bikewish/internal/wishlists"
	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
	"github.com/angelmondragon/bikewish/pkg/logger"
	"github.com/angelmondragon/bikewish/pkg/validators"
)

// errQuit ends the menu loop when input is exhausted.
var errQuit = errors.New("quit")

// Params groups the CLI dependencies.
type Params struct {
	Session    *app.Session
	Prompter   Prompter
	Out        io.Writer
	CancelWord string
	Logger     *logger.Logger
}

type CLI struct {
	catalog    catalog.Service
	wishlists  wishlists.Service
	items      items.Service
	in         Prompter
	out        io.Writer
	cancelWord string
	logg       *logger.Logger
}

// New builds the menu driver.
func New(params Params) (*CLI, error) {
	if params.Session == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session is required")
	}
	if params.Prompter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prompter is required")
	}
	out := params.Out
	if out == nil {
		out = io.Discard
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.New(logger.Options{ServiceName: "cli", Output: io.Discard})
	}
	cancelWord := params.CancelWord
	if cancelWord == "" {
		cancelWord = validators.DefaultCancelWord
	}
	return &CLI{
		catalog:    params.Session.Catalog,
		wishlists:  params.Session.Wishlists,
		items:      params.Session.Items,
		in:         params.Prompter,
		out:        out,
		cancelWord: cancelWord,
		logg:       logg,
	}, nil
}

// Run drives the main menu until the user exits or input ends.
func (c *CLI) Run(ctx context.Context) error {
	fmt.Fprintf(c.out, "Welcome to bikewish. Type %q at any prompt to cancel.\n", c.cancelWord)
	for {
		c.printMenu("Main menu", []string{
			"View all wishlists",
			"Add a wishlist",
			"Rename a wishlist",
			"Remove a wishlist",
			"View a wishlist",
			"Browse products",
			"Exit",
		})

		choice, err := c.ask("Choose an option: ")
		if err != nil {
			return c.quitOn(err)
		}

		switch choice {
		case "1":
			err = c.viewWishlists(ctx)
		case "2":
			err = c.addWishlist(ctx)
		case "3":
			err = c.renameWishlist(ctx)
		case "4":
			err = c.removeWishlist(ctx)
		case "5":
			err = c.viewWishlist(ctx)
		case "6":
			err = c.browseProducts(ctx)
		case "7":
			fmt.Fprintln(c.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice.")
		}

		if errors.Is(err, errQuit) {
			return nil
		}
		c.report(ctx, err)
	}
}

// quitOn maps a failed main-menu prompt to the loop result. The cancel word
// and end of input both leave the program normally.
func (c *CLI) quitOn(err error) error {
	if errors.Is(err, errQuit) || pkgerrors.Is(err, pkgerrors.CodeCancelled) {
		fmt.Fprintln(c.out, "Goodbye.")
		return nil
	}
	return err
}

func (c *CLI) ask(prompt string) (string, error) {
	line, err := c.in.ReadLine(prompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errQuit
		}
		return "", err
	}
	if validators.IsCancel(line, c.cancelWord) {
		return "", pkgerrors.Cancelled()
	}
	return strings.TrimSpace(line), nil
}

func (c *CLI) askID(prompt, label string) (int64, error) {
	answer, err := c.ask(prompt)
	if err != nil {
		return 0, err
	}
	return validators.ParseID(answer, label)
}

func (c *CLI) askQuantity() (int, error) {
	answer, err := c.ask("Quantity: ")
	if err != nil {
		return 0, err
	}
	return validators.ParseQuantity(answer)
}

func (c *CLI) askYesNo(prompt string) (bool, error) {
	answer, err := c.ask(prompt)
	if err != nil {
		return false, err
	}
	return validators.ParseYesNo(answer)
}

// report prints the outcome of a failed action. Unexpected failures are
// logged as well, with the decoded error chain at debug level.
func (c *CLI) report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		c.logFailure(ctx, "unexpected cli failure", err)
		fmt.Fprintln(c.out, "Something went wrong, please try again.")
		return
	}

	switch typed.Code() {
	case pkgerrors.CodeCancelled:
		fmt.Fprintln(c.out, "Cancelled.")
	case pkgerrors.CodeConnection:
		c.logFailure(ctx, "database connection problem", err)
		fmt.Fprintf(c.out, "Database connection problem: %s. Please try again.\n", typed.Message())
	case pkgerrors.CodeInternal:
		c.logFailure(ctx, "internal failure", err)
		fmt.Fprintln(c.out, "Something went wrong, please try again.")
	default:
		fmt.Fprintf(c.out, "Error: %s.\n", typed.Message())
		if suggestions := wishlists.Suggestions(err); len(suggestions) > 0 {
			fmt.Fprintf(c.out, "Did you mean: %s?\n", strings.Join(suggestions, ", "))
		}
	}
}

func (c *CLI) logFailure(ctx context.Context, msg string, err error) {
	c.logg.Error(ctx, msg, err)
	c.logg.Debug(c.logg.WithField(ctx, "error_dump", pkgerrors.Dump(err)), "error details")
}

func (c *CLI) printMenu(title string, options []string) {
	fmt.Fprintf(c.out, "\n%s\n", title)
	for i, option := range options {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, option)
	}
}
