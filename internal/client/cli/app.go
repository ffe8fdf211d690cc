// Package cli implements the interactive command loop of the accounts CLI.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/accounts/internal/client/api"
	"github.com/dmitrijs2005/accounts/internal/client/config"
)

// App holds the CLI session state: the API client and, after a successful
// login, the bearer token for the session.
type App struct {
	config *config.Config
	api    *api.Client
	token  string
	login  string
	reader *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerBaseURL),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

// Register prompts for account details and creates the account.
func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Display name", os.Stdout)
	if err != nil {
		return err
	}
	login, err := GetSimpleText(a.reader, "Login", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.api.Register(ctx, name, login, password)
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s (id=%s)\n", user.Login, user.ID)
	return nil
}

// Login prompts for credentials and stores the session token.
func (a *App) Login(ctx context.Context) error {
	login, err := GetSimpleText(a.reader, "Login", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, login, password)
	if err != nil {
		return err
	}

	a.token = token
	a.login = login
	fmt.Println("Logged in")
	return nil
}

// WhoAmI validates the session token against the server.
func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.api.Validate(ctx, a.token)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s, id=%s)\n", user.Name, user.Login, user.ID)
	return nil
}

// List prints all accounts.
func (a *App) List(ctx context.Context) error {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Printf("%s\t%s\t%s\n", u.ID, u.Login, u.Name)
	}
	return nil
}

// Logout drops the session token.
func (a *App) Logout(ctx context.Context) error {
	a.token = ""
	a.login = ""
	fmt.Println("Logged out")
	return nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
