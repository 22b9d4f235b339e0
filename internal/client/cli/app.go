package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/pagescout/internal/client/api"
	"github.com/dmitrijs2005/pagescout/internal/client/config"
	"github.com/dmitrijs2005/pagescout/internal/filex"
)

// ErrNotLoggedIn is returned by commands that need a token when none is stored.
var ErrNotLoggedIn = errors.New("not logged in, run 'login' first")

// ErrUsage is returned for unknown commands or missing arguments.
var ErrUsage = errors.New("usage")

type App struct {
	config *config.Config
	api    *api.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerURL, c.Timeout),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run executes a single command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]

	var err error
	switch cmd {
	case "help", "-h", "--help":
		a.usage()
		return nil
	case "signup", "register":
		err = a.Signup(ctx, rest)
	case "login":
		err = a.Login(ctx, rest)
	case "logout":
		err = a.Logout()
	case "analyze":
		err = a.Analyze(ctx, rest)
	case "agents":
		err = a.ListAgents(ctx)
	case "add-agent":
		err = a.AddAgent(ctx)
	case "upload-image":
		err = a.UploadImage(ctx, rest)
	case "products":
		err = a.ListProducts(ctx)
	case "add-product":
		err = a.AddProduct(ctx)
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		a.usage()
		return ErrUsage
	}

	if api.IsUnauthorized(err) && cmd != "login" {
		return fmt.Errorf("%w (run 'login' again)", err)
	}
	return err
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Usage: pagescout-cli [-s server] [-t tokenfile] <command> [args]")
	fmt.Fprintln(a.out, "Commands: signup, login, logout, analyze <url>, agents, add-agent, upload-image <file>, products, add-product")
}

func (a *App) token() (string, error) {
	tok, err := filex.ReadTrimmed(a.config.TokenFile)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && tok == "") {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return tok, nil
}

func (a *App) saveToken(tok string) error {
	return filex.WriteSecret(a.config.TokenFile, []byte(tok+"\n"))
}

func (a *App) removeToken() error {
	err := os.Remove(a.config.TokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
