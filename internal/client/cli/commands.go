package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dmitrijs2005/pagescout/internal/client/api"
	"github.com/dmitrijs2005/pagescout/internal/common"
	"github.com/dmitrijs2005/pagescout/internal/netx"
)

// credentials takes the username from args or asks for it, then asks for
// the password.
func (a *App) credentials(args []string) (string, []byte, error) {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		u, err := GetSimpleText(a.reader, "Username", a.out)
		if err != nil {
			return "", nil, err
		}
		username = u
	}

	pw, err := GetPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return username, pw, nil
}

func (a *App) Signup(ctx context.Context, args []string) error {
	username, pw, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	msg, err := a.api.Signup(ctx, username, string(pw))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	username, pw, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	tok, err := a.api.Login(ctx, username, string(pw))
	if err != nil {
		return err
	}
	if err := a.saveToken(tok); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", username)
	return nil
}

func (a *App) Logout() error {
	if err := a.removeToken(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Analyze(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: analyze <url>")
		return ErrUsage
	}
	tok, err := a.token()
	if err != nil {
		return err
	}

	raw, err := a.api.Analyze(ctx, tok, args[0])
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(raw)
	}
	fmt.Fprintln(a.out, pretty.String())
	return nil
}

func (a *App) ListAgents(ctx context.Context) error {
	tok, err := a.token()
	if err != nil {
		return err
	}
	agents, err := a.api.ListAgents(ctx, tok)
	if err != nil {
		return err
	}
	if len(agents) == 0 {
		fmt.Fprintln(a.out, "No agents")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tIMAGE")
	for _, ag := range agents {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", ag.ID, ag.AgentName, ag.ImageURL)
	}
	return tw.Flush()
}

func (a *App) AddAgent(ctx context.Context) error {
	tok, err := a.token()
	if err != nil {
		return err
	}

	name, err := GetSimpleText(a.reader, "Agent name", a.out)
	if err != nil {
		return err
	}
	prompt, err := GetMultiline(a.reader, "Prompt", a.out)
	if err != nil {
		return err
	}
	image, err := GetSimpleText(a.reader, "Image URL (empty for placeholder)", a.out)
	if err != nil {
		return err
	}

	if err := a.api.CreateAgent(ctx, tok, api.Agent{AgentName: name, Prompt: prompt, ImageURL: image}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Agent created")
	return nil
}

// UploadImage asks the server for a presigned URL and uploads the file to
// it. The printed key is what add-agent expects as the image URL.
func (a *App) UploadImage(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: upload-image <file>")
		return ErrUsage
	}
	tok, err := a.token()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	up, err := a.api.PresignAgentImage(ctx, tok)
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(args[0]))
	if err := netx.UploadToPresignedURL(ctx, a.api.HTTPClient(), up.Method, up.URL, contentType, f); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded, image key: %s\n", up.Key)
	return nil
}

func (a *App) ListProducts(ctx context.Context) error {
	tok, err := a.token()
	if err != nil {
		return err
	}
	products, err := a.api.ListProducts(ctx, tok)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tDESCRIPTION")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Price, p.Description)
	}
	return tw.Flush()
}

func (a *App) AddProduct(ctx context.Context) error {
	tok, err := a.token()
	if err != nil {
		return err
	}

	name, err := GetSimpleText(a.reader, "Product name", a.out)
	if err != nil {
		return err
	}
	price, err := GetSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	if err := a.api.CreateProduct(ctx, tok, name, price, description); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Product created")
	return nil
}
