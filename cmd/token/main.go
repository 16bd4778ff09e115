// Command token mints bearer tokens for the actor vote API.
//
// The API verifies tokens but never issues them; an operator runs this with
// the same AUTH_SECRET the server uses:
//
//	AUTH_SECRET=... token --subject alice --admin --ttl 24h
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pkordes/actorvote/internal/auth"
)

func main() {
	app := &cli.App{
		Name:  "token",
		Usage: "mint a signed bearer token for the actor vote API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "secret",
				Usage:    "HMAC signing secret",
				EnvVars:  []string{"AUTH_SECRET"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "issuer",
				Usage:   "token issuer, must match the server's AUTH_ISSUER",
				EnvVars: []string{"AUTH_ISSUER"},
				Value:   "actorvote",
			},
			&cli.StringFlag{
				Name:     "subject",
				Aliases:  []string{"s"},
				Usage:    "user the token is issued to",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "admin",
				Usage: "grant the admin role (create and delete actors)",
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "how long the token stays valid",
				Value: 24 * time.Hour,
			},
		},
		Action: mint,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(1)
	}
}

func mint(c *cli.Context) error {
	if c.Duration("ttl") <= 0 {
		return cli.Exit("ttl must be positive", 2)
	}

	role := auth.Authenticated
	if c.Bool("admin") {
		role = auth.Admin
	}

	tokens := auth.NewTokenService([]byte(c.String("secret")), c.String("issuer"))
	raw, err := tokens.Issue(c.String("subject"), role, c.Duration("ttl"))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.App.Writer, raw)
	return err
}
