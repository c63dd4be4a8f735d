package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/five82/homepage/internal/app"
	"github.com/five82/homepage/internal/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	opts := app.Options{
		ConfigPath: cmd.String("config"),
		Tick:       cmd.Duration("tick"),
	}
	if err := app.Run(ctx, opts); err != nil {
		return fmt.Errorf("homepage: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "homepage",
		Usage:  "Personal homepage in the terminal: profile, social links and a click counter",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (TOML, or YAML for .yaml/.yml)",
				DefaultText: config.DefaultPath(),
				Value:       config.DefaultPath(),
				Sources:     cli.EnvVars("HOMEPAGE_CONFIG"),
			},
			&cli.DurationFlag{
				Name:  "tick",
				Usage: "UI refresh interval (defaults to 1s)",
			},
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
