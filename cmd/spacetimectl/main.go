// Command spacetimectl talks to a SpacetimeDB instance over its HTTP API.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dracory/env"
	"github.com/dracory/spacebase/shared/logging"
	"github.com/dracory/spacebase/shared/render"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/spf13/cobra"
)

type cmdGlobal struct {
	out io.Writer
	log *slog.Logger

	flagURL      string
	flagHost     string
	flagPort     int
	flagDatabase string
	flagToken    string
	flagFormat   string
	flagTimeout  time.Duration
	flagLogLevel string
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	env.Load(".env")

	global := &cmdGlobal{out: out}

	app := &cobra.Command{}
	app.Use = "spacetimectl"
	app.Short = "Command line client for SpacetimeDB instances"
	app.Long = `Command line client for SpacetimeDB instances

Connection settings come from flags, falling back to the SPACETIME_URL,
SPACETIME_HOST, SPACETIME_PORT, SPACETIME_DATABASE and SPACETIME_TOKEN
environment variables.`
	app.SilenceUsage = true
	app.SetOut(out)
	app.SetErr(errOut)

	app.PersistentFlags().StringVar(&global.flagURL, "url", env.GetStringOrDefault("SPACETIME_URL", ""), "Instance URL, e.g. https://stdb.example.com")
	app.PersistentFlags().StringVar(&global.flagHost, "host", env.GetStringOrDefault("SPACETIME_HOST", ""), "Instance host, used with --port")
	app.PersistentFlags().IntVar(&global.flagPort, "port", env.GetIntOrDefault("SPACETIME_PORT", 0), "Instance port, used with --host")
	app.PersistentFlags().StringVarP(&global.flagDatabase, "database", "d", env.GetStringOrDefault("SPACETIME_DATABASE", ""), "Database name or identity")
	app.PersistentFlags().StringVar(&global.flagToken, "token", env.GetStringOrDefault("SPACETIME_TOKEN", ""), "Bearer token")
	app.PersistentFlags().StringVarP(&global.flagFormat, "format", "f", render.FormatTable, "Output format (table, compact, csv, json, yaml)")
	app.PersistentFlags().DurationVar(&global.flagTimeout, "timeout", 30*time.Second, "Request timeout")
	app.PersistentFlags().StringVar(&global.flagLogLevel, "log-level", env.GetStringOrDefault("LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")

	app.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		global.log = logging.New(logging.Options{Level: global.flagLogLevel, Format: "console", Out: errOut})
		return render.ValidateFormat(global.flagFormat)
	}

	pingCmd := cmdPing{global: global}
	app.AddCommand(pingCmd.Command())

	tablesCmd := cmdTables{global: global}
	app.AddCommand(tablesCmd.Command())

	queryCmd := cmdQuery{global: global}
	app.AddCommand(queryCmd.Command())

	browseCmd := cmdBrowse{global: global}
	app.AddCommand(browseCmd.Command())

	insertCmd := cmdInsert{global: global}
	app.AddCommand(insertCmd.Command())

	updateCmd := cmdUpdate{global: global}
	app.AddCommand(updateCmd.Command())

	deleteCmd := cmdDelete{global: global}
	app.AddCommand(deleteCmd.Command())

	databasesCmd := cmdDatabases{global: global}
	app.AddCommand(databasesCmd.Command())

	publishCmd := cmdPublish{global: global}
	app.AddCommand(publishCmd.Command())

	return app
}

// config returns the client config built from the global flags.
func (g *cmdGlobal) config() stdb.Config {
	return stdb.Config{
		URL:      g.flagURL,
		Host:     g.flagHost,
		Port:     g.flagPort,
		Database: g.flagDatabase,
		Token:    g.flagToken,
	}
}

func (g *cmdGlobal) client() (*stdb.Client, error) {
	return stdb.New(g.config(),
		stdb.WithTimeout(g.flagTimeout),
		stdb.WithLogger(g.log),
		stdb.WithUserAgent("spacetimectl"),
	)
}

func (g *cmdGlobal) context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// checkArgs validates the number of arguments for a command.
func checkArgs(cmd *cobra.Command, args []string, minArgs int, maxArgs int) (bool, error) {
	if len(args) < minArgs || (maxArgs != -1 && len(args) > maxArgs) {
		_ = cmd.Help()

		if len(args) == 0 {
			return true, nil
		}

		return true, fmt.Errorf("invalid number of arguments")
	}

	return false, nil
}

// result turns a failed QueryResult into an error.
func result(res *stdb.QueryResult) error {
	if res == nil {
		return fmt.Errorf("no result")
	}
	if !res.Success {
		return fmt.Errorf("%s", res.Error)
	}
	return nil
}
