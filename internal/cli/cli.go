// Package cli implements the railmap command-line interface.
//
// The CLI loads the same input files as the server and answers from them
// directly, without starting an HTTP listener.
//
// # Commands
//
//   - routes: print the ranked routes as a table
//   - elements: print the render elements as JSON
//   - render: export the map as Graphviz DOT or SVG
//   - hover: format the tooltip for a node or edge payload
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// carried in the command context.
package cli

import (
	"context"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jusunglee/railmap-go/internal/config"
	"github.com/jusunglee/railmap-go/internal/loader"
	"github.com/jusunglee/railmap-go/internal/logging"
	"github.com/jusunglee/railmap-go/pkg/railmap"
)

const appName = "railmap"

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configPath   string
	transactions string
	coords       string
	labels       string
	verbose      bool
}

// Execute runs the railmap CLI with the process arguments
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          appName,
		Short:        "railmap ranks railway routes and draws the route map",
		Long:         `railmap aggregates ticket transactions into station-to-station routes, ranks them by tickets sold and exports the station map for the top routes.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			zlevel := "warn"
			if opts.verbose {
				level = charmlog.DebugLevel
				zlevel = "debug"
			}
			logging.Init(logging.Config{Level: zlevel, Format: "console", Output: stderr})
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (YAML or TOML)")
	pf.StringVar(&opts.transactions, "transactions", "", "transactions CSV path or URL")
	pf.StringVar(&opts.coords, "coords", "", "station coordinates JSON path or URL")
	pf.StringVar(&opts.labels, "labels", "", "station labels JSON path or URL")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRoutesCmd(opts))
	root.AddCommand(newElementsCmd(opts))
	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newHoverCmd())

	return root
}

// loadClient reads the configuration, applies flag overrides and loads the
// input files.
func loadClient(ctx context.Context, opts *globalOptions) (*railmap.LocalClient, error) {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.transactions != "" {
		cfg.Data.Transactions = opts.transactions
	}
	if opts.coords != "" {
		cfg.Data.Coordinates = opts.coords
	}
	if opts.labels != "" {
		cfg.Data.Labels = opts.labels
	}

	logger.Debug("Loading data",
		"transactions", cfg.Data.Transactions,
		"coordinates", cfg.Data.Coordinates,
		"labels", cfg.Data.Labels)

	prog := newProgress(logger)
	client, err := railmap.NewLocal(ctx, railmap.Config{
		TransactionsFile: cfg.Data.Transactions,
		CoordinatesFile:  cfg.Data.Coordinates,
		LabelsFile:       cfg.Data.Labels,
		Columns: loader.Columns{
			Departure: cfg.Data.DepartureColumn,
			Arrival:   cfg.Data.ArrivalColumn,
			ID:        cfg.Data.IDColumn,
		},
		FetchTimeout: cfg.Data.FetchTimeout,
		CacheSize:    cfg.Cache.Size,
	})
	if err != nil {
		return nil, err
	}

	s := client.Summary()
	prog.done(fmtLoaded(s))
	return client, nil
}
