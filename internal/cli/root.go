// Package cli implements the sample-app command line client.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"sample-app/config"
	"sample-app/internal/apiclient"
	"sample-app/internal/orchestrator"
	"sample-app/utils/logger"
)

// app holds what the persistent pre-run resolves for every subcommand.
type app struct {
	cfgFile   string
	verbose   bool
	colorFlag string
	version   string

	cfg     *config.ClientConfig
	params  map[string]any
	logger  *slog.Logger
	printer *Printer
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	rootCmd := &cobra.Command{
		Use:   "sample-app",
		Short: "Sample app client",
		Long: `sample-app signs in against the sample-app backend and shows the
authenticated user, their identity record and a data product.

Example usage:
  sample-app login             # Print the URL that starts the sign-in
  sample-app show              # Fetch user, identity and data product
  sample-app logout            # End the backend session`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .sample-app.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&a.colorFlag, "color", "auto", "color output: auto, always, or never")

	rootCmd.AddCommand(
		newShowCommand(a),
		newLoginCommand(a),
		newLogoutCommand(a),
		newVersionCommand(a),
	)

	return rootCmd
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}

func (a *app) init(cmd *cobra.Command) error {
	mode, err := ParseColorMode(a.colorFlag)
	if err != nil {
		return err
	}

	cfg, err := config.LoadClient(a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg
	if a.params, err = cfg.ProductParameters(); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	a.logger = logger.Init(logger.Config{
		Level:  level,
		Text:   true,
		Output: cmd.ErrOrStderr(),
	})
	a.printer = NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), ResolveColors(mode, cfg.Output.Colors))

	a.logger.Debug("configuration loaded",
		"backend_url", cfg.BackendURL,
		"product_code", cfg.ProductCode,
		"has_session", cfg.Session != "",
	)
	return nil
}

// newOrchestrator builds a fresh view controller that navigates through nav.
func (a *app) newOrchestrator(nav orchestrator.Navigator) (*orchestrator.Orchestrator, error) {
	httpClient, err := NewHTTPClient(a.cfg.BackendURL, a.cfg.Session)
	if err != nil {
		return nil, err
	}

	client := apiclient.New(a.cfg.BackendURL,
		apiclient.WithHTTPClient(httpClient),
		apiclient.WithLogger(a.logger),
	)

	return orchestrator.New(client, nav, orchestrator.Options{
		ProductCode: a.cfg.ProductCode,
		Parameters:  a.params,
		Logger:      a.logger,
	}), nil
}

func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.cfg.Timeout)
}
