package cli

import (
	"context"

	"github.com/spf13/cobra"

	"sample-app/internal/orchestrator"
)

func newLoginCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Print the URL that starts the sign-in",
		Long: `Ask the backend for the authorization URL and print it. Open it in a
browser; after signing in, copy the Authorization cookie value into the
session setting of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nav := orchestrator.NavigatorFunc(func(_ context.Context, target string) error {
				a.printer.Info("Open this URL in your browser to sign in:")
				a.printer.Print("%s", target)
				return nil
			})

			o, err := a.newOrchestrator(nav)
			if err != nil {
				return err
			}
			defer o.Detach()

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			return o.OnLogin(ctx)
		},
	}
}
