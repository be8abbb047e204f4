package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sample-app/internal/orchestrator"
)

var errNotLoggedIn = errors.New("not logged in")

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the backend session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nav := orchestrator.NavigatorFunc(func(_ context.Context, target string) error {
				a.printer.Success("Logged out")
				a.logger.Debug("navigating", "target", target)
				return nil
			})

			o, err := a.newOrchestrator(nav)
			if err != nil {
				return err
			}
			defer o.Detach()

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			// logout is offered only to an authenticated view
			if _, err := o.Activate(ctx); err != nil {
				return err
			}
			if err := o.OnLogout(ctx); err != nil {
				if errors.Is(err, orchestrator.ErrInvalidStage) {
					return fmt.Errorf("%w: %w", errNotLoggedIn, err)
				}
				return err
			}

			if a.cfg.Session != "" {
				a.printer.Warning("remove the session setting from your config")
			}
			return nil
		},
	}
}
