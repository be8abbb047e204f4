package cli

import (
	"context"
	"errors"
	"maps"

	"github.com/spf13/cobra"

	"sample-app/internal/orchestrator"
)

func newShowCommand(a *app) *cobra.Command {
	var (
		productCode string
		params      map[string]string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch and display the user, identity and data product",
		Long: `Run the session chain once: the current user, then their identity
record, then the configured data product. A failing step stops the chain and
is shown with its error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if productCode != "" {
				a.cfg.ProductCode = productCode
			}
			if len(params) > 0 {
				merged := maps.Clone(a.params)
				if merged == nil {
					merged = orchestrator.DefaultParameters()
				}
				for k, v := range params {
					merged[k] = v
				}
				a.params = merged
			}

			// show never navigates
			o, err := a.newOrchestrator(nil)
			if err != nil {
				return err
			}
			defer o.Detach()

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			state, err := o.Activate(ctx)
			if err != nil {
				a.logger.Warn("session chain interrupted", "error", err)
				if errors.Is(err, context.DeadlineExceeded) {
					a.printer.Error("backend did not answer within %s", a.cfg.Timeout)
				}
			}
			return RenderState(a.printer, state)
		},
	}

	cmd.Flags().StringVar(&productCode, "product-code", "", "data product to request (overrides config)")
	cmd.Flags().StringToStringVar(&params, "param", nil, "data product parameter key=value (repeatable)")

	return cmd
}
