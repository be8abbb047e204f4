package cli

import (
	"encoding/json"
	"fmt"

	"sample-app/internal/orchestrator"
)

type stepView struct {
	name    string
	phase   orchestrator.Phase
	err     error
	payload map[string]any
}

func stepViews(state orchestrator.State) []stepView {
	return []stepView{
		{"user", state.User.Phase, state.User.Err, state.User.Value.Claims},
		{"identity", state.Identity.Phase, state.Identity.Err, state.Identity.Value.Record},
		{"data product", state.DataProduct.Phase, state.DataProduct.Err, state.DataProduct.Value.Payload},
	}
}

// RenderState prints the stage, a table of step phases and every fetched payload.
func RenderState(p *Printer, state orchestrator.State) error {
	p.Header("Session")
	p.Print("stage: %s", state.Stage())

	steps := stepViews(state)
	rows := make([][]string, 0, len(steps))
	for _, s := range steps {
		detail := ""
		if s.phase == orchestrator.PhaseFailed && s.err != nil {
			detail = s.err.Error()
		}
		rows = append(rows, []string{s.name, p.PhaseBadge(s.phase.String()), detail})
	}
	if err := p.Table([]string{"step", "phase", "detail"}, rows); err != nil {
		return fmt.Errorf("rendering steps: %w", err)
	}

	for _, s := range steps {
		if s.phase != orchestrator.PhaseSuccess {
			continue
		}
		raw, err := json.MarshalIndent(s.payload, "", "  ")
		if err != nil {
			return fmt.Errorf("rendering %s: %w", s.name, err)
		}
		p.Header(s.name)
		p.Print("%s", raw)
	}

	if state.Stage() == orchestrator.StageAnonymous {
		p.Warning("not logged in; run the login command")
	}
	return nil
}
