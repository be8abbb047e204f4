// Package orchestrator drives the session chain of the sample-app view:
// me → identity → data product, plus the login and logout actions.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"sample-app/internal/apiclient"
	"sample-app/utils/logger"
)

// DefaultProductCode is the data product requested once the identity is known.
const DefaultProductCode = "prh-business-identity-data-product"

// RootPath is where the view navigates after logout.
const RootPath = "/"

var (
	ErrAlreadyActivated = errors.New("orchestrator already activated")
	ErrDetached         = errors.New("orchestrator detached from its view")
	ErrInvalidStage     = errors.New("action not available in current stage")
	ErrMissingLoginURI  = errors.New("login response carries no uri")
	ErrMissingSessionID = errors.New("session carries no @id claim")
)

// API is the backend surface the orchestrator depends on. *apiclient.Client
// satisfies it.
type API interface {
	Login(ctx context.Context) (apiclient.Result, error)
	Logout(ctx context.Context) (apiclient.Result, error)
	Me(ctx context.Context) (apiclient.Result, error)
	GetIdentity(ctx context.Context, id apiclient.SessionID) (apiclient.Result, error)
	FetchDataProduct(ctx context.Context, productCode string, parameters map[string]any) (apiclient.Result, error)
}

// Navigator moves the browsing context to target.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, target string) error

// Navigate calls f.
func (f NavigatorFunc) Navigate(ctx context.Context, target string) error {
	return f(ctx, target)
}

// DefaultParameters returns the parameter set sent with DefaultProductCode.
func DefaultParameters() map[string]any {
	return map[string]any{"businessId": "2980005-2"}
}

// Options configures an Orchestrator. Zero values fall back to the defaults.
type Options struct {
	ProductCode string
	Parameters  map[string]any
	Logger      *slog.Logger
}

// Orchestrator is the single writer of a view's State.
type Orchestrator struct {
	api         API
	nav         Navigator
	productCode string
	parameters  map[string]any
	logger      *slog.Logger

	mu        sync.RWMutex
	state     State
	activated bool
	detached  bool
}

// New creates an orchestrator in the anonymous stage.
func New(api API, nav Navigator, opts Options) *Orchestrator {
	o := &Orchestrator{
		api:         api,
		nav:         nav,
		productCode: opts.ProductCode,
		parameters:  maps.Clone(opts.Parameters),
		logger:      opts.Logger,
		state: State{
			User:        idle[apiclient.Session](),
			Identity:    idle[apiclient.Identity](),
			DataProduct: idle[apiclient.DataProduct](),
		},
	}
	if o.productCode == "" {
		o.productCode = DefaultProductCode
	}
	if o.parameters == nil {
		o.parameters = DefaultParameters()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Snapshot returns a copy of the current state. Payload maps are replaced, never
// mutated, so they are safe to read.
func (o *Orchestrator) Snapshot() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Detach marks the view as torn down. Results that arrive afterwards are dropped.
func (o *Orchestrator) Detach() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.detached = true
}

// Activate runs the chain once. A failing step is recorded as PhaseFailed and
// leaves every later step idle. The returned error reports only lifecycle
// problems: a second activation, or a view that went away mid-chain.
func (o *Orchestrator) Activate(ctx context.Context) (State, error) {
	o.mu.Lock()
	if o.activated {
		o.mu.Unlock()
		return o.Snapshot(), ErrAlreadyActivated
	}
	o.activated = true
	o.mu.Unlock()

	session, err := o.loadSession(ctx)
	if err != nil {
		return o.Snapshot(), o.lifecycleErr(ctx)
	}

	identity, err := o.loadIdentity(ctx, session)
	if err != nil {
		return o.Snapshot(), o.lifecycleErr(ctx)
	}

	if _, err := o.loadDataProduct(ctx, identity); err != nil {
		return o.Snapshot(), o.lifecycleErr(ctx)
	}

	return o.Snapshot(), nil
}

func (o *Orchestrator) loadSession(ctx context.Context) (apiclient.Session, error) {
	return runStep(ctx, o, apiclient.OpMe,
		func(s *State) *Step[apiclient.Session] { return &s.User },
		o.api.Me,
		func(data map[string]any) apiclient.Session { return apiclient.Session{Claims: data} })
}

func (o *Orchestrator) loadIdentity(ctx context.Context, session apiclient.Session) (apiclient.Identity, error) {
	id, ok := session.ID()
	if !ok {
		o.logger.WarnContext(ctx, "chain halted", "operation", apiclient.OpGetIdentity, "error", ErrMissingSessionID)
		o.write(ctx, func(s *State) { s.Identity = failed[apiclient.Identity](ErrMissingSessionID) })
		return apiclient.Identity{}, ErrMissingSessionID
	}

	return runStep(ctx, o, apiclient.OpGetIdentity,
		func(s *State) *Step[apiclient.Identity] { return &s.Identity },
		func(ctx context.Context) (apiclient.Result, error) { return o.api.GetIdentity(ctx, id) },
		func(data map[string]any) apiclient.Identity { return apiclient.Identity{Record: data} })
}

// loadDataProduct requires a fetched identity; the broker request does not
// depend on its content.
func (o *Orchestrator) loadDataProduct(ctx context.Context, _ apiclient.Identity) (apiclient.DataProduct, error) {
	return runStep(ctx, o, apiclient.OpFetchDataProduct,
		func(s *State) *Step[apiclient.DataProduct] { return &s.DataProduct },
		func(ctx context.Context) (apiclient.Result, error) {
			return o.api.FetchDataProduct(ctx, o.productCode, maps.Clone(o.parameters))
		},
		func(data map[string]any) apiclient.DataProduct { return apiclient.DataProduct{Payload: data} })
}

// runStep performs one guarded fetch and records its outcome in the slot.
func runStep[T any](
	ctx context.Context,
	o *Orchestrator,
	op string,
	slot func(*State) *Step[T],
	call func(context.Context) (apiclient.Result, error),
	build func(map[string]any) T,
) (T, error) {
	var zero T
	ctx = logger.WithStage(ctx, o.Snapshot().Stage().String())
	if !o.write(ctx, func(s *State) { *slot(s) = loading[T]() }) {
		return zero, ErrDetached
	}

	result, err := call(ctx)
	if err == nil {
		err = result.Err(op)
	}
	if err != nil {
		o.logger.WarnContext(ctx, "chain halted", "operation", op, "error", err)
		o.write(ctx, func(s *State) { *slot(s) = failed[T](err) })
		return zero, err
	}

	value := build(result.Data)
	if !o.write(ctx, func(s *State) { *slot(s) = succeeded(value) }) {
		return zero, ErrDetached
	}
	return value, nil
}

// write applies fn unless the view is gone. It reports whether fn ran.
func (o *Orchestrator) write(ctx context.Context, fn func(*State)) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.detached || ctx.Err() != nil {
		return false
	}
	fn(&o.state)
	return true
}

func (o *Orchestrator) lifecycleErr(ctx context.Context) error {
	o.mu.RLock()
	detached := o.detached
	o.mu.RUnlock()
	if detached {
		return ErrDetached
	}
	return ctx.Err()
}

// OnLogin asks the backend for the authorization URI and navigates to it.
// Only available while anonymous.
func (o *Orchestrator) OnLogin(ctx context.Context) error {
	if stage := o.Snapshot().Stage(); stage != StageAnonymous {
		return fmt.Errorf("%w: login in stage %s", ErrInvalidStage, stage)
	}

	result, err := o.api.Login(ctx)
	if err != nil {
		return err
	}
	if err := result.Err(apiclient.OpLogin); err != nil {
		return err
	}

	uri, _ := result.Data["uri"].(string)
	if uri == "" {
		return ErrMissingLoginURI
	}
	return o.navigate(ctx, uri)
}

// OnLogout ends the backend session and navigates to the application root.
// Only available once authenticated.
func (o *Orchestrator) OnLogout(ctx context.Context) error {
	if stage := o.Snapshot().Stage(); stage == StageAnonymous {
		return fmt.Errorf("%w: logout in stage %s", ErrInvalidStage, stage)
	}

	result, err := o.api.Logout(ctx)
	if err != nil {
		return err
	}
	if err := result.Err(apiclient.OpLogout); err != nil {
		return err
	}
	return o.navigate(ctx, RootPath)
}

func (o *Orchestrator) navigate(ctx context.Context, target string) error {
	o.mu.RLock()
	detached := o.detached
	o.mu.RUnlock()
	if detached {
		return ErrDetached
	}
	return o.nav.Navigate(ctx, target)
}
