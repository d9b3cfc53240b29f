package translation

import (
	"context"
	"log/slog"
	"time"

	"github.com/cpgkit/cpgkit/internal/config"
	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/frontend"
	"github.com/cpgkit/cpgkit/internal/lang"
	"github.com/cpgkit/cpgkit/internal/passrunner"
	"github.com/cpgkit/cpgkit/internal/scheduler"
	"github.com/cpgkit/cpgkit/internal/symtab"
)

// configurePasses hands each scheduled pass its validated PassConfig entry,
// if it declared one (config.Configurable) and the caller supplied one.
// This runs once, after scheduling and before the Pass Runner's first
// group, so a pass's Configure never races its own Accept.
func configurePasses(schedule []scheduler.Group, passConfig map[string]map[string]any) {
	for _, group := range schedule {
		for _, p := range group {
			configurable, ok := p.(config.Configurable)
			if !ok {
				continue
			}
			if cfg, has := passConfig[p.Descriptor().Name]; has {
				configurable.Configure(cfg)
			}
		}
	}
}

// Manager is the Translation Manager (spec.md §4.H): the single entry point
// that turns a frozen TranslationConfiguration into a TranslationResult,
// driving the Frontend Runner and Pass Runner in turn and enforcing the
// Idle -> Parsing -> Passing -> Finalizing -> Done|Failed|Cancelled
// lifecycle. One Manager serves exactly one Translate call; a second
// translation of the same configuration gets a fresh Manager.
type Manager struct {
	cfg   *config.TranslationConfiguration
	state *stateMachine
	ctx   *Context
}

// NewManager validates cfg is non-nil and returns a Manager ready to
// Translate. Deeper validation (empty components, unresolvable schedule)
// already happened in Builder.Build; the Manager trusts a
// *TranslationConfiguration it's handed.
func NewManager(cfg *config.TranslationConfiguration) (*Manager, error) {
	if cfg == nil {
		return nil, cpgerr.NewConfigurationError("translation configuration is nil")
	}
	return &Manager{cfg: cfg, state: newStateMachine()}, nil
}

// State reports the translation's current lifecycle phase.
func (m *Manager) State() State { return m.state.get() }

// Cancel sets the cooperative cancellation token. It is safe to call from
// a goroutine other than the one running Translate; the Frontend Runner
// and Pass Runner observe it between files/groups, never mid-file or
// mid-pass (spec.md §5).
func (m *Manager) Cancel() {
	if m.ctx != nil {
		m.ctx.Cancel()
	}
}

// Translate runs one translation end to end: builds the registry from
// cfg.Languages, creates the per-translation ScopeManager/TypeManager and
// root scope, drives the Frontend Runner over every software component,
// then the Pass Runner over the frozen schedule, and finally assembles a
// TranslationResult. It returns cpgerr.ErrCancelled itself, unwrapped, if
// cancellation was observed; any other non-nil error leaves
// the Manager in the Failed state and the result's diagnostics still
// readable for whatever was produced before the failure.
func (m *Manager) Translate(ctx context.Context) (*TranslationResult, error) {
	if err := m.state.advance(Parsing); err != nil {
		return nil, err
	}

	registry := lang.NewRegistry()
	for _, l := range m.cfg.Languages {
		registry.Register(l)
	}

	arena := cpgnode.NewArena()
	scopes := symtab.NewScopeManager(arena)
	types := symtab.NewTypeManager(arena)
	root := scopes.NewScope(cpgnode.InvalidIdentity)

	result := newResult(arena, root)
	tc := newContext(m.cfg, result, scopes, types)
	m.ctx = tc

	start := time.Now()
	slog.Info("translation.start", "components", len(m.cfg.ComponentOrder), "languages", registry.Len())

	if err := frontend.Run(ctx, m.cfg, registry, tc, result); err != nil {
		return m.fail(result, err)
	}
	slog.Info("translation.parsed", "units", len(result.Units()), "elapsed", time.Since(start))

	// Always imposed, not just when UseParallelFrontends is set: serial
	// parsing already produces this order, but the join itself must be
	// deterministic regardless of completion order (spec.md §5), and
	// skipping it only in the serial case would make that an accident of
	// scheduling rather than a guarantee.
	result.sortUnitsByFile()

	// The arena is deliberately not frozen here: TypeResolver and the
	// other default passes call TranslationContext.RegisterType during
	// the Passing phase, which creates new Type nodes on first sight
	// (spec.md §4.B). Freeze would have to wait until after passrunner.Run
	// returns, and nothing downstream needs the arena frozen before then.
	if err := m.state.advance(Passing); err != nil {
		return m.fail(result, err)
	}
	configurePasses(m.cfg.Schedule, m.cfg.PassConfig)

	passStart := time.Now()
	if err := passrunner.Run(ctx, m.cfg.Schedule, tc, m.cfg.Flags.UseParallelPasses); err != nil {
		return m.fail(result, err)
	}
	slog.Info("translation.passed", "groups", len(m.cfg.Schedule), "elapsed", time.Since(passStart))

	if err := m.state.advance(Finalizing); err != nil {
		return m.fail(result, err)
	}
	arena.Freeze()

	if !m.cfg.Flags.DisableCleanup {
		scopes.Close()
		types.Close()
	}

	if err := m.state.advance(Done); err != nil {
		return m.fail(result, err)
	}

	slog.Info("translation.done", "nodes", arena.Len(), "diagnostics", len(result.Diagnostics()), "elapsed", time.Since(start))
	return result, nil
}

// fail transitions the Manager to Cancelled or Failed depending on err's
// kind and returns both the partial result and the error, per spec.md §7
// "diagnostics are exposed even on failure".
func (m *Manager) fail(result *TranslationResult, err error) (*TranslationResult, error) {
	next := Failed
	if err == cpgerr.ErrCancelled {
		next = Cancelled
	}
	if advErr := m.state.advance(next); advErr != nil {
		slog.Warn("translation.state.invalid", "attempted", next.String(), "err", advErr)
	}
	slog.Warn("translation.failed", "state", next.String(), "err", err)
	return result, err
}
