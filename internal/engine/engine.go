// Package engine implements the command and rule orchestration core: a
// registry mapping command types to ordered rule chains, executed against a
// shared mutable Context with defined failure propagation and result
// merging semantics.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrChainNotFound indicates a command type with no registered chain. This
// is a wiring bug surfaced as an error, deliberately distinct from domain
// failures, which always come back as a Result.
var ErrChainNotFound = errors.New("no rule chain registered")

// ErrEmptyChain indicates an attempt to register a chain with zero rules.
var ErrEmptyChain = errors.New("rule chain has no rules")

// ValidationReport is the outcome of a static engine self-check.
type ValidationReport struct {
	Valid  bool
	Errors []string
}

// Engine dispatches commands to their rule chains and collects execution
// metrics. Build once at startup; the registry is mutable but intended to
// stabilize after registration.
type Engine struct {
	chains   map[CommandType]*RuleChain
	critical map[CommandType]bool

	processed     int
	succeeded     int
	totalDuration time.Duration
	usage         map[CommandType]int
}

// New creates an engine with the default critical-command set: saving
// throws and system shock halt a batch when they fail.
func New() *Engine {
	return &Engine{
		chains: make(map[CommandType]*RuleChain),
		critical: map[CommandType]bool{
			CommandSavingThrow: true,
			CommandSystemShock: true,
		},
		usage: make(map[CommandType]int),
	}
}

// Register binds a chain to a command type. An empty chain is a
// configuration error caught here, not at first use.
func (e *Engine) Register(t CommandType, chain *RuleChain) error {
	if chain == nil || chain.Len() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyChain, t)
	}
	e.chains[t] = chain
	return nil
}

// Unregister removes the chain bound to a command type.
func (e *Engine) Unregister(t CommandType) {
	delete(e.chains, t)
}

// Chain returns the chain registered for a command type, or nil.
func (e *Engine) Chain(t CommandType) *RuleChain {
	return e.chains[t]
}

// SetCritical marks or unmarks a command type as batch-critical.
func (e *Engine) SetCritical(t CommandType, critical bool) {
	e.critical[t] = critical
}

// Process runs one command through its chain.
//
// Expected domain failures are returned as a failed Result with a nil
// error. A missing chain returns ErrChainNotFound so that wiring bugs are
// loud at integration time instead of masquerading as gameplay failures.
// Metrics are updated on every path, including the error path.
func (e *Engine) Process(ctx context.Context, cmd Command, gs *Context) (*Result, error) {
	start := time.Now()

	if !cmd.CanExecute(gs) {
		res := Failf(CodeValidation, "%s cannot be executed in current context", cmd.Type())
		e.record(cmd.Type(), res, time.Since(start))
		return res, nil
	}

	chain, ok := e.chains[cmd.Type()]
	if !ok {
		e.record(cmd.Type(), &Result{Success: false}, time.Since(start))
		return nil, fmt.Errorf("%w for command type %q", ErrChainNotFound, cmd.Type())
	}

	staged := cmd.Execute(ctx, gs)
	if staged != nil && !staged.Success {
		e.record(cmd.Type(), staged, time.Since(start))
		return staged, nil
	}

	res := chain.Execute(ctx, gs, cmd)

	// Staging data the chain did not overwrite stays visible in the final
	// result, covering self-contained commands that resolve locally.
	if staged != nil && staged.Data != nil {
		if res.Data == nil {
			res.Data = make(map[string]any, len(staged.Data))
		}
		for k, v := range staged.Data {
			if _, exists := res.Data[k]; !exists {
				res.Data[k] = v
			}
		}
	}

	e.record(cmd.Type(), res, time.Since(start))
	return res, nil
}

// ProcessBatch processes commands sequentially, stopping early only when a
// critical command fails. Results for commands processed so far are
// returned alongside any configuration error.
func (e *Engine) ProcessBatch(ctx context.Context, cmds []Command, gs *Context) ([]*Result, error) {
	results := make([]*Result, 0, len(cmds))
	for _, cmd := range cmds {
		res, err := e.Process(ctx, cmd, gs)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if !res.Success && e.critical[cmd.Type()] {
			break
		}
	}
	return results, nil
}

// Validate performs a static self-check: at least one chain registered, no
// registered chain empty. Intended for startup and integration tests, not
// the hot path.
func (e *Engine) Validate() ValidationReport {
	report := ValidationReport{Valid: true}
	if len(e.chains) == 0 {
		report.Valid = false
		report.Errors = append(report.Errors, "no rule chains registered")
	}
	for t, chain := range e.chains {
		if chain.Len() == 0 {
			report.Valid = false
			report.Errors = append(report.Errors, fmt.Sprintf("chain for %s has no rules", t))
		}
	}
	return report
}

func (e *Engine) record(t CommandType, res *Result, elapsed time.Duration) {
	e.processed++
	if res != nil && res.Success {
		e.succeeded++
	}
	e.totalDuration += elapsed
	e.usage[t]++
}
