package engine

import "context"

// Rule is a named, prioritized unit of domain logic invoked by a chain.
//
// Rules are stateless values reused across many command executions; any
// accumulated state must live in the Context, not on the Rule. Lower
// priority runs earlier; ties preserve chain registration order.
//
// The producer/consumer handoff between rules in a chain happens through
// the Context's temporary keys: each rule's CanApply checks that its
// upstream key exists, and its Execute publishes its own output key. A rule
// whose preconditions are missing declines to apply rather than erroring.
type Rule interface {
	// Name uniquely identifies the rule for chain introspection.
	Name() string

	// Priority orders execution within a chain, ascending.
	Priority() int

	// CanApply reports whether the rule applies to this command and context.
	// It is a pure predicate and must not mutate the Context.
	CanApply(gs *Context, cmd Command) bool

	// Execute performs the domain computation, reading and writing the
	// Context, and returns a Result. Expected failures are returned as a
	// failed Result; a panic is recovered at the chain boundary and
	// reclassified as a rule exception.
	Execute(ctx context.Context, gs *Context, cmd Command) *Result
}

// RuleFunc adapts plain functions into Rules, keeping rule implementations
// free of mutable fields by construction.
type RuleFunc struct {
	RuleName     string
	RulePriority int
	Applies      func(gs *Context, cmd Command) bool
	Run          func(ctx context.Context, gs *Context, cmd Command) *Result
}

func (r RuleFunc) Name() string  { return r.RuleName }
func (r RuleFunc) Priority() int { return r.RulePriority }

func (r RuleFunc) CanApply(gs *Context, cmd Command) bool {
	if r.Applies == nil {
		return true
	}
	return r.Applies(gs, cmd)
}

func (r RuleFunc) Execute(ctx context.Context, gs *Context, cmd Command) *Result {
	return r.Run(ctx, gs, cmd)
}
