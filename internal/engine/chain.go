package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ChainConfig controls a chain's abort, merge, and cleanup behavior.
type ChainConfig struct {
	// StopOnFailure stops iterating as soon as an executed rule fails.
	StopOnFailure bool
	// MergeResults shallow-merges every rule's data payload into the chain
	// result (last writer wins per key); when false only the last executed
	// rule's data is kept.
	MergeResults bool
	// ClearTemporary wipes the Context's transient bag after the chain
	// finishes, success or failure. Chains that stage data for a subsequent
	// command leave this false.
	ClearTemporary bool
}

// RuleChain is an ordered collection of rules bound to one command type.
// Built once at startup and reused across executions; rules may be appended
// but not removed.
type RuleChain struct {
	rules  []Rule
	config ChainConfig
}

// NewRuleChain creates a chain with the given config and rules.
func NewRuleChain(config ChainConfig, rules ...Rule) *RuleChain {
	c := &RuleChain{config: config}
	c.rules = append(c.rules, rules...)
	return c
}

// Append adds a rule to the end of the chain.
func (c *RuleChain) Append(rules ...Rule) {
	c.rules = append(c.rules, rules...)
}

// Len returns the number of registered rules.
func (c *RuleChain) Len() int { return len(c.rules) }

// RuleNames returns the registered rule names in chain order.
func (c *RuleChain) RuleNames() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name()
	}
	return names
}

// Config returns the chain's configuration.
func (c *RuleChain) Config() ChainConfig { return c.config }

// Execute runs the chain against a command: filter to applicable rules,
// run them in ascending priority order (stable on ties), and merge their
// results. A chain with zero applicable rules succeeds vacuously: a command
// with no matching rules is a no-op, not a failure.
func (c *RuleChain) Execute(ctx context.Context, gs *Context, cmd Command) *Result {
	if c.config.ClearTemporary {
		defer gs.ClearTemporary()
	}

	applicable := make([]Rule, 0, len(c.rules))
	for _, r := range c.rules {
		if r.CanApply(gs, cmd) {
			applicable = append(applicable, r)
		}
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Priority() < applicable[j].Priority()
	})

	if len(applicable) == 0 {
		return Ok(fmt.Sprintf("no applicable rules for %s", cmd.Type()))
	}

	var executed []*Result
	for _, r := range applicable {
		res := runRule(ctx, r, gs, cmd)
		executed = append(executed, res)
		if c.config.StopOnFailure && !res.Success {
			break
		}
	}

	return c.merge(executed)
}

// runRule executes a single rule, converting a panic into a classified
// failure result so one misbehaving rule never crashes the whole chain.
func runRule(ctx context.Context, r Rule, gs *Context, cmd Command) (res *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Failf(CodeRuleException, "%s error: %v", r.Name(), rec)
		}
	}()
	res = r.Execute(ctx, gs, cmd)
	if res == nil {
		res = Failf(CodeRuleException, "%s error: rule returned no result", r.Name())
	}
	return res
}

// merge folds the executed results into one chain-level result.
func (c *RuleChain) merge(executed []*Result) *Result {
	out := &Result{Success: true}
	var messages []string

	for _, res := range executed {
		if !res.Success {
			out.Success = false
			if out.Code == CodeNone {
				out.Code = res.Code
			}
		}
		if res.Message != "" {
			messages = append(messages, res.Message)
		}

		if c.config.MergeResults && res.Data != nil {
			if out.Data == nil {
				out.Data = make(map[string]any, len(res.Data))
			}
			for k, v := range res.Data {
				out.Data[k] = v
			}
		}

		out.Effects = append(out.Effects, res.Effects...)
		out.Damage += res.Damage
	}

	if !c.config.MergeResults && len(executed) > 0 {
		out.Data = executed[len(executed)-1].Data
	}

	out.Message = strings.Join(messages, "; ")
	return out
}
