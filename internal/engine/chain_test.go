package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCommand is a minimal command for exercising chains directly.
type testCommand struct {
	kind    CommandType
	actor   string
	canExec bool
	staged  *Result
}

func (c *testCommand) Type() CommandType { return c.kind }
func (c *testCommand) Execute(ctx context.Context, gs *Context) *Result {
	if c.staged != nil {
		return c.staged
	}
	return Ok("intent accepted")
}
func (c *testCommand) CanExecute(gs *Context) bool  { return c.canExec }
func (c *testCommand) RequiredRules() []string      { return nil }
func (c *testCommand) InvolvedEntities() []string   { return []string{c.actor} }

func newTestCommand() *testCommand {
	return &testCommand{kind: CommandRollDice, actor: "tester", canExec: true}
}

// logRule appends its name to a shared log on execution.
func logRule(name string, priority int, log *[]string) Rule {
	return RuleFunc{
		RuleName:     name,
		RulePriority: priority,
		Run: func(ctx context.Context, gs *Context, cmd Command) *Result {
			*log = append(*log, name)
			return Okf("%s ran", name)
		},
	}
}

func TestChainOrderingIsStableByPriority(t *testing.T) {
	var log []string
	chain := NewRuleChain(ChainConfig{},
		logRule("third", 20, &log),
		logRule("first-a", 5, &log),
		logRule("first-b", 5, &log),
		logRule("second", 10, &log),
	)

	res := chain.Execute(context.Background(), NewContext(), newTestCommand())
	require.True(t, res.Success)

	// Ascending priority, registration order preserved on ties.
	assert.Equal(t, []string{"first-a", "first-b", "second", "third"}, log)
}

func TestChainVacuousSuccess(t *testing.T) {
	neverApplies := RuleFunc{
		RuleName: "never",
		Applies:  func(gs *Context, cmd Command) bool { return false },
		Run: func(ctx context.Context, gs *Context, cmd Command) *Result {
			t.Fatal("rule must not run")
			return nil
		},
	}
	chain := NewRuleChain(ChainConfig{}, neverApplies)

	res := chain.Execute(context.Background(), NewContext(), newTestCommand())
	assert.True(t, res.Success)
	assert.Empty(t, res.Data)
}

func TestChainStopOnFailure(t *testing.T) {
	var log []string
	failing := RuleFunc{
		RuleName:     "gatekeeper",
		RulePriority: 10,
		Run: func(ctx context.Context, gs *Context, cmd Command) *Result {
			log = append(log, "gatekeeper")
			return Fail(CodeValidation, "gatekeeper says no")
		},
	}
	chain := NewRuleChain(ChainConfig{StopOnFailure: true},
		logRule("opener", 0, &log),
		failing,
		logRule("unreachable", 20, &log),
	)

	res := chain.Execute(context.Background(), NewContext(), newTestCommand())
	assert.False(t, res.Success)
	assert.Equal(t, []string{"opener", "gatekeeper"}, log)
	assert.Contains(t, res.Message, "gatekeeper says no")
	assert.Equal(t, CodeValidation, res.Code)
}

func TestChainContinuesPastFailureWhenConfigured(t *testing.T) {
	var log []string
	failing := RuleFunc{
		RuleName:     "soft-fail",
		RulePriority: 5,
		Run: func(ctx context.Context, gs *Context, cmd Command) *Result {
			return Fail(CodeValidation, "soft failure")
		},
	}
	chain := NewRuleChain(ChainConfig{StopOnFailure: false},
		failing,
		logRule("still-runs", 10, &log),
	)

	res := chain.Execute(context.Background(), NewContext(), newTestCommand())
	assert.False(t, res.Success)
	assert.Equal(t, []string{"still-runs"}, log)
}

func TestChainDataMerge(t *testing.T) {
	ruleA := RuleFunc{
		RuleName: "a",
		Run: func(ctx context.Context, gs *Context, cmd Command) *Result {
			return Ok("a").WithData(map[string]any{"a": 1})
		},
	}
	ruleB := RuleFunc{
		RuleName:     "b",
		RulePriority: 1,
		Run: func(ctx context.Context, gs *Context, cmd Command) *Result {
			return Ok("b").WithData(map[string]any{"b": 2})
		},
	}

	merged := NewRuleChain(ChainConfig{MergeResults: true}, ruleA, ruleB)
	res := merged.Execute(context.Background(), NewContext(), newTestCommand())
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, res.Data)

	lastOnly := NewRuleChain(ChainConfig{MergeResults: false}, ruleA, ruleB)
	res = lastOnly.Execute(context.Background(), NewContext(), newTestCommand())
	assert.Equal(t, map[string]any{"b": 2}, res.Data)
}

func TestChainFailureDataIsKept(t *testing.T) {
	failing := RuleFunc{
		RuleName: "diagnostic",
		Run: func(ctx context.Context, gs *Context, cmd Command) *Result {
			return Fail(CodeValidation, "bad input").
				WithData(map[string]any{"field": "strength"})
		},
	}
	chain := NewRuleChain(ChainConfig{MergeResults: true, StopOnFailure: true}, failing)

	res := chain.Execute(context.Background(), NewContext(), newTestCommand())
	assert.False(t, res.Success)
	assert.Equal(t, "strength", res.Data["field"])
}

func TestChainEffectsConcatenateInOrder(t *testing.T) {
	first := RuleFunc{
		RuleName: "first",
		Run: func(ctx context.Context, gs *Context, cmd Command) *Result {
			return Ok("first").WithEffect("hero", "glows faintly")
		},
	}
	second := RuleFunc{
		RuleName:     "second",
		RulePriority: 1,
		Run: func(ctx context.Context, gs *Context, cmd Command) *Result {
			return Ok("second").WithEffect("hero", "takes a step back")
		},
	}
	chain := NewRuleChain(ChainConfig{}, first, second)

	res := chain.Execute(context.Background(), NewContext(), newTestCommand())
	require.Len(t, res.Effects, 2)
	assert.Equal(t, "glows faintly", res.Effects[0].Description)
	assert.Equal(t, "takes a step back", res.Effects[1].Description)
}

func TestChainRecoversPanickingRule(t *testing.T) {
	boom := RuleFunc{
		RuleName: "boom",
		Run: func(ctx context.Context, gs *Context, cmd Command) *Result {
			panic("boom")
		},
	}
	chain := NewRuleChain(ChainConfig{StopOnFailure: true}, boom)

	res := chain.Execute(context.Background(), NewContext(), newTestCommand())
	assert.False(t, res.Success)
	assert.Equal(t, CodeRuleException, res.Code)
	assert.Contains(t, res.Message, "boom")
}

func TestChainClearsTemporary(t *testing.T) {
	gs := NewContext()
	gs.SetTemporary("stale", 1)

	writer := RuleFunc{
		RuleName: "writer",
		Run: func(ctx context.Context, gs *Context, cmd Command) *Result {
			gs.SetTemporary("fresh", 2)
			return Ok("wrote")
		},
	}
	chain := NewRuleChain(ChainConfig{ClearTemporary: true}, writer)

	res := chain.Execute(context.Background(), gs, newTestCommand())
	require.True(t, res.Success)
	assert.Nil(t, gs.GetTemporary("stale"))
	assert.Nil(t, gs.GetTemporary("fresh"))
}
