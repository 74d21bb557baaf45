package engine

import "fmt"

// Code classifies a failure so callers can distinguish "the rule said no"
// from "the rule crashed" programmatically, not just by message text.
type Code string

const (
	// CodeNone marks a successful result.
	CodeNone Code = ""
	// CodeValidation marks an expected domain failure: malformed parameters,
	// preconditions not met, and similar.
	CodeValidation Code = "VALIDATION_FAILED"
	// CodeCharacterNotFound marks a reference to a character that is not in
	// the entity registry.
	CodeCharacterNotFound Code = "CHARACTER_NOT_FOUND"
	// CodeRuleException marks a rule whose execution panicked and was
	// recovered at the chain boundary.
	CodeRuleException Code = "RULE_EXCEPTION"
	// CodeStoreConstraint marks an entity mutation that violated a domain
	// invariant enforced by the store.
	CodeStoreConstraint Code = "STORE_CONSTRAINT"
)

// Effect is a narrative side-channel descriptor attached to a Result.
type Effect struct {
	Target      string `json:"target,omitempty"`
	Description string `json:"description"`
}

// Result is the uniform outcome shape shared by rules, chains, and commands.
// Failure results always carry a non-empty diagnostic message. Data on a
// failure may still be present and is never discarded by the chain.
type Result struct {
	Success bool           `json:"success"`
	Code    Code           `json:"code,omitempty"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	Effects []Effect       `json:"effects,omitempty"`
	Damage  int            `json:"damage,omitempty"`
}

// Ok builds a successful Result with the given message.
func Ok(message string) *Result {
	return &Result{Success: true, Message: message}
}

// Okf builds a successful Result with a formatted message.
func Okf(format string, args ...any) *Result {
	return Ok(fmt.Sprintf(format, args...))
}

// Fail builds a failed Result with a classification code and message.
func Fail(code Code, message string) *Result {
	if code == CodeNone {
		code = CodeValidation
	}
	return &Result{Success: false, Code: code, Message: message}
}

// Lost builds a failed Result without a classification code, for rolls
// that simply did not go the character's way. Nothing is wrong with the
// command; the dice said no.
func Lost(message string) *Result {
	return &Result{Success: false, Message: message}
}

// Failf builds a failed Result with a formatted message.
func Failf(code Code, format string, args ...any) *Result {
	return Fail(code, fmt.Sprintf(format, args...))
}

// WithData attaches a data payload, returning the same Result for chaining.
func (r *Result) WithData(data map[string]any) *Result {
	r.Data = data
	return r
}

// WithEffect appends a narrative effect, returning the same Result.
func (r *Result) WithEffect(target, description string) *Result {
	r.Effects = append(r.Effects, Effect{Target: target, Description: description})
	return r
}

// WithDamage sets the damage convenience field, returning the same Result.
func (r *Result) WithDamage(damage int) *Result {
	r.Damage = damage
	return r
}
