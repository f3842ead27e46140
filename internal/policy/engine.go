// Package policy evaluates who may read stored transcripts. Authorization is
// a pluggable capability in front of the orchestration core, never part of
// the core contract itself.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine compiles the given Rego policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.transcript_policy.decision"),
		rego.Module("transcript_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the transcript access policy. Input carries the caller
// identity supplied by the authentication collaborator, for example
// {"role": "admin", "action": "history.read", "session_id": "..."}.
// Returns the decision string ("allow" or "deny").
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy is expected to define a default decision.
		return "deny", nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return "deny", nil
}

// DefaultPolicy admits transcript reads only to admin callers.
const DefaultPolicy = `
package transcript_policy

import rego.v1

default decision := "deny"

decision := "allow" if {
	input.action == "history.read"
	input.role == "admin"
}
`
