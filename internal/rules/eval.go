package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"
)

// Evaluator wraps a CEL environment used for the conditional parts of the
// rule set: per-action eligibility formulas and per-card unlock conditions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates a CEL environment with the variables every condition
// formula may reference.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		ext.Strings(),
		ext.Lists(),

		// Variables available in all formulas
		cel.Variable("faction", cel.DynType),
		cel.Variable("turn", cel.IntType),
		cel.Variable("flags", cel.ListType(cel.StringType)),
		cel.Variable("metadata", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Eval compiles and evaluates a condition formula against the given context.
func (ev *Evaluator) Eval(formula string, ctx map[string]any) (any, error) {
	ast, issues := ev.env.Compile(formula)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compile error: %w", issues.Err())
	}

	prg, err := ev.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("CEL program error: %w", err)
	}

	out, _, err := prg.Eval(ctx)
	if err != nil {
		return nil, fmt.Errorf("CEL eval error: %w", err)
	}
	return convertRefVal(out), nil
}

// EvalBool evaluates a formula expected to produce a boolean. A non-boolean
// result is treated as an error, never as silent truth.
func (ev *Evaluator) EvalBool(formula string, ctx map[string]any) (bool, error) {
	out, err := ev.Eval(formula, ctx)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q did not evaluate to a boolean", formula)
	}
	return b, nil
}

// convertRefVal converts a CEL ref.Val to a native Go value, recursively
// handling maps and lists so downstream code can use plain type assertions.
func convertRefVal(val ref.Val) any {
	native := val.Value()
	switch v := native.(type) {
	case map[ref.Val]ref.Val:
		result := make(map[string]any, len(v))
		for mk, mv := range v {
			result[fmt.Sprintf("%v", mk.Value())] = convertRefVal(mv)
		}
		return result
	case []ref.Val:
		result := make([]any, len(v))
		for i, rv := range v {
			result[i] = convertRefVal(rv)
		}
		return result
	default:
		return native
	}
}
