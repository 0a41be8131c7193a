// internal/settings/evaluate.go
package settings

import (
	"fmt"

	"github.com/theogravity/config-ready/internal/types"
)

/*
 * Single-entry evaluation.
 *
 * Produces the effective value of one setting for a request context:
 *   1. Override short-circuit: a forced value for the setting wins
 *      unconditionally, no rule is evaluated.
 *   2. Rule scan: exception rules in declaration order, first rule whose
 *      conditions all match wins (AND across keys in one rule). A rule
 *      with no conditions matches vacuously.
 *   3. Default: the entry's value when no rule matched.
 *
 * Combination rules differ by condition kind and the distinction is
 * deliberate: a generic sequence is a membership test (context value equals
 * ANY element) while a setting sequence is a dependency conjunction (ALL
 * referenced answers truthy).
 *
 * Failure semantics: a missing percentageSeed, an unregistered custom
 * evaluator, and an unsupported value shape abort the evaluation with no
 * partial answer. Everything else is an ordinary non-match that continues
 * the scan.
 */

// Env carries the request-scoped collaborators for an evaluation. The zero
// value is usable: empty context, no overrides, no precomputed answers, no
// custom evaluators, process random source.
type Env struct {
	Context    types.Context
	Overrides  types.Overrides
	Answers    types.Answers
	Evaluators *Registry
	Random     RandomSource
}

// Evaluate compiles an entry and produces its answer. Convenience wrapper
// for one-shot callers; hosts evaluating the same entry repeatedly should
// Compile once and use EvaluateCompiled.
func Evaluate(entry *types.Entry, env Env) (types.Answer, error) {
	compiled, err := Compile(entry)
	if err != nil {
		return types.Answer{}, err
	}
	return EvaluateCompiled(compiled, env)
}

// EvaluateCompiled produces the answer for a compiled entry. Inputs are
// never mutated; concurrent calls are safe when env.Random is.
func EvaluateCompiled(entry *CompiledEntry, env Env) (types.Answer, error) {
	if v, ok := env.Overrides[entry.Setting]; ok {
		return types.Answer{Key: entry.Setting, Value: v}, nil
	}

	for _, rule := range entry.Rules {
		matched, err := matchRule(entry.Setting, rule, env)
		if err != nil {
			return types.Answer{}, fmt.Errorf("setting %q: %w", entry.Setting, err)
		}
		if matched {
			return types.Answer{Key: entry.Setting, Value: rule.Value}, nil
		}
	}

	return types.Answer{Key: entry.Setting, Value: entry.Default}, nil
}

// matchRule checks every condition of one rule (AND). Short-circuits on the
// first non-match.
func matchRule(setting string, rule CompiledRule, env Env) (bool, error) {
	for _, cond := range rule.Conditions {
		matched, err := matchCondition(setting, cond, env)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

// matchCondition evaluates a single compiled condition.
func matchCondition(setting string, cond CompiledCondition, env Env) (bool, error) {
	switch cond.Kind {
	case KindScalar:
		cv, err := contextScalar(cond.Key, env.Context)
		if err != nil {
			return false, err
		}
		return scalarEqual(cv, cond.Scalar), nil

	case KindMembership:
		cv, err := contextScalar(cond.Key, env.Context)
		if err != nil {
			return false, err
		}
		return memberOf(cv, cond.Members), nil

	case KindSettingDependency:
		// ALL referenced answers must be truthy. An absent answer is falsy.
		for _, name := range cond.Settings {
			if !isTruthy(env.Answers[name]) {
				return false, nil
			}
		}
		return true, nil

	case KindPercentage:
		seed, ok := env.Context[types.PercentageSeedKey]
		if !ok || seed == nil {
			return false, types.ErrMissingSeed
		}
		if cond.Percent <= 0 {
			return false, nil
		}
		if cond.Percent >= 100 {
			return true, nil
		}
		bucket, err := Bucket(setting, seed)
		if err != nil {
			return false, err
		}
		return bucket < cond.Percent, nil

	case KindRandomPercentage:
		// Fast paths skip the draw; a draw exactly on the boundary does
		// not match (strict inequality).
		if cond.Percent <= 0 {
			return false, nil
		}
		if cond.Percent >= 100 {
			return true, nil
		}
		return env.random().Float64() < cond.Percent/100, nil

	case KindCustomPredicate:
		ev, err := env.Evaluators.lookup(cond.Evaluator)
		if err != nil {
			return false, err
		}
		return isTruthy(ev.Evaluate(cond.Dimension, env.Context[keyCustomCondition])), nil

	default:
		return false, fmt.Errorf("condition %q: %w", cond.Key, types.ErrUnsupportedFieldType)
	}
}

// contextScalar fetches a context attribute for comparison, rejecting
// non-primitive values. A missing attribute compares as nil and simply
// fails to match.
func contextScalar(key string, ctx types.Context) (any, error) {
	cv, ok := ctx[key]
	if !ok {
		return nil, nil
	}
	if cv != nil && !isPrimitive(cv) {
		return nil, fmt.Errorf("context field %q: %w", key, types.ErrUnsupportedFieldType)
	}
	return cv, nil
}

func (e Env) random() RandomSource {
	if e.Random != nil {
		return e.Random
	}
	return DefaultRandomSource()
}
