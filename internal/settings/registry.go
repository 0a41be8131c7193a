// internal/settings/registry.go
package settings

import (
	"fmt"

	"github.com/theogravity/config-ready/internal/types"
)

// ConditionEvaluator is a host-supplied predicate invoked by name from a
// customCondition. The condition value comes from the rule's descriptor,
// the context value from the request context's customCondition attribute.
// The result is truthiness-coerced to a match outcome.
type ConditionEvaluator interface {
	Evaluate(conditionValue, contextValue any) any
}

// EvaluatorFunc adapts a plain function to ConditionEvaluator.
type EvaluatorFunc func(conditionValue, contextValue any) any

func (f EvaluatorFunc) Evaluate(conditionValue, contextValue any) any {
	return f(conditionValue, contextValue)
}

// Registry holds named custom evaluators registered by the host
// application. The zero value and a nil registry both behave as empty:
// every lookup fails, which surfaces as ErrUnknownEvaluator at evaluation.
type Registry struct {
	evaluators map[string]ConditionEvaluator
}

// NewRegistry creates an empty evaluator registry.
func NewRegistry() *Registry {
	return &Registry{evaluators: make(map[string]ConditionEvaluator)}
}

// Register adds or replaces an evaluator under name.
func (r *Registry) Register(name string, ev ConditionEvaluator) {
	if r.evaluators == nil {
		r.evaluators = make(map[string]ConditionEvaluator)
	}
	r.evaluators[name] = ev
}

// RegisterFunc is shorthand for Register with an EvaluatorFunc.
func (r *Registry) RegisterFunc(name string, fn func(conditionValue, contextValue any) any) {
	r.Register(name, EvaluatorFunc(fn))
}

// lookup resolves an evaluator by name. A miss is a configuration error,
// never a silent non-match.
func (r *Registry) lookup(name string) (ConditionEvaluator, error) {
	if r != nil {
		if ev, ok := r.evaluators[name]; ok {
			return ev, nil
		}
	}
	return nil, fmt.Errorf("evaluator %q: %w", name, types.ErrUnknownEvaluator)
}
