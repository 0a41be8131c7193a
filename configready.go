// Package configready resolves effective setting values from conditional
// override rules.
//
// Each setting entry carries a default value and an ordered list of
// exception rules; the evaluator returns the first fully matching rule's
// value, the caller's override, or the default. Rules can condition on
// request attributes, experiment buckets, deterministic percentage
// rollouts, random sampling, other settings' answers, and host-registered
// custom predicates.
//
// This package is the public face of the internal evaluator; hosts that
// only evaluate settings need nothing else.
package configready

import (
	"github.com/theogravity/config-ready/internal/settings"
	"github.com/theogravity/config-ready/internal/types"
)

// Core domain types.
type (
	Entry         = types.Entry
	ExceptionRule = types.ExceptionRule
	Context       = types.Context
	Overrides     = types.Overrides
	Answers       = types.Answers
	Answer        = types.Answer
)

// Evaluation collaborators.
type (
	Env                = settings.Env
	Registry           = settings.Registry
	ConditionEvaluator = settings.ConditionEvaluator
	EvaluatorFunc      = settings.EvaluatorFunc
	RandomSource       = settings.RandomSource
	CustomCondition    = settings.CustomCondition
)

// PercentageSeedKey is the reserved context attribute consumed by
// percentage conditions.
const PercentageSeedKey = types.PercentageSeedKey

// Sentinel errors surfaced by evaluation and resolution.
var (
	ErrMissingSeed          = types.ErrMissingSeed
	ErrUnknownEvaluator     = types.ErrUnknownEvaluator
	ErrUnsupportedFieldType = types.ErrUnsupportedFieldType
	ErrCircularDependency   = types.ErrCircularDependency
)

// NewRegistry creates an empty custom-evaluator registry.
func NewRegistry() *Registry { return settings.NewRegistry() }

// Evaluate resolves the effective value of one entry for a request
// context. See settings.Evaluate.
func Evaluate(entry *Entry, env Env) (Answer, error) {
	return settings.Evaluate(entry, env)
}

// ResolveAll resolves every entry of a document, feeding answers to
// dependent entries and detecting dependency cycles.
func ResolveAll(entries []Entry, env Env) (map[string]Answer, error) {
	return settings.ResolveAll(entries, env)
}
