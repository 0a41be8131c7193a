// internal/settings/compile.go
package settings

import (
	"fmt"
	"sort"

	"github.com/theogravity/config-ready/internal/types"
)

/*
 * Entry compilation and validation.
 *
 * Compiles types.Entry to CompiledEntry with each raw condition spec
 * resolved to an explicit ConditionKind variant. Condition keys in a rule
 * are heterogeneous: reserved keys (setting, percentage, randomPercentage,
 * customCondition) select dedicated match semantics, every other key is a
 * generic context comparison whose semantics depend on the value shape
 * (scalar equality vs. sequence membership).
 *
 * Why compile-time dispatch: Resolving the value shape once at parse time
 * turns a per-evaluation type-sniffing branch into an exhaustively matched
 * variant, and moves unsupported-shape errors to configuration load time.
 *
 * Why sorted condition keys: Conditions in one rule combine with AND, so
 * order cannot change the match outcome, but deterministic ordering keeps
 * error reporting and evaluation traces stable across identical inputs.
 */

// ConditionKind discriminates the compiled condition variants.
type ConditionKind int

const (
	KindScalar            ConditionKind = iota // context[key] equals a scalar
	KindMembership                             // context[key] equals any sequence element
	KindSettingDependency                      // every referenced answer is truthy
	KindPercentage                             // deterministic seed bucketing
	KindRandomPercentage                       // fresh uniform draw per evaluation
	KindCustomPredicate                        // host-registered evaluator by name
)

// Reserved condition keys with dedicated semantics.
const (
	keySetting          = "setting"
	keyPercentage       = "percentage"
	keyRandomPercentage = "randomPercentage"
	keyCustomCondition  = "customCondition"
)

// Structured customCondition descriptor fields.
const (
	fieldEvaluator      = "evaluator"
	fieldDimensionValue = "dimensionValue"
)

// CompiledCondition is one pre-processed condition ready for evaluation.
// Only the fields relevant to Kind are populated.
type CompiledCondition struct {
	Key      string
	Kind     ConditionKind
	Scalar   any      // KindScalar comparison value
	Members  []any    // KindMembership candidates
	Settings []string // KindSettingDependency referenced setting names
	Percent  float64  // KindPercentage / KindRandomPercentage threshold
	// KindCustomPredicate descriptor
	Evaluator string
	Dimension any
}

// CompiledRule is one exception rule with pre-dispatched conditions.
// A rule with zero conditions is vacuously true.
type CompiledRule struct {
	Value      any
	Conditions []CompiledCondition
}

// CompiledEntry is a fully pre-processed entry ready for evaluation.
type CompiledEntry struct {
	Setting string
	Default any
	Rules   []CompiledRule
}

// Compile validates and pre-processes an entry for evaluation.
func Compile(entry *types.Entry) (*CompiledEntry, error) {
	if entry.Setting == "" {
		return nil, types.ErrEmptySetting
	}

	compiled := &CompiledEntry{
		Setting: entry.Setting,
		Default: entry.Value,
		Rules:   make([]CompiledRule, 0, len(entry.Except)),
	}

	for i, rule := range entry.Except {
		cr := CompiledRule{
			Value:      rule.Value,
			Conditions: make([]CompiledCondition, 0, len(rule.Conditions)),
		}

		// Sorted keys keep evaluation order and error reporting stable.
		keys := make([]string, 0, len(rule.Conditions))
		for k := range rule.Conditions {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			cc, err := compileCondition(key, rule.Conditions[key])
			if err != nil {
				return nil, fmt.Errorf("setting %q rule %d: %w", entry.Setting, i, err)
			}
			cr.Conditions = append(cr.Conditions, cc)
		}

		compiled.Rules = append(compiled.Rules, cr)
	}

	return compiled, nil
}

// compileCondition resolves one raw condition spec to its variant.
// Reserved keys are dispatched by name, everything else by value shape.
func compileCondition(key string, raw any) (CompiledCondition, error) {
	switch key {
	case keySetting:
		names, err := settingNames(raw)
		if err != nil {
			return CompiledCondition{}, err
		}
		return CompiledCondition{Key: key, Kind: KindSettingDependency, Settings: names}, nil

	case keyPercentage, keyRandomPercentage:
		p, ok := toFloat64(raw)
		if !ok {
			return CompiledCondition{}, fmt.Errorf("condition %q: %w", key, types.ErrUnsupportedFieldType)
		}
		if p < 0 || p > 100 {
			return CompiledCondition{}, fmt.Errorf("condition %q: %w", key, types.ErrPercentageOutOfRange)
		}
		kind := KindPercentage
		if key == keyRandomPercentage {
			kind = KindRandomPercentage
		}
		return CompiledCondition{Key: key, Kind: kind, Percent: p}, nil

	case keyCustomCondition:
		name, dimension, err := customDescriptor(raw)
		if err != nil {
			return CompiledCondition{}, err
		}
		return CompiledCondition{Key: key, Kind: KindCustomPredicate, Evaluator: name, Dimension: dimension}, nil
	}

	switch {
	case isPrimitive(raw):
		return CompiledCondition{Key: key, Kind: KindScalar, Scalar: raw}, nil
	case isSequence(raw):
		members, err := sequenceMembers(key, raw)
		if err != nil {
			return CompiledCondition{}, err
		}
		return CompiledCondition{Key: key, Kind: KindMembership, Members: members}, nil
	default:
		return CompiledCondition{}, fmt.Errorf("condition %q: %w", key, types.ErrUnsupportedFieldType)
	}
}

// settingNames accepts a single name or a sequence of names.
func settingNames(raw any) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []any:
		names := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("condition %q: %w", keySetting, types.ErrUnsupportedFieldType)
			}
			names = append(names, s)
		}
		return names, nil
	case []string:
		return v, nil
	default:
		return nil, fmt.Errorf("condition %q: %w", keySetting, types.ErrUnsupportedFieldType)
	}
}

// customDescriptor accepts the {evaluator, dimensionValue} structured shape,
// either as a decoded JSON object or as the typed CustomCondition helper.
func customDescriptor(raw any) (string, any, error) {
	switch v := raw.(type) {
	case map[string]any:
		name, ok := v[fieldEvaluator].(string)
		if !ok || name == "" {
			return "", nil, fmt.Errorf("condition %q: %w", keyCustomCondition, types.ErrUnsupportedFieldType)
		}
		return name, v[fieldDimensionValue], nil
	case CustomCondition:
		if v.Evaluator == "" {
			return "", nil, fmt.Errorf("condition %q: %w", keyCustomCondition, types.ErrUnsupportedFieldType)
		}
		return v.Evaluator, v.DimensionValue, nil
	default:
		return "", nil, fmt.Errorf("condition %q: %w", keyCustomCondition, types.ErrUnsupportedFieldType)
	}
}

// CustomCondition is the typed form of the customCondition descriptor for
// hosts that build entries programmatically instead of decoding JSON.
type CustomCondition struct {
	Evaluator      string `json:"evaluator"`
	DimensionValue any    `json:"dimensionValue"`
}

// sequenceMembers validates that every element of a generic sequence is a
// primitive scalar.
func sequenceMembers(key string, raw any) ([]any, error) {
	var elems []any
	switch v := raw.(type) {
	case []any:
		elems = v
	case []string:
		elems = make([]any, len(v))
		for i, s := range v {
			elems[i] = s
		}
	}
	for _, elem := range elems {
		if !isPrimitive(elem) {
			return nil, fmt.Errorf("condition %q: %w", key, types.ErrUnsupportedFieldType)
		}
	}
	return elems, nil
}

// isPrimitive reports whether v is a comparable scalar: string, boolean, or
// any numeric type produced by JSON decoding or typed Go callers.
func isPrimitive(v any) bool {
	switch v.(type) {
	case string, bool,
		float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

// isSequence reports whether v is a supported sequence shape.
func isSequence(v any) bool {
	switch v.(type) {
	case []any, []string:
		return true
	default:
		return false
	}
}
