// Package types provides domain models shared across config-ready components.
//
// Zero-dependency design: types.go and errors.go use only encoding/json so
// host applications embedding the evaluator pull in nothing beyond the
// standard library. ID utilities in ids.go import uuid but are isolated for
// selective inclusion.
package types

import "encoding/json"

// Entry is the full definition of one configurable setting: a default value
// plus an ordered list of conditional overrides. Order of Except is
// evaluation priority; the first fully matching rule wins.
type Entry struct {
	Setting string          `json:"setting"`
	Value   any             `json:"value"`
	Except  []ExceptionRule `json:"except,omitempty"`
}

// ExceptionRule is one conditional override under an entry. Value is the
// value returned when every condition matches. Conditions holds the raw
// condition specs keyed by condition name; interpretation of each key is
// deferred to settings.Compile.
type ExceptionRule struct {
	Value      any
	Conditions map[string]any
}

// ruleValueKey is reserved inside a rule object; every other key is a
// condition.
const ruleValueKey = "value"

// UnmarshalJSON implements json.Unmarshaler.
// A rule object mixes the reserved "value" key with arbitrary condition
// keys, so the flat JSON object is split here rather than mapped to struct
// fields.
func (r *ExceptionRule) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Value = raw[ruleValueKey]
	delete(raw, ruleValueKey)
	r.Conditions = raw
	return nil
}

// MarshalJSON implements json.Marshaler, reassembling the flat rule object.
func (r ExceptionRule) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Conditions)+1)
	for k, v := range r.Conditions {
		flat[k] = v
	}
	flat[ruleValueKey] = r.Value
	return json.Marshal(flat)
}

// PercentageSeedKey is the reserved context attribute consumed by
// percentage conditions for deterministic bucketing.
const PercentageSeedKey = "percentageSeed"

// Context holds request-time attribute values, keyed by attribute name.
// Values compared by the evaluator must be primitive scalars (string,
// number, boolean).
type Context map[string]any

// Overrides maps setting names to forced values that bypass rule
// evaluation entirely.
type Overrides map[string]any

// Answers maps setting names to previously resolved values. Produced by the
// settings-graph resolver, consumed read-only by the evaluator when a rule
// declares a "setting" dependency.
type Answers map[string]any

// Answer is the result of evaluating one entry: the setting name plus
// exactly one of the override value, a matching rule's value, or the
// entry's default.
type Answer struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}
