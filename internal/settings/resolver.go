// internal/settings/resolver.go
package settings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theogravity/config-ready/internal/types"
)

/*
 * Settings-graph resolution.
 *
 * Computes the answers for a whole document: entries may depend on each
 * other through setting conditions, so resolution walks the dependency
 * graph depth-first, resolving each referenced setting before the entry
 * that names it. A visiting set detects cycles; a cycle is a configuration
 * error, not an evaluation outcome.
 *
 * Dependencies on settings absent from both the document and the
 * caller-supplied answers stay unresolved and read as falsy, matching the
 * single-entry semantics for an absent answer.
 *
 * Entries resolve in name order so repeated runs over the same document
 * produce identical random draws and identical error reporting.
 */

type resolveState int

const (
	stateUnresolved resolveState = iota
	stateResolving
	stateResolved
)

type resolver struct {
	entries map[string]*CompiledEntry
	env     Env
	answers types.Answers
	state   map[string]resolveState
	results map[string]types.Answer
	stack   []string
}

// ResolveAll evaluates every entry of a document, feeding each resolved
// answer into the answers map consumed by dependent entries. Answers
// already present in env.Answers are taken as resolved externally and are
// never recomputed.
func ResolveAll(entries []types.Entry, env Env) (map[string]types.Answer, error) {
	compiled := make(map[string]*CompiledEntry, len(entries))
	names := make([]string, 0, len(entries))

	for i := range entries {
		ce, err := Compile(&entries[i])
		if err != nil {
			return nil, err
		}
		if _, ok := compiled[ce.Setting]; ok {
			return nil, fmt.Errorf("setting %q: %w", ce.Setting, types.ErrDuplicateSetting)
		}
		compiled[ce.Setting] = ce
		names = append(names, ce.Setting)
	}
	sort.Strings(names)

	answers := make(types.Answers, len(env.Answers)+len(entries))
	for k, v := range env.Answers {
		answers[k] = v
	}

	r := &resolver{
		entries: compiled,
		env:     env,
		answers: answers,
		state:   make(map[string]resolveState, len(entries)),
		results: make(map[string]types.Answer, len(entries)),
	}

	for _, name := range names {
		if err := r.resolve(name); err != nil {
			return nil, err
		}
	}

	return r.results, nil
}

// resolve evaluates one entry after resolving its dependencies.
func (r *resolver) resolve(name string) error {
	switch r.state[name] {
	case stateResolved:
		return nil
	case stateResolving:
		chain := append(append([]string{}, r.stack...), name)
		return fmt.Errorf("%w: %s", types.ErrCircularDependency, strings.Join(chain, " -> "))
	}

	// Externally supplied answers are authoritative and never recomputed,
	// even when the document also defines the setting.
	if v, external := r.env.Answers[name]; external {
		r.state[name] = stateResolved
		if _, inDoc := r.entries[name]; inDoc {
			r.results[name] = types.Answer{Key: name, Value: v}
		}
		return nil
	}

	entry, ok := r.entries[name]
	if !ok {
		// Unknown setting: no document entry and no external answer.
		// Reads as falsy wherever it is referenced.
		return nil
	}

	r.state[name] = stateResolving
	r.stack = append(r.stack, name)

	for _, rule := range entry.Rules {
		for _, cond := range rule.Conditions {
			if cond.Kind != KindSettingDependency {
				continue
			}
			for _, dep := range cond.Settings {
				if err := r.resolve(dep); err != nil {
					return err
				}
			}
		}
	}

	env := r.env
	env.Answers = r.answers
	answer, err := EvaluateCompiled(entry, env)
	if err != nil {
		return err
	}

	r.stack = r.stack[:len(r.stack)-1]
	r.state[name] = stateResolved
	r.results[name] = answer
	r.answers[name] = answer.Value
	return nil
}
