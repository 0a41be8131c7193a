// internal/settings/resolver_test.go
package settings

import (
	"errors"
	"strings"
	"testing"

	"github.com/theogravity/config-ready/internal/types"
)

func TestResolveAll_DependencyChain(t *testing.T) {
	entries := []types.Entry{
		{Setting: "base", Value: true},
		{
			Setting: "middle",
			Value:   false,
			Except: []types.ExceptionRule{
				{Value: true, Conditions: map[string]any{"setting": "base"}},
			},
		},
		{
			Setting: "top",
			Value:   false,
			Except: []types.ExceptionRule{
				{Value: true, Conditions: map[string]any{"setting": "middle"}},
			},
		},
	}

	answers, err := ResolveAll(entries, Env{})
	if err != nil {
		t.Fatalf("ResolveAll() error = %v, want nil", err)
	}

	for _, name := range []string{"base", "middle", "top"} {
		if answers[name].Value != true {
			t.Errorf("%s = %v, want true", name, answers[name].Value)
		}
	}
}

func TestResolveAll_CycleDetection(t *testing.T) {
	entries := []types.Entry{
		{
			Setting: "a",
			Value:   true,
			Except: []types.ExceptionRule{
				{Value: false, Conditions: map[string]any{"setting": "b"}},
			},
		},
		{
			Setting: "b",
			Value:   true,
			Except: []types.ExceptionRule{
				{Value: false, Conditions: map[string]any{"setting": "a"}},
			},
		},
	}

	_, err := ResolveAll(entries, Env{})
	if !errors.Is(err, types.ErrCircularDependency) {
		t.Fatalf("ResolveAll() error = %v, want ErrCircularDependency", err)
	}
	if !strings.Contains(err.Error(), "->") {
		t.Errorf("error %q does not name the dependency chain", err)
	}
}

func TestResolveAll_SelfCycle(t *testing.T) {
	entries := []types.Entry{
		{
			Setting: "narcissus",
			Value:   true,
			Except: []types.ExceptionRule{
				{Value: false, Conditions: map[string]any{"setting": "narcissus"}},
			},
		},
	}

	_, err := ResolveAll(entries, Env{})
	if !errors.Is(err, types.ErrCircularDependency) {
		t.Fatalf("ResolveAll() error = %v, want ErrCircularDependency", err)
	}
}

func TestResolveAll_ExternalAnswersAuthoritative(t *testing.T) {
	entries := []types.Entry{
		{Setting: "shadowed", Value: false},
		{
			Setting: "dependent",
			Value:   false,
			Except: []types.ExceptionRule{
				{Value: true, Conditions: map[string]any{"setting": "shadowed"}},
			},
		},
	}

	env := Env{Answers: types.Answers{"shadowed": true}}
	answers, err := ResolveAll(entries, env)
	if err != nil {
		t.Fatalf("ResolveAll() error = %v, want nil", err)
	}

	if answers["shadowed"].Value != true {
		t.Errorf("shadowed = %v, want external answer true", answers["shadowed"].Value)
	}
	if answers["dependent"].Value != true {
		t.Errorf("dependent = %v, want true", answers["dependent"].Value)
	}
}

func TestResolveAll_UnknownDependencyIsFalsy(t *testing.T) {
	entries := []types.Entry{
		{
			Setting: "dependent",
			Value:   "default",
			Except: []types.ExceptionRule{
				{Value: "matched", Conditions: map[string]any{"setting": "nowhere"}},
			},
		},
	}

	answers, err := ResolveAll(entries, Env{})
	if err != nil {
		t.Fatalf("ResolveAll() error = %v, want nil", err)
	}
	if answers["dependent"].Value != "default" {
		t.Errorf("dependent = %v, want %q", answers["dependent"].Value, "default")
	}
}

func TestResolveAll_OverrideFeedsDependents(t *testing.T) {
	entries := []types.Entry{
		{Setting: "parent", Value: false},
		{
			Setting: "child",
			Value:   false,
			Except: []types.ExceptionRule{
				{Value: true, Conditions: map[string]any{"setting": "parent"}},
			},
		},
	}

	env := Env{Overrides: types.Overrides{"parent": true}}
	answers, err := ResolveAll(entries, env)
	if err != nil {
		t.Fatalf("ResolveAll() error = %v, want nil", err)
	}

	if answers["parent"].Value != true {
		t.Errorf("parent = %v, want override true", answers["parent"].Value)
	}
	if answers["child"].Value != true {
		t.Errorf("child = %v, want true (override feeds the dependency)", answers["child"].Value)
	}
}

func TestResolveAll_DuplicateSetting(t *testing.T) {
	entries := []types.Entry{
		{Setting: "twice", Value: true},
		{Setting: "twice", Value: false},
	}

	_, err := ResolveAll(entries, Env{})
	if !errors.Is(err, types.ErrDuplicateSetting) {
		t.Fatalf("ResolveAll() error = %v, want ErrDuplicateSetting", err)
	}
}

func TestResolveAll_SettingListDependencies(t *testing.T) {
	entries := []types.Entry{
		{Setting: "foo", Value: true},
		{Setting: "bar", Value: false},
		{
			Setting: "gated",
			Value:   true,
			Except: []types.ExceptionRule{
				{Value: false, Conditions: map[string]any{"setting": []any{"foo", "bar"}}},
			},
		},
	}

	answers, err := ResolveAll(entries, Env{})
	if err != nil {
		t.Fatalf("ResolveAll() error = %v, want nil", err)
	}
	// bar resolves falsy, so the conjunction fails and the default stands.
	if answers["gated"].Value != true {
		t.Errorf("gated = %v, want true", answers["gated"].Value)
	}
}
