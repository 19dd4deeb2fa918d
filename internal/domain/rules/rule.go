// Package rules holds the pluggable validators that inspect executed
// examples. Every rule is a pure function of (Example, ExecutionResult);
// rules share no mutable state, which is what makes the per-example
// fan-out safe to parallelize.
package rules

import (
	"fmt"

	"github.com/docvet/docvet/internal/domain"
)

// Rule inspects one executed example and reports zero or more violations.
type Rule interface {
	Name() string
	Inspect(ex domain.Example, res domain.ExecutionResult) []domain.Violation
}

// InspectFunc is the plug-in contract: any function of this shape can be
// registered as a rule, no type embedding required.
type InspectFunc func(ex domain.Example, res domain.ExecutionResult) []domain.Violation

// New wraps a plain function as a named Rule.
func New(name string, fn InspectFunc) Rule {
	return funcRule{name: name, fn: fn}
}

type funcRule struct {
	name string
	fn   InspectFunc
}

func (r funcRule) Name() string { return r.name }

func (r funcRule) Inspect(ex domain.Example, res domain.ExecutionResult) []domain.Violation {
	return r.fn(ex, res)
}

// Registry holds rules in a fixed registration order. Violations for one
// example always come out in that order, so re-runs are byte-for-byte
// reproducible for diffing against a baseline.
type Registry struct {
	rules []Rule
}

func NewRegistry(rules ...Rule) *Registry {
	return &Registry{rules: rules}
}

// Register appends a rule. Order of registration is the order of inspection.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Names returns the registered rule names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name()
	}
	return names
}

// Inspect runs every registered rule against the pair. A rule that panics
// must not abort the run: its failure becomes a single synthetic critical
// violation and all remaining rules still execute.
func (r *Registry) Inspect(ex domain.Example, res domain.ExecutionResult) []domain.Violation {
	var all []domain.Violation
	for _, rule := range r.rules {
		all = append(all, inspectOne(rule, ex, res)...)
	}
	return all
}

func inspectOne(rule Rule, ex domain.Example, res domain.ExecutionResult) (out []domain.Violation) {
	defer func() {
		if rec := recover(); rec != nil {
			out = []domain.Violation{{
				ExampleID: ex.ID,
				Rule:      rule.Name() + ":internal_error",
				Severity:  domain.SeverityCritical,
				Message:   fmt.Sprintf("validator %s panicked: %v", rule.Name(), rec),
			}}
		}
	}()
	return rule.Inspect(ex, res)
}

// Builtin assembles the default registry in its fixed order, honoring the
// disabled list and the pluggable domain/shape configuration.
func Builtin(cfg domain.ProjectConfig) *Registry {
	disabled := make(map[string]bool, len(cfg.Rules.Disabled))
	for _, name := range cfg.Rules.Disabled {
		disabled[name] = true
	}

	candidates := []Rule{
		SyntaxRule(),
		ImportResolutionRule(),
		UndefinedNameRule(),
		OutputMismatchRule(),
		NamingConventionRule(),
	}
	for _, d := range cfg.Rules.Domain {
		candidates = append(candidates, DomainConstraintRule(d))
	}
	if len(cfg.Rules.Shape.ExpectedLevels) > 0 {
		candidates = append(candidates, StructuralShapeRule(cfg.Rules.Shape))
	}

	reg := NewRegistry()
	for _, c := range candidates {
		if disabled[c.Name()] {
			continue
		}
		reg.Register(c)
	}
	return reg
}
