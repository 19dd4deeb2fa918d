package rules_test

import (
	"math"
	"testing"

	"github.com/docvet/docvet/internal/domain"
	"github.com/docvet/docvet/internal/domain/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ex = domain.Example{ID: "docs/a.md:1", Kind: domain.KindDocBlock}

func resultWith(status domain.Status, detail *domain.ErrorDetail) domain.ExecutionResult {
	return domain.ExecutionResult{ExampleID: ex.ID, Status: status, ErrorDetail: detail}
}

func TestSyntaxRule(t *testing.T) {
	rule := rules.SyntaxRule()

	vs := rule.Inspect(ex, resultWith(domain.StatusSyntaxError, &domain.ErrorDetail{
		Type: domain.ErrTypeSyntax, Message: "expected ')'", Line: 3,
	}))
	require.Len(t, vs, 1)
	assert.Equal(t, domain.SeverityCritical, vs[0].Severity)
	assert.Equal(t, "expected ')'", vs[0].Message)

	assert.Empty(t, rule.Inspect(ex, resultWith(domain.StatusSuccess, nil)))
}

func TestImportResolutionRule(t *testing.T) {
	rule := rules.ImportResolutionRule()

	vs := rule.Inspect(ex, resultWith(domain.StatusImportError, &domain.ErrorDetail{
		Type: domain.ErrTypeImportNotFound, Message: `import "gone/pkg" cannot be resolved in the execution environment`,
	}))
	require.Len(t, vs, 1)
	assert.Equal(t, domain.SeverityCritical, vs[0].Severity)

	// Runtime errors whose message points at a removed API also count.
	vs = rule.Inspect(ex, resultWith(domain.StatusRuntimeError, &domain.ErrorDetail{
		Type: domain.ErrTypeEval, Message: "undefined selector: strings.Reverse",
	}))
	require.Len(t, vs, 1)

	// Ordinary runtime errors do not.
	assert.Empty(t, rule.Inspect(ex, resultWith(domain.StatusRuntimeError, &domain.ErrorDetail{
		Type: domain.ErrTypeEval, Message: "index out of range",
	})))
}

func TestUndefinedNameRule(t *testing.T) {
	rule := rules.UndefinedNameRule()

	vs := rule.Inspect(ex, resultWith(domain.StatusRuntimeError, &domain.ErrorDetail{
		Type: domain.ErrTypeUndefinedName, Message: "undefined: x",
	}))
	require.Len(t, vs, 1)
	assert.Equal(t, domain.SeverityHigh, vs[0].Severity)

	assert.Empty(t, rule.Inspect(ex, resultWith(domain.StatusRuntimeError, &domain.ErrorDetail{
		Type: domain.ErrTypePanic, Message: "panic: boom",
	})))
}

func TestOutputMismatchRule(t *testing.T) {
	rule := rules.OutputMismatchRule()

	vs := rule.Inspect(ex, resultWith(domain.StatusRuntimeError, &domain.ErrorDetail{
		Type: domain.ErrTypeOutputMismatch, Message: `documented output "3", actual output "2"`,
	}))
	require.Len(t, vs, 1)
	assert.Equal(t, domain.SeverityCritical, vs[0].Severity)
}

func TestNamingConventionRule(t *testing.T) {
	rule := rules.NamingConventionRule()

	res := domain.ExecutionResult{
		ExampleID: ex.ID,
		Status:    domain.StatusSuccess,
		ProducedValues: map[string]any{
			"goodName":  1,
			"bad_name":  2,
			"MAX":       3,
			"Result":    4,
			"parseHTTP": 5,
		},
	}

	vs := rule.Inspect(ex, res)
	require.Len(t, vs, 3)
	for _, v := range vs {
		assert.Equal(t, domain.SeverityLow, v.Severity)
	}
	// Violations come out sorted by message regardless of map order.
	assert.Contains(t, vs[0].Message, "MAX")
	assert.Contains(t, vs[1].Message, "Result")
	assert.Contains(t, vs[2].Message, "bad_name")

	assert.Empty(t, rule.Inspect(ex, resultWith(domain.StatusRuntimeError, nil)),
		"naming only applies to successful examples")
}

func TestRegistry_FixedOrder(t *testing.T) {
	reg := rules.Builtin(domain.DefaultConfig())
	assert.Equal(t, []string{
		"syntax",
		"import_resolution",
		"undefined_name",
		"output_mismatch",
		"naming_convention",
	}, reg.Names())
}

func TestBuiltin_DisabledRules(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Rules.Disabled = []string{"naming_convention", "undefined_name"}

	reg := rules.Builtin(cfg)
	assert.Equal(t, []string{"syntax", "import_resolution", "output_mismatch"}, reg.Names())
}

func TestBuiltin_AppendsConfiguredRules(t *testing.T) {
	minVal := 0.0
	cfg := domain.DefaultConfig()
	cfg.Rules.Domain = []domain.DomainCheckConfig{{Name: "rate_range", Match: "rate", Min: &minVal}}
	cfg.Rules.Shape.ExpectedLevels = []string{"M", "C"}

	reg := rules.Builtin(cfg)
	names := reg.Names()
	assert.Equal(t, "rate_range", names[len(names)-2])
	assert.Equal(t, "structural_shape", names[len(names)-1])
}

func TestRegistry_RuleRemovalLeavesOthersUnchanged(t *testing.T) {
	minVal := 0.0
	cfg := domain.DefaultConfig()
	cfg.Rules.Domain = []domain.DomainCheckConfig{{Name: "rate_range", Match: "rate", Min: &minVal}}
	cfg.Rules.Shape.ExpectedLevels = []string{"M", "C"}

	res := domain.ExecutionResult{
		ExampleID: ex.ID,
		Status:    domain.StatusSuccess,
		ProducedValues: map[string]any{
			"bad_name": 1,
			"rate":     -0.5,
			"partial":  table{cols: []string{"M"}},
		},
	}

	full := rules.Builtin(cfg).Inspect(ex, res)
	require.NotEmpty(t, full)

	// Removing any one rule must leave the others' findings untouched.
	for _, name := range rules.Builtin(cfg).Names() {
		reduced := cfg
		reduced.Rules.Disabled = []string{name}

		var want []domain.Violation
		for _, v := range full {
			if v.Rule != name {
				want = append(want, v)
			}
		}
		assert.Equal(t, want, rules.Builtin(reduced).Inspect(ex, res),
			"disabling %s changed what the remaining rules report", name)
	}
}

func TestRegistry_PanickingRuleBecomesViolation(t *testing.T) {
	reg := rules.NewRegistry(
		rules.New("explosive", func(domain.Example, domain.ExecutionResult) []domain.Violation {
			panic("kaboom")
		}),
		rules.New("tail", func(ex domain.Example, _ domain.ExecutionResult) []domain.Violation {
			return []domain.Violation{{ExampleID: ex.ID, Rule: "tail", Severity: domain.SeverityLow, Message: "ran"}}
		}),
	)

	vs := reg.Inspect(ex, resultWith(domain.StatusSuccess, nil))
	require.Len(t, vs, 2)
	assert.Equal(t, "explosive:internal_error", vs[0].Rule)
	assert.Equal(t, domain.SeverityCritical, vs[0].Severity)
	assert.Contains(t, vs[0].Message, "kaboom")
	assert.Equal(t, "tail", vs[1].Rule, "remaining rules still run after a panic")
}

func TestDomainConstraintRule(t *testing.T) {
	minVal, maxVal := 0.0, 1.0
	rule := rules.DomainConstraintRule(domain.DomainCheckConfig{
		Name:     "probability_range",
		Match:    `(?i)prob|rate`,
		Min:      &minVal,
		Max:      &maxVal,
		Severity: domain.SeverityHigh,
	})

	res := domain.ExecutionResult{
		Status: domain.StatusSuccess,
		ProducedValues: map[string]any{
			"successRate": 1.7,
			"prob":        0.4,
			"count":       99, // name does not match, value ignored
			"rates":       []float64{0.2, -0.1},
		},
	}

	vs := rule.Inspect(ex, res)
	require.Len(t, vs, 2)
	assert.Equal(t, domain.SeverityHigh, vs[0].Severity)
	assert.Contains(t, vs[0].Message, "rates")
	assert.Contains(t, vs[1].Message, "successRate")
}

func TestDomainConstraintRule_Finite(t *testing.T) {
	rule := rules.DomainConstraintRule(domain.DomainCheckConfig{
		Name:   "finite_energy",
		Match:  "energy",
		Finite: true,
	})

	inf := domain.ExecutionResult{
		Status:         domain.StatusSuccess,
		ProducedValues: map[string]any{"energy": []float64{1, 2, math.Inf(1)}},
	}
	vs := rule.Inspect(ex, inf)
	require.Len(t, vs, 1)
	assert.Equal(t, domain.SeverityMedium, vs[0].Severity, "default severity when unset")
	assert.Contains(t, vs[0].Message, "not finite")
}

type table struct{ cols []string }

func (t table) Columns() []string { return t.cols }

func TestStructuralShapeRule(t *testing.T) {
	rule := rules.StructuralShapeRule(domain.ShapeConfig{ExpectedLevels: []string{"M", "C", "S"}})

	res := domain.ExecutionResult{
		Status: domain.StatusSuccess,
		ProducedValues: map[string]any{
			"complete":   table{cols: []string{"M", "C", "S"}},
			"incomplete": table{cols: []string{"M"}},
			"scalar":     42, // not tabular, ignored
			"columnMap":  map[string][]int{"M": {1}, "C": {2}},
		},
	}

	vs := rule.Inspect(ex, res)
	require.Len(t, vs, 2)
	assert.Contains(t, vs[0].Message, "columnMap")
	assert.Contains(t, vs[0].Message, "S")
	assert.Contains(t, vs[1].Message, "incomplete")
}
