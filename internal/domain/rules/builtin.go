package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/docvet/docvet/internal/domain"
)

// missingAPIPattern matches runtime errors that indicate documentation
// referencing a removed or renamed API rather than an ordinary bug.
var missingAPIPattern = regexp.MustCompile(
	`cannot find package|unable to find source|undefined selector|has no field or method`,
)

// SyntaxRule flags examples that never compiled.
func SyntaxRule() Rule {
	return New("syntax", func(ex domain.Example, res domain.ExecutionResult) []domain.Violation {
		if res.Status != domain.StatusSyntaxError {
			return nil
		}
		msg := "example does not parse"
		if res.ErrorDetail != nil {
			msg = res.ErrorDetail.Message
		}
		return []domain.Violation{{
			ExampleID: ex.ID,
			Rule:      "syntax",
			Severity:  domain.SeverityCritical,
			Message:   msg,
			Hint:      "fix the code block so it parses as Go",
		}}
	})
}

// ImportResolutionRule flags unresolvable imports and runtime errors whose
// message matches a missing-package/missing-selector pattern. Both mean the
// documentation references an API that no longer exists.
func ImportResolutionRule() Rule {
	return New("import_resolution", func(ex domain.Example, res domain.ExecutionResult) []domain.Violation {
		var msg string
		switch {
		case res.Status == domain.StatusImportError:
			msg = "example imports an unavailable package"
			if res.ErrorDetail != nil {
				msg = res.ErrorDetail.Message
			}
		case res.Status == domain.StatusRuntimeError && res.ErrorDetail != nil &&
			missingAPIPattern.MatchString(res.ErrorDetail.Message):
			msg = res.ErrorDetail.Message
		default:
			return nil
		}
		return []domain.Violation{{
			ExampleID: ex.ID,
			Rule:      "import_resolution",
			Severity:  domain.SeverityCritical,
			Message:   msg,
			Hint:      "the documented API may have been removed or renamed",
		}}
	})
}

// UndefinedNameRule flags references to names that were never defined.
// These are usually missing-setup documentation bugs, not deeper logic
// bugs, so they rank below import failures.
func UndefinedNameRule() Rule {
	return New("undefined_name", func(ex domain.Example, res domain.ExecutionResult) []domain.Violation {
		if res.Status != domain.StatusRuntimeError || res.ErrorDetail == nil {
			return nil
		}
		if res.ErrorDetail.Type != domain.ErrTypeUndefinedName {
			return nil
		}
		return []domain.Violation{{
			ExampleID: ex.ID,
			Rule:      "undefined_name",
			Severity:  domain.SeverityHigh,
			Message:   res.ErrorDetail.Message,
			Hint:      "the example probably omits setup code; define the name or seed it",
		}}
	})
}

// OutputMismatchRule flags interactive examples whose claimed output does
// not match what actually ran.
func OutputMismatchRule() Rule {
	return New("output_mismatch", func(ex domain.Example, res domain.ExecutionResult) []domain.Violation {
		if res.Status != domain.StatusRuntimeError || res.ErrorDetail == nil {
			return nil
		}
		if res.ErrorDetail.Type != domain.ErrTypeOutputMismatch {
			return nil
		}
		return []domain.Violation{{
			ExampleID: ex.ID,
			Rule:      "output_mismatch",
			Severity:  domain.SeverityCritical,
			Message:   res.ErrorDetail.Message,
			Hint:      "update the documented output to match the code, or fix the code",
		}}
	})
}

// NamingConventionRule nudges examples toward idiomatic lowerCamelCase
// bindings. Documentation is read as a style reference, so snake_case or
// ALLCAPS bindings in examples propagate into user code.
func NamingConventionRule() Rule {
	return New("naming_convention", func(ex domain.Example, res domain.ExecutionResult) []domain.Violation {
		if res.Status != domain.StatusSuccess {
			return nil
		}
		var out []domain.Violation
		for name := range res.ProducedValues {
			if reason := namingIssue(name); reason != "" {
				out = append(out, domain.Violation{
					ExampleID: ex.ID,
					Rule:      "naming_convention",
					Severity:  domain.SeverityLow,
					Message:   fmt.Sprintf("binding %q %s", name, reason),
					Hint:      "use lowerCamelCase names in examples",
				})
			}
		}
		sortViolationsByMessage(out)
		return out
	})
}

func namingIssue(name string) string {
	if strings.Contains(name, "_") {
		return "uses snake_case"
	}
	if name == strings.ToUpper(name) && len(name) > 1 {
		return "is all uppercase"
	}
	words := camelcase.Split(name)
	for _, w := range words {
		if len(w) > 1 && w == strings.ToUpper(w) && strings.ContainsAny(w, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
			// Acronym runs like parseHTTPResp are fine.
			return ""
		}
	}
	if name[0] >= 'A' && name[0] <= 'Z' {
		return "is exported-style; examples bind locals"
	}
	return ""
}

// ProducedValues iterate in map order; sort so violation order within one
// example stays reproducible.
func sortViolationsByMessage(vs []domain.Violation) {
	for i := 1; i < len(vs); i++ {
		for j := i; j > 0 && vs[j].Message < vs[j-1].Message; j-- {
			vs[j], vs[j-1] = vs[j-1], vs[j]
		}
	}
}
