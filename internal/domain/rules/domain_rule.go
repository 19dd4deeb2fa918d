package rules

import (
	"fmt"
	"math"
	"reflect"
	"regexp"

	"github.com/docvet/docvet/internal/domain"
)

// DomainConstraintRule builds a project-specific numeric validator from a
// declarative config entry. The rule inspects every numeric value bound by
// a successful example whose name matches the pattern; the physics or
// business meaning of the constraint lives entirely in the project's
// configuration, not here.
func DomainConstraintRule(cfg domain.DomainCheckConfig) Rule {
	pattern := regexp.MustCompile(cfg.Match)
	severity := cfg.Severity
	if severity == "" {
		severity = domain.SeverityMedium
	}

	return New(cfg.Name, func(ex domain.Example, res domain.ExecutionResult) []domain.Violation {
		if res.Status != domain.StatusSuccess {
			return nil
		}

		var out []domain.Violation
		for name, value := range res.ProducedValues {
			if !pattern.MatchString(name) {
				continue
			}
			for _, n := range numericValues(value) {
				if reason := checkNumber(cfg, n); reason != "" {
					out = append(out, domain.Violation{
						ExampleID: ex.ID,
						Rule:      cfg.Name,
						Severity:  severity,
						Message:   fmt.Sprintf("binding %q: %s", name, reason),
						Hint:      "the example produces a value outside the documented domain",
					})
					break // one violation per binding is enough
				}
			}
		}
		sortViolationsByMessage(out)
		return out
	})
}

func checkNumber(cfg domain.DomainCheckConfig, n float64) string {
	if cfg.Finite && (math.IsNaN(n) || math.IsInf(n, 0)) {
		return fmt.Sprintf("value %v is not finite", n)
	}
	if cfg.Min != nil && n < *cfg.Min {
		return fmt.Sprintf("value %v is below minimum %v", n, *cfg.Min)
	}
	if cfg.Max != nil && n > *cfg.Max {
		return fmt.Sprintf("value %v is above maximum %v", n, *cfg.Max)
	}
	return ""
}

// numericValues extracts the float64 view of a produced value: scalars
// directly, slices and arrays element-wise. Non-numeric values contribute
// nothing.
func numericValues(value any) []float64 {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return []float64{v.Float()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []float64{float64(v.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return []float64{float64(v.Uint())}
	case reflect.Slice, reflect.Array:
		var out []float64
		for i := 0; i < v.Len(); i++ {
			out = append(out, numericValues(v.Index(i).Interface())...)
		}
		return out
	default:
		return nil
	}
}
