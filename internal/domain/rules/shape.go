package rules

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/docvet/docvet/internal/domain"
)

// Columned is the indexing convention a tabular value produced by an
// example can expose. Either method satisfies the shape rule; projects
// register their own container types through the seed.
type Columned interface {
	Columns() []string
}

// Leveled is the multi-level variant of Columned.
type Leveled interface {
	Levels() []string
}

// StructuralShapeRule checks that every produced value recognized as a
// tabular container exposes the configured level names. Values that are
// not tabular are ignored; the rule only constrains what claims to be a
// table.
func StructuralShapeRule(cfg domain.ShapeConfig) Rule {
	expected := append([]string(nil), cfg.ExpectedLevels...)

	return New("structural_shape", func(ex domain.Example, res domain.ExecutionResult) []domain.Violation {
		if res.Status != domain.StatusSuccess {
			return nil
		}

		var out []domain.Violation
		for name, value := range res.ProducedValues {
			cols, tabular := columnsOf(value)
			if !tabular {
				continue
			}
			if missing := missingLevels(expected, cols); len(missing) > 0 {
				out = append(out, domain.Violation{
					ExampleID: ex.ID,
					Rule:      "structural_shape",
					Severity:  domain.SeverityMedium,
					Message: fmt.Sprintf("binding %q is missing level(s) %s (has %s)",
						name, strings.Join(missing, ", "), strings.Join(cols, ", ")),
					Hint: "tabular values in examples must expose the documented column levels",
				})
			}
		}
		sortViolationsByMessage(out)
		return out
	})
}

// columnsOf recognizes tabular containers: anything implementing Leveled
// or Columned, and plain string-keyed maps of slices (a column table).
func columnsOf(value any) ([]string, bool) {
	switch t := value.(type) {
	case Leveled:
		return t.Levels(), true
	case Columned:
		return t.Columns(), true
	}

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String {
		elem := v.Type().Elem().Kind()
		if elem != reflect.Slice && elem != reflect.Array {
			return nil, false
		}
		var cols []string
		for _, k := range v.MapKeys() {
			cols = append(cols, k.String())
		}
		sort.Strings(cols)
		return cols, true
	}

	return nil, false
}

func missingLevels(expected, have []string) []string {
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[h] = true
	}
	var missing []string
	for _, e := range expected {
		if !set[e] {
			missing = append(missing, e)
		}
	}
	return missing
}
