package extractor

import (
	"go/parser"
	"go/token"
	"sort"
	"strings"
)

// detectImports statically collects the import paths an example declares.
// Full files go through go/parser; snippet-form examples fall back to a
// line scan of their import statements.
func detectImports(code string) []string {
	set := make(map[string]bool)

	fset := token.NewFileSet()
	if f, err := parser.ParseFile(fset, "example.go", code, parser.ImportsOnly); err == nil {
		for _, imp := range f.Imports {
			set[strings.Trim(imp.Path.Value, `"`)] = true
		}
		return sortedSet(set)
	}

	inBlock := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
		case inBlock && strings.HasPrefix(trimmed, ")"):
			inBlock = false
		case inBlock:
			if p := importPath(trimmed); p != "" {
				set[p] = true
			}
		case strings.HasPrefix(trimmed, "import "):
			if p := importPath(strings.TrimPrefix(trimmed, "import ")); p != "" {
				set[p] = true
			}
		}
	}

	return sortedSet(set)
}

// importPath extracts the quoted path from an import spec line, tolerating
// aliases and dot imports.
func importPath(spec string) string {
	start := strings.Index(spec, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(spec[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return spec[start+1 : start+1+end]
}

func sortedSet(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
