package executor

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"

	"github.com/docvet/docvet/internal/domain"
)

// checkSyntax is the compile step run before execution. Examples come in
// three forms: complete files, top-level declaration snippets, and bare
// statement snippets; each gets a parse attempt. If none parses, the
// example short-circuits to syntax_error without entering the timed phase.
func checkSyntax(code string) *domain.ErrorDetail {
	if _, err := parseFile(code); err == nil {
		return nil
	}
	if _, err := parseFile("package main\n\n" + code); err == nil {
		return nil
	}
	_, err := parseFile(wrapStatements(code))
	if err == nil {
		return nil
	}
	return syntaxDetail(err)
}

func parseFile(src string) (*ast.File, error) {
	fset := token.NewFileSet()
	return parser.ParseFile(fset, "example.go", src, 0)
}

// wrapStatements hoists import lines out of a statement snippet and wraps
// the rest in a function body so it parses as a file.
func wrapStatements(code string) string {
	imports, body := splitImports(code)
	var b strings.Builder
	b.WriteString("package main\n\n")
	b.WriteString(imports)
	b.WriteString("\nfunc main() {\n")
	b.WriteString(body)
	b.WriteString("\n}\n")
	return b.String()
}

func splitImports(code string) (imports, body string) {
	var impLines, bodyLines []string
	inBlock := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
			impLines = append(impLines, line)
		case inBlock:
			impLines = append(impLines, line)
			if strings.HasPrefix(trimmed, ")") {
				inBlock = false
			}
		case strings.HasPrefix(trimmed, "import "):
			impLines = append(impLines, line)
		default:
			bodyLines = append(bodyLines, line)
		}
	}
	return strings.Join(impLines, "\n"), strings.Join(bodyLines, "\n")
}

func syntaxDetail(err error) *domain.ErrorDetail {
	detail := &domain.ErrorDetail{
		Type:    domain.ErrTypeSyntax,
		Message: err.Error(),
	}
	var list scanner.ErrorList
	if ok := asErrorList(err, &list); ok && len(list) > 0 {
		detail.Message = list[0].Msg
		detail.Line = list[0].Pos.Line
	}
	return detail
}

func asErrorList(err error, target *scanner.ErrorList) bool {
	if list, ok := err.(scanner.ErrorList); ok {
		*target = list
		return true
	}
	return false
}

// boundNames statically collects the identifiers an example binds at its
// top level. Only names still in scope at the end of execution matter, so
// bindings inside nested blocks and function literals are ignored.
func boundNames(code string) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || name == "_" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	if f, err := parseFile(code); err == nil {
		collectDeclNames(f.Decls, add)
		return names
	}
	if f, err := parseFile("package main\n\n" + code); err == nil {
		collectDeclNames(f.Decls, add)
		return names
	}
	f, err := parseFile(wrapStatements(code))
	if err != nil {
		return nil
	}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Name.Name != "main" || fn.Body == nil {
			continue
		}
		collectStmtNames(fn.Body.List, add)
	}
	return names
}

func collectDeclNames(decls []ast.Decl, add func(string)) {
	for _, decl := range decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gen.Specs {
			if vs, ok := spec.(*ast.ValueSpec); ok {
				for _, n := range vs.Names {
					add(n.Name)
				}
			}
		}
	}
}

func collectStmtNames(stmts []ast.Stmt, add func(string)) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.AssignStmt:
			for _, lhs := range s.Lhs {
				if ident, ok := lhs.(*ast.Ident); ok {
					add(ident.Name)
				}
			}
		case *ast.DeclStmt:
			if gen, ok := s.Decl.(*ast.GenDecl); ok {
				collectDeclNames([]ast.Decl{gen}, add)
			}
		}
	}
}

// isExpression reports whether a segment is a bare expression whose value
// the interactive transcript should echo.
func isExpression(code string) bool {
	expr, err := parser.ParseExpr(code)
	if err != nil {
		return false
	}
	// Call results are not echoed; examples print explicitly instead.
	if _, isCall := expr.(*ast.CallExpr); isCall {
		return false
	}
	return true
}
