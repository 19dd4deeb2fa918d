package domain

// ExampleKind distinguishes markup-embedded code blocks from interactive
// doc-comment snippets.
type ExampleKind string

const (
	KindDocBlock  ExampleKind = "doc_block"
	KindDocstring ExampleKind = "docstring_example"
)

// Example is one discovered code example. Examples are created once per
// extractor run and never mutated afterwards.
type Example struct {
	ID                   string      `json:"id"`
	SourcePath           string      `json:"source_path"`
	Line                 int         `json:"line"`
	Kind                 ExampleKind `json:"kind"`
	Code                 string      `json:"code"`
	ExpectedOutput       string      `json:"expected_output,omitempty"`
	Segments             []Segment   `json:"segments,omitempty"`
	DeclaredDependencies []string    `json:"declared_dependencies,omitempty"`
	Malformed            bool        `json:"malformed,omitempty"`
}

// Segment is a single prompt of an interactive doc-comment example:
// the code entered at the prompt plus the output the documentation
// claims it produces.
type Segment struct {
	Code       string `json:"code"`
	WantOutput string `json:"want_output,omitempty"`
}

// Status classifies the outcome of executing one Example.
type Status string

const (
	StatusSuccess      Status = "success"
	StatusSyntaxError  Status = "syntax_error"
	StatusImportError  Status = "import_error"
	StatusRuntimeError Status = "runtime_error"
	StatusTimeout      Status = "timeout"
)

// AllStatuses lists every status bucket in a fixed order, used when
// rendering the strict status partition.
var AllStatuses = []Status{
	StatusSuccess,
	StatusSyntaxError,
	StatusImportError,
	StatusRuntimeError,
	StatusTimeout,
}

// ErrorDetail type names set by the executor.
const (
	ErrTypeUnterminatedBlock = "unterminated_block"
	ErrTypeSyntax            = "syntax_error"
	ErrTypeImportNotFound    = "import_not_found"
	ErrTypeUndefinedName     = "undefined_name"
	ErrTypeOutputMismatch    = "output_mismatch"
	ErrTypePanic             = "panic"
	ErrTypeEval              = "eval_error"
)

// ErrorDetail is the structured trace attached to non-success results.
type ErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ExecutionResult is the captured outcome of running one Example in
// isolation. ProducedValues holds the bindings still in scope at the end
// of execution; it is consumed in-process by rule validators and never
// serialized.
type ExecutionResult struct {
	ExampleID      string         `json:"example_id"`
	Status         Status         `json:"status"`
	Stdout         string         `json:"stdout,omitempty"`
	Stderr         string         `json:"stderr,omitempty"`
	ProducedValues map[string]any `json:"-"`
	DurationMS     int64          `json:"duration_ms"`
	ErrorDetail    *ErrorDetail   `json:"error_detail,omitempty"`
}

const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// SeverityRank orders severities for display, highest first.
func SeverityRank(severity string) int {
	switch severity {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

// ValidSeverity reports whether s is a known severity name.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Violation is a single rule failure tied to one Example.
type Violation struct {
	ExampleID string `json:"example_id"`
	Rule      string `json:"rule"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Hint      string `json:"hint,omitempty"`
}

// Identity is the stable violation identity used by baseline waivers.
// It deliberately excludes the message so cosmetic rewording does not
// invalidate an accepted waiver.
func (v Violation) Identity() string {
	return v.Rule + "|" + v.ExampleID
}
