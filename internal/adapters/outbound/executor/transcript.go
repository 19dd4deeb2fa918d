package executor

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"

	"github.com/docvet/docvet/internal/domain"
)

// evalSegments runs an interactive example prompt by prompt, building the
// transcript the way a reader of the documentation would see it: stdout
// produced by each segment, plus the echoed value of bare expressions.
// A transcript that differs from the documented output is an
// output_mismatch, which is distinct from an exception during execution.
func (r *Runner) evalSegments(ctx context.Context, i *interp.Interpreter, ex domain.Example, stdout *boundedBuffer) *domain.ErrorDetail {
	var transcript strings.Builder
	for _, seg := range ex.Segments {
		mark := stdout.Len()

		v, err := i.EvalWithContext(ctx, seg.Code)
		if err != nil {
			return r.classifyEvalError(err)
		}

		transcript.WriteString(stdout.StringFrom(mark))
		if isExpression(seg.Code) && v.IsValid() {
			transcript.WriteString(formatValue(v))
			transcript.WriteString("\n")
		}
	}

	// A snippet that documents no output is held to no output claim;
	// whatever it prints is incidental, not a mismatch.
	if ex.ExpectedOutput == "" && !documentsOutput(ex.Segments) {
		return nil
	}

	want := normalizeTranscript(ex.ExpectedOutput)
	got := normalizeTranscript(transcript.String())
	if want != got {
		return &domain.ErrorDetail{
			Type:    domain.ErrTypeOutputMismatch,
			Message: fmt.Sprintf("documented output %q, actual output %q", want, got),
		}
	}
	return nil
}

// documentsOutput reports whether any segment carries a documented
// output line.
func documentsOutput(segs []domain.Segment) bool {
	for _, s := range segs {
		if s.WantOutput != "" {
			return true
		}
	}
	return false
}

// formatValue renders an echoed expression value with the %v convention.
func formatValue(v reflect.Value) string {
	if !v.CanInterface() {
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("%v", v.Interface())
}

// normalizeTranscript trims trailing whitespace per line and trailing
// blank lines, so cosmetic whitespace never counts as a mismatch.
func normalizeTranscript(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
