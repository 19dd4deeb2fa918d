package executor

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"

	"github.com/docvet/docvet/internal/domain"
)

var (
	posPrefix        = regexp.MustCompile(`^(\d+):(\d+): `)
	undefinedPattern = regexp.MustCompile(`undefined: (\S+)$`)
	importPattern    = regexp.MustCompile(`unable to find source|cannot find package|import .* error`)
)

// classifyEvalError maps a yaegi evaluation error onto the structured
// error detail taxonomy. Everything here is a runtime_error at the status
// level; the detail type is what the rule validators discriminate on.
func (r *Runner) classifyEvalError(err error) *domain.ErrorDetail {
	var p interp.Panic
	if errors.As(err, &p) {
		return &domain.ErrorDetail{
			Type:    domain.ErrTypePanic,
			Message: fmt.Sprintf("panic: %v", p.Value),
		}
	}

	msg := err.Error()
	detail := &domain.ErrorDetail{Type: domain.ErrTypeEval, Message: msg}

	if m := posPrefix.FindStringSubmatch(msg); m != nil {
		detail.Line, _ = strconv.Atoi(m[1])
		msg = strings.TrimPrefix(msg, m[0])
		detail.Message = msg
	}

	switch m := undefinedPattern.FindStringSubmatch(msg); {
	case m != nil:
		name, _, _ := strings.Cut(m[1], ".")
		if r.pkgNames[name] {
			// A resolvable package referenced without its import line is
			// an import problem, not a missing binding.
			detail.Type = domain.ErrTypeImportNotFound
		} else if !strings.Contains(m[1], ".") {
			detail.Type = domain.ErrTypeUndefinedName
		}
	case importPattern.MatchString(msg) || strings.Contains(msg, "undefined selector"):
		detail.Type = domain.ErrTypeImportNotFound
	}

	return detail
}
