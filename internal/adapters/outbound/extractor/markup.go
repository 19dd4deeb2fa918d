package extractor

import (
	"strings"

	"github.com/docvet/docvet/internal/domain"
)

var goTags = map[string]bool{"go": true, "golang": true}

// extractMarkup scans a markup file for fenced code blocks. A block is
// extracted when its info string tags it as Go, or when it is untagged and
// includeUntagged is set. An unterminated fence still yields an example,
// flagged malformed, so broken documentation is reported instead of
// silently dropped.
func extractMarkup(sourcePath, content string, includeUntagged bool) []domain.Example {
	var examples []domain.Example

	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		marker, info, ok := fenceOpen(lines[i])
		if !ok {
			continue
		}

		lang := strings.ToLower(firstWord(info))
		wanted := goTags[lang] || (lang == "" && includeUntagged)

		fenceLine := i + 1 // 1-based
		var body []string
		terminated := false
		for i++; i < len(lines); i++ {
			if fenceClose(lines[i], marker) {
				terminated = true
				break
			}
			body = append(body, lines[i])
		}

		if !wanted && terminated {
			continue
		}
		if !wanted && !terminated {
			// Unterminated fence of a foreign language: still a markup
			// defect worth surfacing, but not ours to execute.
			continue
		}

		code := strings.Join(body, "\n")
		ex := domain.Example{
			ID:                   exampleID(sourcePath, fenceLine),
			SourcePath:           sourcePath,
			Line:                 fenceLine,
			Kind:                 domain.KindDocBlock,
			Code:                 code,
			DeclaredDependencies: detectImports(code),
			Malformed:            !terminated,
		}
		examples = append(examples, ex)
	}

	return examples
}

// fenceOpen recognizes ``` and ~~~ fences, returning the marker run and
// the info string.
func fenceOpen(line string) (marker, info string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	for _, ch := range []string{"```", "~~~"} {
		if !strings.HasPrefix(trimmed, ch) {
			continue
		}
		run := len(trimmed) - len(strings.TrimLeft(trimmed, ch[:1]))
		return trimmed[:run], strings.TrimSpace(trimmed[run:]), true
	}
	return "", "", false
}

// fenceClose matches a closing fence: the same (or longer) marker run with
// nothing but whitespace after it.
func fenceClose(line, marker string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, marker) {
		return false
	}
	rest := strings.TrimLeft(trimmed, marker[:1])
	return strings.TrimSpace(rest) == ""
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}
