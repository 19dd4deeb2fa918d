package extractor

import (
	"strings"

	"github.com/docvet/docvet/internal/domain"
)

const (
	promptPrefix       = ">>> "
	continuationPrefix = "... "
)

// extractDocComments scans a Go source file for interactive examples in
// comments. A line `// >>> expr` opens a segment, `// ...` continues the
// same statement, and any following non-blank comment lines are the output
// the documentation claims. A blank comment line or the end of the comment
// run closes the example; a new prompt inside the same run starts the next
// segment of the same example.
func extractDocComments(sourcePath, src string) []domain.Example {
	var examples []domain.Example

	lines := strings.Split(src, "\n")
	i := 0
	for i < len(lines) {
		text, isComment := commentText(lines[i])
		if !isComment || !strings.HasPrefix(text, promptPrefix) {
			i++
			continue
		}

		startLine := i + 1 // 1-based
		var segments []domain.Segment

		for i < len(lines) {
			text, isComment = commentText(lines[i])
			if !isComment || text == "" {
				break // blank comment line or comment run ended
			}
			if !strings.HasPrefix(text, promptPrefix) {
				// Stray output line with no open prompt; treat as part of
				// the previous segment's expected output.
				break
			}

			seg := domain.Segment{Code: strings.TrimPrefix(text, promptPrefix)}
			i++

			// Continuation lines extend the same statement, never split
			// into a separate example.
			for i < len(lines) {
				text, isComment = commentText(lines[i])
				if !isComment || !strings.HasPrefix(text, continuationPrefix) {
					break
				}
				seg.Code += "\n" + strings.TrimPrefix(text, continuationPrefix)
				i++
			}

			// Expected output: non-blank comment lines up to the next
			// prompt or blank line.
			var want []string
			for i < len(lines) {
				text, isComment = commentText(lines[i])
				if !isComment || text == "" || strings.HasPrefix(text, promptPrefix) {
					break
				}
				want = append(want, text)
				i++
			}
			seg.WantOutput = strings.Join(want, "\n")

			segments = append(segments, seg)
		}

		examples = append(examples, buildDocstringExample(sourcePath, startLine, segments))
		i++
	}

	return examples
}

func buildDocstringExample(sourcePath string, line int, segments []domain.Segment) domain.Example {
	var codes, wants []string
	for _, s := range segments {
		codes = append(codes, s.Code)
		if s.WantOutput != "" {
			wants = append(wants, s.WantOutput)
		}
	}
	code := strings.Join(codes, "\n")

	return domain.Example{
		ID:                   exampleID(sourcePath, line),
		SourcePath:           sourcePath,
		Line:                 line,
		Kind:                 domain.KindDocstring,
		Code:                 code,
		ExpectedOutput:       strings.Join(wants, "\n"),
		Segments:             segments,
		DeclaredDependencies: detectImports(code),
	}
}

// commentText returns the content of a line comment with its marker and
// one leading space stripped, and whether the line is a comment at all.
func commentText(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "//") {
		return "", false
	}
	text := strings.TrimPrefix(trimmed, "//")
	text = strings.TrimPrefix(text, " ")
	return strings.TrimRight(text, " \t"), true
}
