// Package extractor discovers code examples in a documentation tree:
// fenced Go blocks in markup files and interactive ">>>" snippets in Go
// doc comments. Extraction never executes anything.
package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docvet/docvet/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"bin":          true,
	"testdata":     true,
}

// FileExtractor implements domain.CorpusExtractor by walking the filesystem.
type FileExtractor struct{}

func New() *FileExtractor {
	return &FileExtractor{}
}

// Extract walks root and returns examples in discovery order: WalkDir's
// lexical file order, then top-to-bottom within each file. Repeated runs
// on an unchanged tree yield identical sequences.
func (e *FileExtractor) Extract(root string, cfg domain.ProjectConfig) ([]domain.Example, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	extraSkip := make(map[string]bool, len(cfg.ExcludePaths))
	for _, p := range cfg.ExcludePaths {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = domain.DefaultConfig().Patterns
	}

	var examples []domain.Example

	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if skipDirs[d.Name()] || extraSkip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(absRoot, path)
		relPath = filepath.ToSlash(relPath)

		switch {
		case matchesAny(patterns, d.Name()):
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			examples = append(examples, extractMarkup(relPath, string(data), cfg.IncludeUntagged)...)

		case strings.HasSuffix(d.Name(), ".go") && !strings.HasSuffix(d.Name(), "_test.go"):
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			examples = append(examples, extractDocComments(relPath, string(data))...)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return examples, nil
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func exampleID(sourcePath string, line int) string {
	return fmt.Sprintf("%s:%d", sourcePath, line)
}
