package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/docvet/docvet/internal/adapters/inbound/cli"
	"github.com/docvet/docvet/internal/domain/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateCommand_NoBaseline(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "docs/ok.md", "```go\nx := 1\n```\n")

	out, err := run(t, "validate", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No baseline")
}

func TestValidateCommand_AcceptCreatesBaseline(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "docs/ok.md", "```go\nx := 1\n```\n")

	out, err := run(t, "validate", "--root", dir, "--accept")
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline written")
	assert.FileExists(t, filepath.Join(dir, ".docvet", "baseline.json"))
}

func TestValidateCommand_BaselineMatch(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "docs/ok.md", "```go\nx := 1\n```\n")

	_, err := run(t, "validate", "--root", dir, "--accept")
	require.NoError(t, err)

	out, err := run(t, "validate", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline match")
}

func TestValidateCommand_RegressionFails(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "docs/ok.md", "```go\nx := 1\n```\n")

	_, err := run(t, "validate", "--root", dir, "--accept")
	require.NoError(t, err)

	// A new failing example regresses against the accepted baseline.
	writeDoc(t, dir, "docs/new.md", "```go\ny := missing + 1\n```\n")

	_, err = run(t, "validate", "--root", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gate.ErrRegression))
}

func TestValidateCommand_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "docs/ok.md", "```go\nx := 1\n```\n")

	out, err := run(t, "validate", "--root", dir, "--no-gate", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"counts_by_status"`)
	assert.Contains(t, out, `"run_id"`)
}

func TestValidateCommand_NoGateSkipsBaseline(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "docs/bad.md", "```go\ny := missing + 1\n```\n")

	// Without the gate, a failing example is reported but never fails the run.
	_, err := run(t, "validate", "--root", dir, "--no-gate")
	assert.NoError(t, err)
}

func TestValidateCommand_CustomBaselinePath(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "docs/ok.md", "```go\nx := 1\n```\n")
	path := filepath.Join(t.TempDir(), "custom.json")

	_, err := run(t, "validate", "--root", dir, "--baseline", path, "--accept")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestValidateCommand_ConfigErrorSurfaces(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, ".docvet.yaml", "timeout_ms: -1\n")

	_, err := run(t, "validate", "--root", dir)
	require.Error(t, err)
	assert.False(t, errors.Is(err, gate.ErrRegression), "config errors are not regressions")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "docvet")
}

func TestBaselineShowCommand_Missing(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "baseline", "show", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No baseline")
}

func TestBaselineShowCommand_AfterAccept(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "docs/ok.md", "```go\nx := 1\n```\n")

	_, err := run(t, "validate", "--root", dir, "--accept")
	require.NoError(t, err)

	out, err := run(t, "baseline", "show", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline")

	out, err = run(t, "baseline", "show", "--root", dir, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"digest"`)
}
