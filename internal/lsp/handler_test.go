package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRuleFile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.rdx")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func pathToURI(path string) string {
	return "file://" + filepath.ToSlash(path)
}

func TestRecompileValidRuleBookProducesNoDiagnostics(t *testing.T) {
	path := writeRuleFile(t, "Add(Succ(x), y) = Succ(Add(x, y))\nAdd(Zero(), y) = y\n")
	h := NewHandler()

	diagnostics, err := h.recompile(pathToURI(path))
	require.NoError(t, err)
	assert.Empty(t, diagnostics)

	h.mu.RLock()
	defer h.mu.RUnlock()
	assert.Contains(t, h.program, path)
	assert.Contains(t, h.content, path)
}

func TestRecompileMalformedRuleBookReportsParseDiagnostic(t *testing.T) {
	path := writeRuleFile(t, "Add(Succ(x), y = Succ(Add(x, y))\n")
	h := NewHandler()

	diagnostics, err := h.recompile(pathToURI(path))
	require.NoError(t, err)
	require.NotEmpty(t, diagnostics)
	assert.Equal(t, "redex-parser", *diagnostics[0].Source)
}

func TestRecompileMissingFileReturnsError(t *testing.T) {
	h := NewHandler()
	_, err := h.recompile(pathToURI(filepath.Join(t.TempDir(), "missing.rdx")))
	assert.Error(t, err)
}

func TestUriToPathRejectsInvalidURI(t *testing.T) {
	_, err := uriToPath("://not a uri")
	assert.Error(t, err)
}
