package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inspectionYAML = `
building:
  name: Marina Tower
inspector:
  name: Sara Ali
completed_at: 2024-03-02T09:30:00Z
checklist:
  - question: Exit signs lit?
    status: Compliant
  - question: Extinguishers serviced?
    status: Non-Compliant
    nfpa_code: NFPA 10 7.3
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderCommand(t *testing.T) {
	in := writeInput(t, "marina.yaml", inspectionYAML)
	out, err := run(t, "render", in)
	require.NoError(t, err)

	pdfPath := filepath.Join(filepath.Dir(in), "marina.pdf")
	assert.Contains(t, out, pdfPath)
	assert.Contains(t, out, "1 page(s)")

	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderCommandStdout(t *testing.T) {
	in := writeInput(t, "marina.yml", inspectionYAML)
	out, err := run(t, "render", in, "-o", "-")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix([]byte(out), []byte("%PDF-")))
}

func TestRenderCommandInvalid(t *testing.T) {
	in := writeInput(t, "bad.json", `{"building": {"name": "B"}, "inspector": {"name": ""}}`)
	_, err := run(t, "render", in)
	assert.ErrorContains(t, err, "InspectorName")
}

func TestValidateCommand(t *testing.T) {
	good := writeInput(t, "good.yaml", inspectionYAML)
	out, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   "+good+": 2 entries, watermarked footer")

	bad := writeInput(t, "bad.yaml", "building:\n  name: B\ninspector:\n  name: I\nchecklist:\n  - question: Q\n    status: maybe\n")
	out, err = run(t, "validate", good, bad)
	assert.ErrorContains(t, err, "1 of 2 file(s) invalid")
	assert.Contains(t, out, "FAIL "+bad)
}

func TestFontsCommand(t *testing.T) {
	out, err := run(t, "fonts")
	require.NoError(t, err)
	assert.Contains(t, out, "family:")
	assert.Contains(t, out, "arabic:")
}

func TestConfigFlag(t *testing.T) {
	cfg := writeInput(t, "config.yaml", "report:\n  verification_code: bogus\n")
	_, err := run(t, "--config", cfg, "fonts")
	assert.ErrorContains(t, err, "bogus")
}
