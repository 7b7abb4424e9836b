package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FredrikPedersen/nullref/internal/scan"
)

// buildNilscan compiles the nilscan binary into a temp dir.
func buildNilscan(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "nilscan")
	wd, err := os.Getwd()
	require.NoError(t, err)

	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = wd
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed:\n%s", out)
	return binPath
}

// runNilscan runs the binary in dir and returns stdout, stderr and the exit
// code.
func runNilscan(t *testing.T, bin, dir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		require.True(t, errors.As(err, &exitErr), "run failed: %v", err)
		code = exitErr.ExitCode()
	}
	return stdout.String(), stderr.String(), code
}

func TestCLI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	bin := buildNilscan(t)
	project := derefProject(t)

	t.Run("json report fails on findings", func(t *testing.T) {
		stdout, _, code := runNilscan(t, bin, project, "--format", "json")
		assert.Equal(t, 1, code)

		var report scan.Report
		require.NoError(t, json.Unmarshal([]byte(stdout), &report))
		require.Len(t, report.Findings, 1)
		assert.Equal(t, scan.RuleNilPointer, report.Findings[0].Rule)
		assert.Equal(t, 5, report.Findings[0].Line)
	})

	t.Run("findings tolerated", func(t *testing.T) {
		stdout, _, code := runNilscan(t, bin, t.TempDir(), "--dir", project, "--fail-on-findings=false")
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, "NIL002")
		assert.Contains(t, stdout, "Total findings: 1")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, stderr, code := runNilscan(t, bin, project, "--format", "xml")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, `unknown format "xml"`)
	})

	t.Run("positional args rejected", func(t *testing.T) {
		_, stderr, code := runNilscan(t, bin, project, "extra")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "nilscan:")
	})

	t.Run("cached flatbuffers report", func(t *testing.T) {
		cacheDir := t.TempDir()
		args := []string{"--format", "fb", "--cache-dir", cacheDir, "--log-level", "info", "--fail-on-findings=false"}

		first, stderr, code := runNilscan(t, bin, project, args...)
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stderr, "cache miss")

		second, stderr, code := runNilscan(t, bin, project, args...)
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stderr, "cache hit")
		assert.Equal(t, first, second)

		payload, err := scan.ReadFrame(bytes.NewReader([]byte(second)))
		require.NoError(t, err)
		report, err := scan.DecodeReport(payload)
		require.NoError(t, err)
		assert.Len(t, report.Findings, 1)
	})

	t.Run("version", func(t *testing.T) {
		stdout, _, code := runNilscan(t, bin, project, "version")
		assert.Equal(t, 0, code)
		assert.Equal(t, "nilscan "+scan.ToolVersion+"\n", stdout)
	})
}
