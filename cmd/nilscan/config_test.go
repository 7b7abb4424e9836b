package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FredrikPedersen/nullref/internal/scan"
)

// resetConfig restores the package-level viper and flag state after a test.
func resetConfig(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		viper.Reset()
		assert.NoError(t, bindFlags())
		cfgFile = ""
	})
}

func TestBindFlags(t *testing.T) {
	resetConfig(t)
	viper.Reset()
	require.NoError(t, bindFlags())

	keys := viper.AllKeys()
	for _, key := range []string{"config", "log-level", "optional-pkg", "tests", "include-generated",
		"packages", "dir", "format", "cache-dir", "max-cache-entries", "fail-on-findings"} {
		assert.Contains(t, keys, key)
	}
}

func TestLoadOptions_Defaults(t *testing.T) {
	resetConfig(t)
	t.Chdir(t.TempDir())
	require.NoError(t, initConfig())

	opts := loadOptions()
	assert.Equal(t, scan.DefaultOptionalPkg, opts.Scan.OptionalPkg)
	assert.False(t, opts.Scan.IncludeTests)
	assert.Equal(t, []string{"./..."}, opts.Packages)
	assert.Equal(t, ".", opts.Dir)
	assert.Equal(t, scan.FormatText, opts.Format)
	assert.Equal(t, scan.DefaultMaxCacheEntries, opts.MaxCacheEntries)
	assert.True(t, opts.FailOnFindings)
	assert.Equal(t, "warn", opts.LogLevel)
}

func TestLoadOptions_ConfigFile(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()
	cfgFile = filepath.Join(dir, "nilscan.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("format: yaml\ntests: true\ncache-dir: /tmp/nilscan\n"), 0o644))

	require.NoError(t, initConfig())

	opts := loadOptions()
	assert.Equal(t, scan.FormatYAML, opts.Format)
	assert.True(t, opts.Scan.IncludeTests)
	assert.Equal(t, "/tmp/nilscan", opts.CacheDir)
}

func TestLoadOptions_DefaultConfigInWorkingDir(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".nilscan.yaml"), []byte("format: json\n"), 0o644))
	t.Chdir(dir)

	require.NoError(t, initConfig())
	assert.Equal(t, scan.FormatJSON, loadOptions().Format)
}

// Environment variables override the config file.
func TestLoadOptions_Env(t *testing.T) {
	resetConfig(t)
	dir := t.TempDir()
	cfgFile = filepath.Join(dir, "nilscan.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("format: yaml\n"), 0o644))
	t.Setenv("NILSCAN_FORMAT", "fb")
	t.Setenv("NILSCAN_FAIL_ON_FINDINGS", "false")

	require.NoError(t, initConfig())

	opts := loadOptions()
	assert.Equal(t, scan.FormatFB, opts.Format)
	assert.False(t, opts.FailOnFindings)
}

func TestInitConfig_MissingFile(t *testing.T) {
	resetConfig(t)
	cfgFile = filepath.Join(t.TempDir(), "absent.yaml")
	assert.Error(t, initConfig())
}

func TestCheckFindings(t *testing.T) {
	clean := &scan.Report{}
	dirty := &scan.Report{Findings: []scan.Finding{{Rule: scan.RuleNilPointer}}}

	assert.NoError(t, checkFindings(clean, true))
	assert.NoError(t, checkFindings(dirty, false))
	assert.ErrorIs(t, checkFindings(dirty, true), errFindings)
}
