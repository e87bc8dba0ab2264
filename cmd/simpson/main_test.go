package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/simpson/internal/config"
)

func newTestCommand(t *testing.T) *cobra.Command {
	t.Helper()

	preset, configFile, params = "", "", nil
	cmd := &cobra.Command{Use: "test"}
	addIntervalFlags(cmd)
	return cmd
}

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"c0=1.5", "k=-2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"c0": 1.5, "k": -2}, got)

	for _, bad := range []string{"c0", "=1", "c0=abc"} {
		_, err := parseParams([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestResolveConfigDefaults(t *testing.T) {
	cmd := newTestCommand(t)

	cfg, err := resolveConfig(cmd, []string{"sin"})
	require.NoError(t, err)
	assert.Equal(t, "sin", cfg.Integrand)
	assert.Equal(t, config.DefaultPanels, cfg.N)
}

func TestResolveConfigFlagsOverridePreset(t *testing.T) {
	cmd := newTestCommand(t)
	require.NoError(t, cmd.Flags().Parse([]string{"--preset", "quick", "--n", "250", "--b", "2"}))

	cfg, err := resolveConfig(cmd, []string{"exp"})
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.N)
	assert.Equal(t, 2.0, cfg.B)
	assert.Equal(t, 0.0, cfg.A)
}

func TestResolveConfigFileOverridesPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("integrand: poly\na: -1\nb: 1\nn: 3\nparams:\n  c3: 0\n"), 0644))

	cmd := newTestCommand(t)
	require.NoError(t, cmd.Flags().Parse([]string{"--config", path, "--param", "c2=4"}))

	cfg, err := resolveConfig(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "poly", cfg.Integrand)
	assert.Equal(t, 3, cfg.N)
	assert.Equal(t, map[string]float64{"c3": 0, "c2": 4}, cfg.Params)
}

func TestResolveConfigRejectsInvalid(t *testing.T) {
	cmd := newTestCommand(t)
	require.NoError(t, cmd.Flags().Parse([]string{"--n", "0"}))

	_, err := resolveConfig(cmd, []string{"exp"})
	assert.Error(t, err)

	cmd = newTestCommand(t)
	require.NoError(t, cmd.Flags().Parse([]string{"--preset", "missing"}))
	_, err = resolveConfig(cmd, []string{"exp"})
	assert.Error(t, err)
}
