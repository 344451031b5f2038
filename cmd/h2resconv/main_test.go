package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writeTestConfig lays out source and export directories under a temp
// root and returns the path of a config file pointing at them.
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	resourceDir := filepath.Join(dir, "resources")
	require.NoError(t, os.MkdirAll(resourceDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))

	cfgPath := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`source:
  resource_dir: %s
  data_dir: %s
  clusters: "128"
export:
  dir: %s
logging:
  level: error
`, resourceDir, filepath.Join(dir, "data"), filepath.Join(dir, "export"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath, dir
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 11)
	assert.Contains(t, out, "demand")
	assert.Contains(t, out, "scaled_inflows_2020_2050.xml")
	assert.Contains(t, out, "fuel_cost_2020_2050.xml")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "h2resconv")
	assert.Contains(t, out, version)
}

func TestConvertCommand_UnknownConversion(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	_, err := execute(t, "convert", "--config", cfgPath, "wave_power")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestConvertCommand_MissingConfigFile(t *testing.T) {
	_, err := execute(t, "convert", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConvertCommand_RunsDemand(t *testing.T) {
	cfgPath, dir := writeTestConfig(t)
	csv := "time,AL,AT\n1/1/2020 0:00,10,20\n1/1/2020 1:00,11,21\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "resources", "electricity_demand.csv"), []byte(csv), 0o644))

	out, err := execute(t, "convert", "--config", cfgPath, "demand")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 1 datasets")

	doc, err := os.ReadFile(filepath.Join(dir, "export", "demand_2020_2050.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<AL>10</AL>")
	assert.Equal(t, 24, strings.Count(string(doc), "<period "))
}

func TestConvertCommand_ReportsAllFailures(t *testing.T) {
	// An empty source tree makes every selected conversion fail on its
	// missing input; keep-going mode must surface both.
	cfgPath, _ := writeTestConfig(t)

	_, err := execute(t, "convert", "--config", cfgPath, "demand", "scaled_inflows")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "demand")
	assert.Contains(t, err.Error(), "scaled_inflows")
}

func TestCheckCommand_ReportsMissing(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	out, err := execute(t, "check", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "17 of 17 input files missing")
	assert.Contains(t, out, "profile_hydro.nc")
	assert.Contains(t, out, "missing")
}

func TestCheckCommand_AllPresent(t *testing.T) {
	cfgPath, dir := writeTestConfig(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "resources", "electricity_demand.csv"), []byte("time,AL\n"), 0o644))

	out, err := execute(t, "check", "--config", cfgPath, "demand")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "electricity_demand.csv")
}
