package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/crisissim/internal/persistence"
)

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) (dir string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("CRISISSIM_SEED", "42")
	t.Setenv("CRISISSIM_RANDOM_SOURCE", "math")
	t.Setenv("CRISISSIM_LOG_LEVEL", "error")
	t.Setenv("CRISISSIM_REPORT_PATH", filepath.Join(dir, "report.txt"))
	t.Setenv("CRISISSIM_DB_PATH", filepath.Join(dir, "data", "runs.db"))
	return dir
}

func TestPlay_WritesReportAndHistory(t *testing.T) {
	dir := setupEnv(t)
	cfgPath := filepath.Join(dir, "absent.yaml")

	out, err := execute(t, "2\nmaybe\nyes\n5\nno\n", "play", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Choose a policy to mitigate the crisis")
	assert.Contains(t, out, "Please enter 'yes' or 'no'.")
	assert.Contains(t, out, "Simulation ended.")

	data, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "🔄 Cycle 2:")
	assert.Contains(t, text, "Increase in public spending to stimulate economic growth.")
	assert.Contains(t, text, "No government intervention")
	assert.Contains(t, text, "a total of 12 months")

	db, err := persistence.Open(filepath.Join(dir, "data", "runs.db"))
	require.NoError(t, err)
	runs, err := db.Runs(5)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Cycles)
	assert.Equal(t, int64(42), runs[0].Seed)

	listing, err := execute(t, "", "history", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, listing, runs[0].ID)
	assert.Contains(t, listing, "47,555,580")

	replay, err := execute(t, "", "history", runs[0].ID, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, text, replay)
}

func TestPlay_EOFStillWritesReport(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("CRISISSIM_DB_PATH", "")

	_, err := execute(t, "1\n", "play", "--config", filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "🔄 Cycle 1:")
}

func TestPlay_NoInputNoReport(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("CRISISSIM_DB_PATH", "")

	_, err := execute(t, "", "play", "--config", filepath.Join(dir, "absent.yaml"))
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "report.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestHistory_Disabled(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("CRISISSIM_DB_PATH", "")

	_, err := execute(t, "", "history", "--config", filepath.Join(dir, "absent.yaml"))
	assert.ErrorContains(t, err, "disabled")
}

func TestPlay_InvalidConfig(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("CRISISSIM_RANDOM_SOURCE", "dice")

	_, err := execute(t, "", "play", "--config", filepath.Join(dir, "absent.yaml"))
	assert.ErrorContains(t, err, "random.source")
}

func TestPlay_DefaultRunWritesOnlyReport(t *testing.T) {
	dir := setupEnv(t)
	os.Unsetenv("CRISISSIM_DB_PATH")
	t.Chdir(dir)

	_, err := execute(t, "1\nno\n", "play", "--config", filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"report.txt"}, names)
}

func TestPlay_SimplexRecordsChosenSeed(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("CRISISSIM_SEED", "0")
	t.Setenv("CRISISSIM_RANDOM_SOURCE", "simplex")

	_, err := execute(t, "1\nno\n", "play", "--config", filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)

	db, err := persistence.Open(filepath.Join(dir, "data", "runs.db"))
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.Runs(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "simplex", runs[0].Source)
	assert.NotZero(t, runs[0].Seed)
}
