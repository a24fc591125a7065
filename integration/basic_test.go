//go:build basic

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/streetrisk/internal/store"
	"github.com/huangsam/streetrisk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStreetriskOutput runs the binary and returns combined output for assertions.
func runStreetriskOutput(t *testing.T, args ...string) string {
	binaryPath := getStreetriskBinary()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = "../"
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	require.NoError(t, err, "command failed: %s\nOutput: %s", cmd.String(), buf.String())
	return buf.String()
}

// TestStreetriskWithSQLite drives the full CLI surface against a file-backed
// SQLite database: migrate, run, top, export and route.
func TestStreetriskWithSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "streetrisk.db")

	_ = os.Setenv("STREETRISK_BACKEND", "sqlite")
	_ = os.Setenv("STREETRISK_DB_CONNECT", dbPath)
	defer func() { _ = os.Unsetenv("STREETRISK_BACKEND") }()
	defer func() { _ = os.Unsetenv("STREETRISK_DB_CONNECT") }()

	require.NoError(t, runStreetriskCommand(t, "migrate"))
	seedCrimeData(t, schema.SQLiteBackend, dbPath)
	require.NoError(t, runStreetriskCommand(t, "run"))
	verifyRiskRows(t, schema.SQLiteBackend, dbPath)

	topOut := runStreetriskOutput(t, "top", "--limit", "2")
	assert.Contains(t, topOut, "SEG-1")
	assert.Contains(t, topOut, "HIGH")

	jsonOut := runStreetriskOutput(t, "top", "--output", "json")
	assert.Contains(t, jsonOut, `"unitid"`)
	assert.Contains(t, jsonOut, `"risk_score"`)

	exportPath := filepath.Join(t.TempDir(), "risk.parquet")
	exportOut := runStreetriskOutput(t, "export", "--output-file", exportPath)
	assert.Contains(t, exportOut, "Exported")
	info, err := os.Stat(exportPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// Two-point polyline at the midpoint of the seeded hot segment
	routeOut := runStreetriskOutput(t, "route", "oyqaHnqsiV??")
	assert.Contains(t, routeOut, "Route risk:")
}

// TestStreetriskEmptyRun verifies that scoring with no data is a no-op.
func TestStreetriskEmptyRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "streetrisk.db")

	_ = os.Setenv("STREETRISK_BACKEND", "sqlite")
	_ = os.Setenv("STREETRISK_DB_CONNECT", dbPath)
	defer func() { _ = os.Unsetenv("STREETRISK_BACKEND") }()
	defer func() { _ = os.Unsetenv("STREETRISK_DB_CONNECT") }()

	require.NoError(t, runStreetriskCommand(t, "migrate"))
	out := runStreetriskOutput(t, "run")
	assert.Contains(t, out, "Nothing was written")

	db, err := store.Open(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM street_segment_risk").Scan(&count))
	assert.Equal(t, 0, count)
}

// TestStreetriskVersion checks the version command output shape.
func TestStreetriskVersion(t *testing.T) {
	out := runStreetriskOutput(t, "version")
	assert.Contains(t, out, "Version:")
	assert.Contains(t, out, "Runtime:")
}

// TestStreetriskHelp lists every expected subcommand.
func TestStreetriskHelp(t *testing.T) {
	out := runStreetriskOutput(t, "--help")
	for _, sub := range []string{"run", "top", "route", "export", "migrate", "version"} {
		assert.True(t, strings.Contains(out, sub), "missing subcommand %s in help output", sub)
	}
}
