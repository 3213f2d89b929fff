package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/bodysignal/internal/services"
)

func TestRunExportThenImportRestoresData(t *testing.T) {
	source := openTestDatabase(t)
	seedCondition(t, source, "Migraine", "head", 4, 7, 5)
	seedCondition(t, source, "Knee", "leg-left-lower", 2)

	outPath := filepath.Join(t.TempDir(), "backups", "export.json")
	var stdout bytes.Buffer
	written, err := RunExport(source, outPath, &stdout, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, outPath, written)
	assert.Contains(t, stdout.String(), "Exported 2 conditions and 4 logs")

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	target := openTestDatabase(t)
	seedCondition(t, target, "Stale", "general", 1)

	stdout.Reset()
	summary, err := RunImport(target, outPath, &stdout)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Conditions)
	assert.Equal(t, 4, summary.Logs)
	assert.Zero(t, summary.DanglingLogs)

	conditions, logs := countRows(t, target)
	assert.EqualValues(t, 2, conditions)
	assert.EqualValues(t, 4, logs)
}

func TestRunExportToStdout(t *testing.T) {
	database := openTestDatabase(t)
	seedCondition(t, database, "Rash", "arm-left", 3)

	var stdout bytes.Buffer
	written, err := RunExport(database, StdoutPath, &stdout, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, StdoutPath, written)

	var document services.ExportDocument
	require.NoError(t, sonic.Unmarshal(stdout.Bytes(), &document))
	require.Len(t, document.Conditions, 1)
	assert.Equal(t, "Rash", document.Conditions[0].Label)
	assert.Len(t, document.Logs, 1)
}

func TestRunExportDefaultFileName(t *testing.T) {
	database := openTestDatabase(t)
	workingDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(workingDir) })

	var stdout bytes.Buffer
	written, err := RunExport(database, "", &stdout, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, services.ExportFileName(testNow, time.UTC), written)
	assert.FileExists(t, written)
}

func TestRunImportRejectsMissingAndMalformedFiles(t *testing.T) {
	database := openTestDatabase(t)
	seedCondition(t, database, "Keep", "chest", 2)

	_, err := RunImport(database, filepath.Join(t.TempDir(), "missing.json"), &bytes.Buffer{})
	require.Error(t, err)

	malformed := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{not json"), 0o600))
	_, err = RunImport(database, malformed, &bytes.Buffer{})
	require.Error(t, err)

	conditions, logs := countRows(t, database)
	assert.EqualValues(t, 1, conditions)
	assert.EqualValues(t, 1, logs)
}
