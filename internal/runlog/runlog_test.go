package runlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docpipe/internal/models"
)

func TestOpenMissingLog(t *testing.T) {
	s := Open(t.TempDir())
	assert.Empty(t, s.Entries())
}

func TestOpenMalformedLog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, logFileName), []byte("{not json"), 0o644))

	s := Open(dir)
	assert.Empty(t, s.Entries(), "malformed log starts fresh instead of failing")
}

func TestAppendAndReload(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	require.NoError(t, s.Append(models.Outcome{
		Success:  true,
		FilePath: "/in/a.pdf",
		FileType: models.CategoryDocument,
		Strategy: "document-text",
	}))
	require.NoError(t, s.Append(models.Outcome{
		Success:  false,
		FilePath: "/in/b.png",
		FileType: models.CategoryImage,
		Failure:  &models.Failure{Kind: models.FailureExtraction, Message: "blurry"},
	}))

	reloaded := Open(dir)
	require.Len(t, reloaded.Entries(), 2)
	assert.True(t, reloaded.Entries()[0].Success)
	assert.Equal(t, "/in/b.png", reloaded.Entries()[1].FilePath)
	require.NotNil(t, reloaded.Entries()[1].Failure)
	assert.Equal(t, models.FailureExtraction, reloaded.Entries()[1].Failure.Kind)
}

func TestSuccessesKeyedByBaseName(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	require.NoError(t, s.Append(models.Outcome{Success: false, FilePath: "/old/a.pdf"}))
	require.NoError(t, s.Append(models.Outcome{Success: true, FilePath: "/old/a.pdf", ContentHash: "aaaa"}))
	require.NoError(t, s.Append(models.Outcome{Success: true, FilePath: "/new/mount/b.mp3", ContentHash: "bbbb"}))

	done := s.Successes()
	require.Len(t, done, 2)
	assert.Equal(t, "aaaa", done["a.pdf"].ContentHash)
	assert.Equal(t, "bbbb", done["b.mp3"].ContentHash)
	_, failedPresent := done["c.mp4"]
	assert.False(t, failedPresent)
}

func TestLogIsJSONArray(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)
	require.NoError(t, s.Append(models.Outcome{Success: true, FilePath: "a.pdf"}))

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)

	var generic []map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	require.Len(t, generic, 1)
	assert.Equal(t, true, generic[0]["success"])
	assert.Equal(t, "a.pdf", generic[0]["file_path"])
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	stamp := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	path, err := WriteReport(dir, models.BatchReport{
		RunID:      uuid.New(),
		Timestamp:  stamp,
		InputDir:   "/in",
		OutputDir:  dir,
		TotalFiles: 4,
		Succeeded:  3,
		Failed:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "batch_report_20260314_092653.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report models.BatchReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 4, report.TotalFiles)
	assert.Equal(t, 3, report.Succeeded)
}
