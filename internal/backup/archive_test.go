package backup

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/storage"
)

var exportTime = time.Date(2026, 10, 14, 21, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	s := storage.NewMemoryStore()
	require.NoError(t, s.Init())

	at := time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.AddCustomQuestion(models.Question{
		ID: "custom-1", Text: "Did you read?", Type: constants.QuestionYesNo, Category: "Learning", IsCustom: true,
	}))
	require.NoError(t, s.UpsertAnswer("2026-10-13", "pre-1", models.BoolValue(true), at))
	require.NoError(t, s.UpsertAnswer("2026-10-13", "pre-2", models.IntValue(7), at))
	require.NoError(t, s.UpsertAnswer("2026-10-14", "pre-19", models.TextValue("sunshine"), at.Add(24*time.Hour)))
	require.NoError(t, s.UpsertAnswer("2026-10-14", "custom-1", models.BoolValue(false), at.Add(24*time.Hour)))
	require.NoError(t, s.SetUserQuestions([]models.UserQuestion{
		{QuestionID: "pre-1", AddedAt: at},
		{QuestionID: "pre-2", AddedAt: at, ChartType: constants.ChartPie},
		{QuestionID: "custom-1", AddedAt: at},
	}))
	return s
}

func TestExportImportRoundTrip(t *testing.T) {
	src := seededStore(t)

	var buf bytes.Buffer
	exported, err := Export(&buf, src, exportTime)
	require.NoError(t, err)
	assert.Equal(t, Counts{Days: 2, Answers: 4, UserQuestions: 3, CustomQuestions: 1}, exported.Counts())

	dst := storage.NewMemoryStore()
	require.NoError(t, dst.Init())
	imported, err := Import(&buf, dst)
	require.NoError(t, err)
	assert.Equal(t, ArchiveVersion, imported.Version)
	assert.True(t, exportTime.Equal(imported.ExportedAt))

	wantEntries, err := src.GetAllEntries()
	require.NoError(t, err)
	gotEntries, err := dst.GetAllEntries()
	require.NoError(t, err)
	assert.Equal(t, wantEntries, gotEntries)

	wantSubs, err := src.GetUserQuestions()
	require.NoError(t, err)
	gotSubs, err := dst.GetUserQuestions()
	require.NoError(t, err)
	assert.Equal(t, wantSubs, gotSubs)

	gotCustom, err := dst.GetCustomQuestions()
	require.NoError(t, err)
	require.Len(t, gotCustom, 1)
	assert.Equal(t, "Did you read?", gotCustom[0].Text)
}

func TestExportIsZstdCompressedJSON(t *testing.T) {
	var buf bytes.Buffer
	_, err := Export(&buf, seededStore(t), exportTime)
	require.NoError(t, err)

	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()

	raw, err := dec.DecodeAll(buf.Bytes(), nil)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"version":1`)
	assert.Contains(t, string(raw), `"question_id":"pre-2"`)
}

func TestImportRequiresEmptyStore(t *testing.T) {
	var buf bytes.Buffer
	_, err := Export(&buf, seededStore(t), exportTime)
	require.NoError(t, err)

	dst := storage.NewMemoryStore()
	require.NoError(t, dst.Init())
	require.NoError(t, dst.UpsertAnswer("2026-01-01", "pre-1", models.BoolValue(true), exportTime))

	_, err = Import(&buf, dst)
	assert.ErrorContains(t, err, "not empty")

	entries, err := dst.GetAllEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not valid zstd data")))
	assert.Error(t, err)
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	payload := enc.EncodeAll([]byte(`{"version":99}`), nil)
	require.NoError(t, enc.Close())

	_, err = Decode(bytes.NewReader(payload))
	assert.ErrorContains(t, err, "newer than supported")
}

func TestExportFileImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "daycheck"+constants.ExportFileSuffix)

	_, err := ExportFile(path, seededStore(t), exportTime)
	require.NoError(t, err)

	dst := storage.NewMemoryStore()
	require.NoError(t, dst.Init())
	archive, err := ImportFile(path, dst)
	require.NoError(t, err)
	assert.Equal(t, 4, archive.Counts().Answers)

	_, err = ImportFile(filepath.Join(t.TempDir(), "missing.json.zst"), dst)
	assert.ErrorContains(t, err, "failed to open archive")
}
