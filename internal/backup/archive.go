package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/julianstephens/daycheck/internal/logger"
	"github.com/julianstephens/daycheck/internal/models"
)

// ArchiveVersion is the export format written by Export
const ArchiveVersion = 1

// Archive is the portable form of a whole repository
type Archive struct {
	Version         int                   `json:"version"`
	ExportedAt      time.Time             `json:"exported_at"`
	Entries         []models.DayEntry     `json:"entries"`
	UserQuestions   []models.UserQuestion `json:"user_questions"`
	CustomQuestions []models.Question     `json:"custom_questions"`
}

// Counts summarizes how much an archive carries
type Counts struct {
	Days            int
	Answers         int
	UserQuestions   int
	CustomQuestions int
}

// Counts tallies the archive contents
func (a Archive) Counts() Counts {
	c := Counts{
		Days:            len(a.Entries),
		UserQuestions:   len(a.UserQuestions),
		CustomQuestions: len(a.CustomQuestions),
	}
	for _, e := range a.Entries {
		c.Answers += len(e.Answers)
	}
	return c
}

// Source is the read side of a repository
type Source interface {
	GetAllEntries() ([]models.DayEntry, error)
	GetUserQuestions() ([]models.UserQuestion, error)
	GetCustomQuestions() ([]models.Question, error)
}

// Sink is a repository an archive can be imported into
type Sink interface {
	Source
	UpsertAnswer(date, questionID string, value models.Value, timestamp time.Time) error
	SetUserQuestions(list []models.UserQuestion) error
	AddCustomQuestion(q models.Question) error
}

// Snapshot reads the full repository state from src
func Snapshot(src Source, exportedAt time.Time) (Archive, error) {
	entries, err := src.GetAllEntries()
	if err != nil {
		return Archive{}, fmt.Errorf("failed to read entries: %w", err)
	}
	subs, err := src.GetUserQuestions()
	if err != nil {
		return Archive{}, fmt.Errorf("failed to read user questions: %w", err)
	}
	custom, err := src.GetCustomQuestions()
	if err != nil {
		return Archive{}, fmt.Errorf("failed to read custom questions: %w", err)
	}
	return Archive{
		Version:         ArchiveVersion,
		ExportedAt:      exportedAt.UTC(),
		Entries:         entries,
		UserQuestions:   subs,
		CustomQuestions: custom,
	}, nil
}

// Export writes src as a zstd compressed JSON archive
func Export(w io.Writer, src Source, exportedAt time.Time) (Archive, error) {
	archive, err := Snapshot(src, exportedAt)
	if err != nil {
		return Archive{}, err
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return Archive{}, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(archive); err != nil {
		enc.Close()
		return Archive{}, fmt.Errorf("failed to encode archive: %w", err)
	}
	if err := enc.Close(); err != nil {
		return Archive{}, fmt.Errorf("failed to flush archive: %w", err)
	}
	return archive, nil
}

// Decode reads an archive produced by Export
func Decode(r io.Reader) (Archive, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return Archive{}, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()

	var archive Archive
	if err := json.NewDecoder(dec).Decode(&archive); err != nil {
		return Archive{}, fmt.Errorf("failed to decode archive: %w", err)
	}
	if archive.Version > ArchiveVersion {
		return Archive{}, fmt.Errorf("archive version %d is newer than supported version %d", archive.Version, ArchiveVersion)
	}
	return archive, nil
}

// Import loads an archive into dst, which must hold no entries, subscriptions
// or custom questions.
func Import(r io.Reader, dst Sink) (Archive, error) {
	archive, err := Decode(r)
	if err != nil {
		return Archive{}, err
	}

	if err := ensureEmpty(dst); err != nil {
		return Archive{}, err
	}

	for _, q := range archive.CustomQuestions {
		if err := dst.AddCustomQuestion(q); err != nil {
			return Archive{}, fmt.Errorf("failed to import custom question %s: %w", q.ID, err)
		}
	}
	for _, entry := range archive.Entries {
		for _, a := range entry.Answers {
			if err := dst.UpsertAnswer(entry.Date, a.QuestionID, a.Value, a.Timestamp); err != nil {
				return Archive{}, fmt.Errorf("failed to import answer %s on %s: %w", a.QuestionID, entry.Date, err)
			}
		}
	}
	if err := dst.SetUserQuestions(archive.UserQuestions); err != nil {
		return Archive{}, fmt.Errorf("failed to import user questions: %w", err)
	}

	c := archive.Counts()
	logger.Info("Imported archive", "days", c.Days, "answers", c.Answers, "questions", c.UserQuestions)
	return archive, nil
}

func ensureEmpty(dst Source) error {
	entries, err := dst.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to inspect target storage: %w", err)
	}
	subs, err := dst.GetUserQuestions()
	if err != nil {
		return fmt.Errorf("failed to inspect target storage: %w", err)
	}
	custom, err := dst.GetCustomQuestions()
	if err != nil {
		return fmt.Errorf("failed to inspect target storage: %w", err)
	}
	if len(entries) > 0 || len(subs) > 0 || len(custom) > 0 {
		return fmt.Errorf("target storage is not empty; import only restores into a fresh store")
	}
	return nil
}

// ExportFile writes an archive to path with owner-only permissions
func ExportFile(path string, src Source, exportedAt time.Time) (Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return Archive{}, fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return Archive{}, fmt.Errorf("failed to create export file: %w", err)
	}

	archive, err := Export(f, src, exportedAt)
	if err != nil {
		f.Close()
		os.Remove(path)
		return Archive{}, err
	}
	if err := f.Close(); err != nil {
		return Archive{}, fmt.Errorf("failed to close export file: %w", err)
	}
	return archive, nil
}

// ImportFile reads the archive at path into dst
func ImportFile(path string, dst Sink) (Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return Archive{}, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()
	return Import(f, dst)
}
