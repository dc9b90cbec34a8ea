package storage

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/helloworldpark/tickle-upper-limit/commons"
	"github.com/helloworldpark/tickle-upper-limit/logger"
)

// ErrNoteExists is returned when the note of the day was written already.
var ErrNoteExists = errors.New("[Storage] note already exists")

var newError = commons.NewTaggedWrapper("Storage")

const fileLayout = "2006-01-02"

// FileName is the note file name of day, e.g. "2024-03-05 상한가 천만주.md"
func FileName(day time.Time) string {
	return day.In(commons.AsiaSeoul).Format(fileLayout) + " 상한가 천만주.md"
}

// NotePath is the path of the note of day under dir.
func NotePath(dir string, day time.Time) string {
	return filepath.Join(dir, FileName(day))
}

// NoteWriter writes one note per day into a directory, never overwriting.
type NoteWriter struct {
	dir string
}

// NewNoteWriter returns a writer into dir.
func NewNoteWriter(dir string) *NoteWriter {
	return &NoteWriter{dir: dir}
}

// Dir returns the output directory.
func (w *NoteWriter) Dir() string {
	return w.dir
}

// Exists reports whether the note of day is on disk.
func (w *NoteWriter) Exists(day time.Time) (bool, error) {
	_, err := os.Stat(NotePath(w.dir, day))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, newError("checking note", err)
}

// Write creates the note of day with contents and returns its path.
// The file is created exclusively, so if it exists ErrNoteExists is returned
// and the file is left untouched.
func (w *NoteWriter) Write(day time.Time, contents string) (string, error) {
	path := NotePath(w.dir, day)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return path, ErrNoteExists
		}
		return path, newError("creating note", err)
	}

	_, err = file.WriteString(contents)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// A half written note would block every later run of the day
		os.Remove(path)
		return path, newError("writing note", err)
	}
	logger.Info("[Storage] Wrote %s", path)
	return path, nil
}
