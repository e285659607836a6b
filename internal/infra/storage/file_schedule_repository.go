package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"organist_rotation/internal/domain/roster"
)

// FileScheduleRepository keeps the schedule as a JSON array in a single file.
// A missing file means no schedule has been generated yet.
type FileScheduleRepository struct {
	path string
}

func NewFileScheduleRepository(path string) *FileScheduleRepository {
	return &FileScheduleRepository{path: path}
}

func (r *FileScheduleRepository) Path() string { return r.path }

// Replace writes the whole schedule to a temporary file and renames it over
// the previous one.
func (r *FileScheduleRepository) Replace(ctx context.Context, s roster.Schedule) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toRecords(s)); err != nil {
		return fmt.Errorf("error encoding schedule: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating schedule directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary schedule file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing schedule file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing schedule file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("error replacing schedule file: %w", err)
	}
	return nil
}

func (r *FileScheduleRepository) Load(ctx context.Context) (roster.Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return roster.Schedule{}, nil
		}
		return nil, fmt.Errorf("error reading schedule file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return roster.Schedule{}, nil
	}

	var recs []entryRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	return fromRecords(recs)
}
