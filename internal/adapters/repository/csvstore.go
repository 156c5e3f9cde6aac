package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/statsboard/internal/domain/dataset"
)

const (
	defaultFileMode = 0o644
	dirMode         = 0o755
)

// CSVStore keeps one CSV file per sport. Writes go to a temp file in the
// target directory and are renamed over the old snapshot only on success.
type CSVStore struct {
	paths    map[string]string
	fileMode os.FileMode
}

// NewCSVStore creates a store; map sports to files with WithPath.
func NewCSVStore(opts ...Option) *CSVStore {
	s := &CSVStore{
		paths:    make(map[string]string),
		fileMode: defaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the snapshot path of sport.
func (s *CSVStore) Path(sport string) (string, error) {
	p, ok := s.paths[sport]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSport, sport)
	}
	return p, nil
}

// Save replaces the snapshot of sport.
func (s *CSVStore) Save(ctx context.Context, sport string, t *dataset.Table) (string, error) {
	path, err := s.Path(sport)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return path, WriteFile(path, t, s.fileMode)
}

// Load reads the snapshot of sport.
func (s *CSVStore) Load(ctx context.Context, sport string) (*dataset.Table, error) {
	path, err := s.Path(sport)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(path)
}

// WriteFile writes t to path atomically: temp file, fsync, rename.
func WriteFile(path string, t *dataset.Table, mode os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, t); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("chmod temp snapshot: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// ReadFile reads a snapshot written by WriteFile (or any CSV with a header).
func ReadFile(path string) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes the header and every row. Null cells become empty fields.
func Encode(w io.Writer, t *dataset.Table) error {
	cw := csv.NewWriter(w)
	if err := writeRecord(w, cw, t.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(t.Columns()))
	for i := 0; i < t.Len(); i++ {
		for j, v := range t.Row(i) {
			record[j] = v.String()
		}
		if err := writeRecord(w, cw, record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// writeRecord writes one record. A record made of a single empty field would
// be a blank line, which readers skip, so it is written as a quoted "".
func writeRecord(w io.Writer, cw *csv.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return cw.Write(record)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\"\"\n")
	return err
}

// Decode reads a CSV with a header row. Empty fields become null cells.
// An empty input decodes to an empty table.
func Decode(r io.Reader) (*dataset.Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return dataset.Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedCSV, err)
	}
	t, err := dataset.New(header...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, line, err)
		}
		cells := make([]dataset.Value, len(rec))
		for i, s := range rec {
			if s == "" {
				cells[i] = dataset.Null()
				continue
			}
			cells[i] = dataset.Text(s)
		}
		if err := t.AppendRow(cells...); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, line, err)
		}
	}
	return t, nil
}
