package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/codec"
)

// FileStorage keeps every row in memory and rewrites the whole CSV table on
// each write, via a temp file and rename so a crash never leaves a torn file.
type FileStorage struct {
	rows    map[uint64]codec.Row
	mu      sync.RWMutex // guards rows
	writeMu sync.Mutex   // serializes table rewrites
	path    string
	logger  internal.Logger
}

func NewFileStorage(path string, logger internal.Logger) (*FileStorage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create data dir: %w", err)
		}
	}
	s := &FileStorage{
		rows:   make(map[uint64]codec.Row),
		path:   path,
		logger: logger,
	}
	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load %s: %v", path, err)
		return nil, err
	}
	return s, nil
}

func (s *FileStorage) load() error {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, values := range records {
		if i == 0 && len(values) > 0 && values[0] == codec.Columns[0] {
			continue
		}
		row, err := codec.RowFromValues(values)
		if err != nil {
			s.logger.Warnf("storage: skipping line %d of %s: %v", i+1, s.path, err)
			continue
		}
		s.rows[row.UserID] = row
	}
	return nil
}

func atomicWriteFileCSV(filePath string, rows []codec.Row) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	_ = w.Write(codec.Columns)
	for _, row := range rows {
		_ = w.Write(row.Values())
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) snapshot() []codec.Row {
	rows := make([]codec.Row, 0, len(s.rows))
	for _, r := range s.rows {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UserID < rows[j].UserID })
	return rows
}

func (s *FileStorage) GetRow(ctx context.Context, userID uint64) (codec.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[userID]
	if !ok {
		return codec.Row{}, fmt.Errorf("storage: user %d: %w", userID, internal.ErrNotFound)
	}
	return row, nil
}

// PutRow updates the in-memory table and then rewrites the file outside of
// the read lock. If the rewrite fails the previous row is restored.
func (s *FileStorage) PutRow(ctx context.Context, row codec.Row) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	prev, existed := s.rows[row.UserID]
	s.rows[row.UserID] = row
	rows := s.snapshot()
	s.mu.Unlock()

	if err := atomicWriteFileCSV(s.path, rows); err != nil {
		s.mu.Lock()
		if existed {
			s.rows[row.UserID] = prev
		} else {
			delete(s.rows, row.UserID)
		}
		s.mu.Unlock()
		return fmt.Errorf("%w: write %s: %v", internal.ErrStorage, s.path, err)
	}
	return nil
}

func (s *FileStorage) ListRows(ctx context.Context) ([]codec.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(), nil
}

func (s *FileStorage) Close() error {
	return nil
}

// --- Compile-time assertions ---
var _ RowRepository = (*FileStorage)(nil)
