// Package filestore implements store.Store on a single JSON document.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/Lzww0608/oid"
	"github.com/Lzww0608/oid/internal/log"
	"github.com/Lzww0608/oid/store"
)

// document is the on-disk layout.
type document struct {
	Records []store.Record `json:"records"`
}

// Store keeps records in one JSON file. Every operation reads the file, so
// separate processes sharing the file see each other's writes; writes go to a
// temporary file that is renamed over the original.
type Store struct {
	fs     afero.Fs
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

var _ store.Store = (*Store)(nil)

// New returns a Store backed by the file at path on fs. The file and its
// parent directory are created on the first write.
func New(fs afero.Fs, path string) *Store {
	return &Store{
		fs:     fs,
		path:   path,
		logger: log.L().With().Str(log.FieldDriver, "file").Str(log.FieldPath, path).Logger(),
	}
}

// Open returns a Store on the operating system filesystem.
func Open(path string) *Store {
	return New(afero.NewOsFs(), path)
}

func (s *Store) load() (map[oid.OID]store.Record, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[oid.OID]store.Record), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc document
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
		}
	}

	records := make(map[oid.OID]store.Record, len(doc.Records))
	for _, r := range doc.Records {
		records[r.ID] = r
	}
	return records, nil
}

func (s *Store) save(records map[oid.OID]store.Record) error {
	doc := document{Records: make([]store.Record, 0, len(records))}
	for _, r := range records {
		doc.Records = append(doc.Records, r)
	}
	store.SortRecords(doc.Records)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			s.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

func (s *Store) Put(ctx context.Context, r store.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.ID.IsZero() {
		return store.ErrZeroID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := records[r.ID]; ok {
		return fmt.Errorf("%w: %s", store.ErrExists, r.ID)
	}
	records[r.ID] = r

	if err := s.save(records); err != nil {
		return err
	}
	s.logger.Debug().Str(log.FieldOID, r.ID.String()).Msg("record stored")
	return nil
}

func (s *Store) Get(ctx context.Context, id oid.OID) (store.Record, error) {
	if err := ctx.Err(); err != nil {
		return store.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return store.Record{}, err
	}
	r, ok := records[id]
	if !ok {
		return store.Record{}, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return r, nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]store.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if prefix != "" {
		p, err := oid.ParsePrefix(prefix)
		if err != nil {
			return nil, err
		}
		prefix = p.String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make([]store.Record, 0, len(records))
	for _, r := range records {
		if prefix == "" || r.ID.Prefix() == prefix {
			out = append(out, r)
		}
	}
	store.SortRecords(out)
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id oid.OID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := records[id]; !ok {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	delete(records, id)

	if err := s.save(records); err != nil {
		return err
	}
	s.logger.Debug().Str(log.FieldOID, id.String()).Msg("record deleted")
	return nil
}

// Close is a no-op; the file is not held open between operations.
func (s *Store) Close() error {
	return nil
}
