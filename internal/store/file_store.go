package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofrs/flock"
)

const lockRetryDelay = 5 * time.Millisecond

var _ Store = (*FileStore)(nil)

// FileStore keeps every key in a single JSON object on disk. Writes go to a
// temp file that is renamed over the original. Every operation holds an
// advisory lock on a "<path>.lock" sibling, so separate processes sharing the
// file serialize their read-modify-write cycles.
type FileStore struct {
	mu   sync.Mutex
	path string
	lock *flock.Flock
}

func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	return &FileStore{path: path, lock: flock.New(path + ".lock")}, nil
}

// acquire takes the in-process mutex first; a single flock.Flock is not safe
// for concurrent Lock calls from several goroutines.
func (s *FileStore) acquire(ctx context.Context) (func(), error) {
	s.mu.Lock()
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err == nil && !locked {
		err = ErrContention
	}
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("lock store file: %w", err)
	}
	return func() {
		_ = s.lock.Unlock()
		s.mu.Unlock()
	}, nil
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return "", false, err
	}
	defer release()
	data, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	data, err := s.load()
	if err != nil {
		return err
	}
	data[key] = value
	return s.save(data)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.save(data)
}

func (s *FileStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	data, err := s.load()
	if err != nil {
		return err
	}
	current, ok := data[key]
	next, err := fn(current, ok)
	if err != nil {
		return err
	}
	data[key] = next
	return s.save(data)
}

func (s *FileStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	data := make(map[string]string)
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode store file %s: %w", s.path, err)
	}
	return data, nil
}

func (s *FileStore) save(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".store-*.json")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
