package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// FileStore keeps the history in one JSON file. Writers hold an exclusive
// advisory lock on a sibling .lock file and replace the file atomically, so
// concurrent lsl processes never interleave a read-modify-write.
type FileStore struct {
	slotStore
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	return &FileStore{slotStore{slot: &fileSlot{
		path: path,
		lock: flock.New(path + ".lock"),
	}}}, nil
}

type fileSlot struct {
	path string
	lock *flock.Flock
}

func (f *fileSlot) load(ctx context.Context) ([]byte, error) {
	ok, err := f.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire history read lock: %w", err)
	}
	if !ok {
		return nil, errors.New("acquire history read lock: not acquired")
	}
	defer f.lock.Unlock()

	return f.read()
}

func (f *fileSlot) modify(ctx context.Context, fn func([]byte) ([]byte, error)) error {
	ok, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	if !ok {
		return errors.New("acquire history lock: not acquired")
	}
	defer f.lock.Unlock()

	raw, err := f.read()
	if err != nil {
		return err
	}
	next, err := fn(raw)
	if err != nil {
		return err
	}
	if next == nil {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("clear history: %w", err)
		}
		return nil
	}
	return f.writeAtomic(next)
}

func (f *fileSlot) read() ([]byte, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return raw, nil
}

func (f *fileSlot) writeAtomic(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
