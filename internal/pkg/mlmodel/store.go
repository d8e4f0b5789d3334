package mlmodel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
)

// Store is the shared, explicitly initialized holder of the loaded classifier
// artifact. The artifact is read-only at inference time, so concurrent reads
// are safe; the cache is invalidated when the file on disk changes, which
// makes reload-after-retraining deterministic.
type Store struct {
	path string

	mu      sync.RWMutex
	forest  *Forest
	modTime time.Time
	size    int64
}

// NewStore creates a store for the artifact at the given path. Nothing is
// loaded until the first Load call.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the well-known artifact path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether an artifact file is currently persisted.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load returns the classifier for the persisted artifact, loading and caching
// it on first use. It returns apperrors.ErrModelNotFound when no artifact has
// been persisted yet, and apperrors.ErrModelMalformed when the file cannot be
// decoded.
func (s *Store) Load() (*Forest, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrModelNotFound
		}
		return nil, fmt.Errorf("stat model artifact: %w", err)
	}

	s.mu.RLock()
	if s.forest != nil && info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		forest := s.forest
		s.mu.RUnlock()
		return forest, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have loaded it while we waited for the lock.
	if s.forest != nil && info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return s.forest, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrModelNotFound
		}
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrModelMalformed, err)
	}

	forest, err := NewForest(&artifact)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrModelMalformed, err)
	}

	s.forest = forest
	s.modTime = info.ModTime()
	s.size = info.Size()

	return forest, nil
}

// Invalidate drops the cached artifact so the next Load re-reads the file.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forest = nil
	s.modTime = time.Time{}
	s.size = 0
}

// Save persists an artifact to the store's path. The write is atomic: the
// JSON is written to a temp file in the same directory and renamed over the
// target, so a concurrent Load never sees a half-written artifact.
func (s *Store) Save(artifact *Artifact) error {
	if _, err := NewForest(artifact); err != nil {
		return fmt.Errorf("refusing to save invalid artifact: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	data, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".model-*.json")
	if err != nil {
		return fmt.Errorf("create temp artifact file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write model artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp artifact file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist model artifact: %w", err)
	}

	s.Invalidate()
	return nil
}
