package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voxbridge/server/domain"
)

// Tags distinguishing artifact categories. Purges are always scoped to a
// single tag so the translate and chat lifecycles never interfere.
const (
	TagTranslateOutput = "output"
	TagChatReply       = "ai_reply"
)

const tempPrefix = "upload_"

// Store is the sole owner of the generated-audio directory. All reads and
// writes of artifacts go through it; nothing else touches the directory.
type Store struct {
	dir    string
	logger *zap.Logger

	mu        sync.Mutex
	lastStamp int64
	lastSeq   int
}

// NewStore creates the store and ensures the managed directory exists.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifact directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the managed directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Write stores content as a new artifact named {tag}_{timestamp}.mp3 and
// returns the filename. Timestamps are monotonically non-decreasing for the
// process lifetime; same-second writes get a counter suffix so an existing
// file is never overwritten.
func (s *Store) Write(content []byte, tag string) (string, error) {
	s.mu.Lock()
	stamp := time.Now().Unix()
	if stamp < s.lastStamp {
		stamp = s.lastStamp
	}
	var name string
	if stamp == s.lastStamp {
		s.lastSeq++
		name = fmt.Sprintf("%s_%d_%d.mp3", tag, stamp, s.lastSeq)
	} else {
		s.lastStamp = stamp
		s.lastSeq = 0
		name = fmt.Sprintf("%s_%d.mp3", tag, stamp)
	}
	path := filepath.Join(s.dir, name)
	// Excl write backs up the uniqueness invariant across restarts, where
	// lastStamp starts at zero but old files may still be on disk.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	for errors.Is(err, fs.ErrExist) {
		s.lastSeq++
		name = fmt.Sprintf("%s_%d_%d.mp3", tag, stamp, s.lastSeq)
		path = filepath.Join(s.dir, name)
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	s.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close artifact: %w", err)
	}

	s.logger.Info("Artifact written",
		zap.String("file", name),
		zap.Int("size", len(content)))
	return name, nil
}

// Purge deletes artifacts carrying the given tag that were created strictly
// before the cutoff. A concurrent request's freshly written artifact is
// therefore never swept by an older request's purge. Files that vanish
// mid-purge are treated as already done.
func (s *Store) Purge(tag string, before time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read artifact directory: %w", err)
	}

	removed := 0
	prefix := tag + "_"
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".mp3") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, fmt.Errorf("stat artifact %s: %w", name, err)
		}
		if !info.ModTime().Before(before) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("remove artifact %s: %w", name, err)
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("Artifacts purged",
			zap.String("tag", tag),
			zap.Int("count", removed))
	}
	return removed, nil
}

// Serve returns the content of a previously written artifact. Names that
// resolve outside the managed directory are rejected as not found.
func (s *Store) Serve(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(filepath.Clean(name)) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, name)
	}
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return content, nil
}

// List returns the names of artifacts carrying the given tag.
func (s *Store) List(tag string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read artifact directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, tag+"_") && strings.HasSuffix(name, ".mp3") {
			names = append(names, name)
		}
	}
	return names, nil
}

// IngestTemp writes uploaded audio to a per-request unique temp file inside
// the managed directory and returns its path. Callers must release it with
// ReleaseTemp on every exit path.
func (s *Store) IngestTemp(content []byte) (string, error) {
	path := filepath.Join(s.dir, tempPrefix+uuid.NewString()+".wav")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write temp audio: %w", err)
	}
	return path, nil
}

// ReleaseTemp removes a temp file created by IngestTemp. An already-removed
// file is not an error.
func (s *Store) ReleaseTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("Failed to remove temp audio", zap.String("path", path), zap.Error(err))
	}
}
