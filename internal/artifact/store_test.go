package artifact

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/voxbridge/server/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestWriteServeRoundTrip(t *testing.T) {
	store := newTestStore(t)

	content := []byte{0x49, 0x44, 0x33, 0x04, 0x00}
	name, err := store.Write(content, TagTranslateOutput)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasPrefix(name, "output_") || !strings.HasSuffix(name, ".mp3") {
		t.Errorf("Unexpected artifact name %q", name)
	}

	got, err := store.Serve(name)
	if err != nil {
		t.Fatalf("Serve failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Served content differs from written content")
	}
}

func TestWriteNamesAreUnique(t *testing.T) {
	store := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		name, err := store.Write([]byte("audio"), TagChatReply)
		if err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
		if seen[name] {
			t.Fatalf("Duplicate artifact name %q", name)
		}
		seen[name] = true
	}

	names, err := store.List(TagChatReply)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 10 {
		t.Errorf("Expected 10 artifacts on disk, got %d", len(names))
	}
}

func TestWriteDoesNotOverwriteExistingFile(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Write([]byte("first"), TagTranslateOutput)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	second, err := store.Write([]byte("second"), TagTranslateOutput)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if first == second {
		t.Fatalf("Second write reused name %q", first)
	}

	got, err := store.Serve(first)
	if err != nil {
		t.Fatalf("Serve failed: %v", err)
	}
	if string(got) != "first" {
		t.Errorf("First artifact was overwritten: %q", got)
	}
}

func TestPurgeIsTagScoped(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Write([]byte("a"), TagTranslateOutput); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	chatName, err := store.Write([]byte("b"), TagChatReply)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	removed, err := store.Purge(TagTranslateOutput, time.Now().Add(time.Second))
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 artifact purged, got %d", removed)
	}

	if _, err := store.Serve(chatName); err != nil {
		t.Errorf("Chat artifact swept by translate purge: %v", err)
	}
	outputs, err := store.List(TagTranslateOutput)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(outputs) != 0 {
		t.Errorf("Expected no output artifacts, got %v", outputs)
	}
}

func TestPurgeRespectsCutoff(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Write([]byte("fresh"), TagTranslateOutput)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// Cutoff in the past: nothing qualifies.
	removed, err := store.Purge(TagTranslateOutput, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("Expected 0 artifacts purged, got %d", removed)
	}
	if _, err := store.Serve(name); err != nil {
		t.Errorf("Fresh artifact purged: %v", err)
	}
}

func TestPurgeToleratesMissingFiles(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Write([]byte("gone soon"), TagTranslateOutput)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := os.Remove(filepath.Join(store.Dir(), name)); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := store.Purge(TagTranslateOutput, time.Now().Add(time.Second)); err != nil {
		t.Errorf("Purge should tolerate already-gone files: %v", err)
	}
}

func TestServeRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	outside := filepath.Join(filepath.Dir(store.Dir()), "secret.txt")
	if err := os.WriteFile(outside, []byte("secret"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	for _, name := range []string{
		"../secret.txt",
		"..%2Fsecret.txt",
		"a/../../secret.txt",
		"..",
		"",
		".hidden.mp3",
	} {
		if _, err := store.Serve(name); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Serve(%q) = %v, want ErrNotFound", name, err)
		}
	}
}

func TestServeUnknownFile(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Serve("output_999.mp3"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestIngestAndReleaseTemp(t *testing.T) {
	store := newTestStore(t)

	pathA, err := store.IngestTemp([]byte("upload a"))
	if err != nil {
		t.Fatalf("IngestTemp failed: %v", err)
	}
	pathB, err := store.IngestTemp([]byte("upload b"))
	if err != nil {
		t.Fatalf("IngestTemp failed: %v", err)
	}
	if pathA == pathB {
		t.Fatalf("Concurrent uploads share temp path %q", pathA)
	}

	got, err := os.ReadFile(pathA)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != "upload a" {
		t.Errorf("Temp content mismatch: %q", got)
	}

	store.ReleaseTemp(pathA)
	store.ReleaseTemp(pathB)
	if _, err := os.Stat(pathA); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Temp file still present after release")
	}

	// Releasing twice is a no-op.
	store.ReleaseTemp(pathA)
}
