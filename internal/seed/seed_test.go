package seed

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
)

const seedYAML = `- name: GitHub
  url: github.com
- url: medium.com/some-post
- name: Missing URL
- url: github.com
`

func writeSeedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

func TestLoaderSkipsEntriesWithoutURL(t *testing.T) {
	entries, err := NewLoader(writeSeedFile(t)).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Load() = %d entries, want 3 (entry without url dropped)", len(entries))
	}
	if entries[0].Name != "GitHub" || entries[0].URL != "github.com" {
		t.Errorf("Load()[0] = %+v", entries[0])
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader("/nonexistent/bookmarks.yaml").Load(); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestLoaderMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{{not yaml"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() should fail for malformed yaml")
	}
}

// memRemote is a minimal in-memory session.RemoteStore.
type memRemote struct {
	mu      sync.Mutex
	records []domain.Bookmark
	nextID  int
}

func (m *memRemote) Select(context.Context, string) ([]domain.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Bookmark, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memRemote) Insert(_ context.Context, b domain.Bookmark) (domain.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	b.ID = string(rune('a' + m.nextID))
	m.records = append(m.records, b)
	return b, nil
}

func (m *memRemote) Update(context.Context, string, string, domain.BookmarkPatch) (domain.Bookmark, error) {
	return domain.Bookmark{}, nil
}

func (m *memRemote) Delete(context.Context, string, string) error { return nil }

func TestImporterNormalizesAndDeduplicates(t *testing.T) {
	remote := &memRemote{}
	imp := NewImporter(writeSeedFile(t), remote, logger.New("error", false))

	imported, err := imp.Import(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	// Duplicate github.com entry collapses after normalization.
	if imported != 2 {
		t.Fatalf("Import() = %d, want 2", imported)
	}

	byURL := map[string]domain.Bookmark{}
	for _, b := range remote.records {
		byURL[b.URL] = b
	}

	gh, ok := byURL["https://github.com"]
	if !ok {
		t.Fatal("github entry missing")
	}
	if gh.Name != "GitHub" || gh.Category != domain.CategoryCode {
		t.Errorf("github entry = %+v", gh)
	}

	med, ok := byURL["https://medium.com/some-post"]
	if !ok {
		t.Fatal("medium entry missing")
	}
	if med.Name != "medium.com" {
		t.Errorf("derived name = %q, want medium.com", med.Name)
	}
	if med.Category != domain.CategoryBlog {
		t.Errorf("medium category = %v", med.Category)
	}
}

func TestImporterSecondRunIsNoop(t *testing.T) {
	remote := &memRemote{}
	imp := NewImporter(writeSeedFile(t), remote, logger.New("error", false))

	if _, err := imp.Import(context.Background(), "user-1"); err != nil {
		t.Fatalf("first Import() error: %v", err)
	}
	imported, err := imp.Import(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("second Import() error: %v", err)
	}
	if imported != 0 {
		t.Errorf("second Import() = %d, want 0", imported)
	}
}
