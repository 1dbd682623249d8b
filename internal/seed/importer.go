package seed

import (
	"context"
	"fmt"

	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
	"github.com/BalajiAXG/BookMark-Repo/internal/session"
)

// Importer inserts seed entries into a user's collection on boot.
// URLs already present are skipped so repeated boots stay idempotent.
type Importer struct {
	loader *Loader
	remote session.RemoteStore
	logger logger.Logger
}

// NewImporter creates an importer reading from seedFile.
func NewImporter(seedFile string, remote session.RemoteStore, log logger.Logger) *Importer {
	return &Importer{
		loader: NewLoader(seedFile),
		remote: remote,
		logger: log,
	}
}

// Import loads the seed file and inserts missing bookmarks for userID.
// Entries run through the same normalization, categorization and
// name derivation as live adds.
func (i *Importer) Import(ctx context.Context, userID string) (int, error) {
	entries, err := i.loader.Load()
	if err != nil {
		return 0, err
	}

	existing, err := i.remote.Select(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load existing bookmarks: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, b := range existing {
		present[b.URL] = true
	}

	imported := 0
	for _, e := range entries {
		url := domain.NormalizeURL(e.URL)
		if present[url] {
			continue
		}

		name := e.Name
		if name == "" {
			name = domain.DeriveName(url)
		}

		b := domain.Bookmark{
			UserID:   userID,
			Name:     name,
			URL:      url,
			Category: domain.Categorize(url),
		}
		if _, err := i.remote.Insert(ctx, b); err != nil {
			return imported, fmt.Errorf("failed to import %s: %w", url, err)
		}
		present[url] = true
		imported++
	}

	i.logger.Info("seed import finished",
		logger.String("user_id", userID),
		logger.Int("imported", imported),
		logger.Int("skipped", len(entries)-imported))

	return imported, nil
}
