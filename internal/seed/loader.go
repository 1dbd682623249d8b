package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one bookmark in the seed file. Only the URL is required;
// a missing name is derived the same way the quick-add flow derives it.
type Entry struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Loader handles loading and parsing of a bookmarks seed file.
type Loader struct {
	filePath string
}

// NewLoader creates a seed loader for the given file.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed file.
func (l *Loader) Load() ([]Entry, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		// Entries without a URL cannot become bookmarks
		if e.URL == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
