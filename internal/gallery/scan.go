package gallery

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPatterns are the file name patterns enumerated when none are
// configured.
func DefaultPatterns() []string {
	return []string{"*.jpg", "*.jpeg"}
}

// ListImages returns the regular files in dir matching each pattern in turn.
// Results are concatenated per pattern in directory order; a name matching
// two patterns appears twice. Matching follows filepath.Match and is case
// sensitive.
func ListImages(dir string, patterns []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading image directory: %w", err)
	}

	var paths []string
	for _, pattern := range patterns {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ok, err := filepath.Match(pattern, e.Name())
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", pattern, err)
			}
			if ok {
				paths = append(paths, filepath.Join(dir, e.Name()))
			}
		}
	}
	return paths, nil
}
