package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/vidsum/internal/logger"
)

type implCache struct {
	dir    string
	logger logger.Logger
}

// New creates a Cache rooted at dir, creating the transcripts/ and
// summaries/ subdirectories up front.
func New(dir string, log logger.Logger) (Cache, error) {
	for _, sub := range []string{"transcripts", "summaries"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("create cache directory %s: %w", sub, err)
		}
	}

	return &implCache{dir: dir, logger: log}, nil
}
