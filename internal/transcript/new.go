package transcript

import (
	"github.com/nguyentantai21042004/vidsum/internal/logger"
)

type implNormalizer struct {
	langPrefs []string
	logger    logger.Logger
}

// New creates a Normalizer with the given caption language preference order,
// best first.
func New(langPrefs []string, log logger.Logger) Normalizer {
	return &implNormalizer{
		langPrefs: langPrefs,
		logger:    log,
	}
}
