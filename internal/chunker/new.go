package chunker

import (
	"github.com/nguyentantai21042004/vidsum/internal/logger"
)

type implChunker struct {
	maxTokens   int
	minDuration float64
	counter     TokenCounter
	logger      logger.Logger
}

// New creates a Chunker with the given per-chunk token budget and minimum
// segment duration for pre-aggregation.
func New(maxTokens int, minDuration float64, counter TokenCounter, log logger.Logger) Chunker {
	return &implChunker{
		maxTokens:   maxTokens,
		minDuration: minDuration,
		counter:     counter,
		logger:      log,
	}
}
