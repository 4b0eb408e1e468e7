package summarizer

import (
	"github.com/nguyentantai21042004/vidsum/internal/cache"
	"github.com/nguyentantai21042004/vidsum/internal/chunker"
	"github.com/nguyentantai21042004/vidsum/internal/llm"
	"github.com/nguyentantai21042004/vidsum/internal/logger"
)

type implSummarizer struct {
	llm        llm.Client
	chunker    chunker.Chunker
	counter    chunker.TokenCounter
	cache      cache.Cache
	model      string
	outputLang string
	logger     logger.Logger
}

// New creates a Summarizer. The model and output language participate in the
// cache key, so switching either never serves a stale summary.
func New(client llm.Client, ch chunker.Chunker, counter chunker.TokenCounter, c cache.Cache, model, outputLang string, log logger.Logger) Summarizer {
	return &implSummarizer{
		llm:        client,
		chunker:    ch,
		counter:    counter,
		cache:      c,
		model:      model,
		outputLang: outputLang,
		logger:     log,
	}
}
