package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/vidsum/internal/cache"
	"github.com/nguyentantai21042004/vidsum/internal/chunker"
	"github.com/nguyentantai21042004/vidsum/internal/config"
	"github.com/nguyentantai21042004/vidsum/internal/keyframes"
	"github.com/nguyentantai21042004/vidsum/internal/llm"
	"github.com/nguyentantai21042004/vidsum/internal/logger"
	"github.com/nguyentantai21042004/vidsum/internal/provider"
	"github.com/nguyentantai21042004/vidsum/internal/render"
	"github.com/nguyentantai21042004/vidsum/internal/summarizer"
	"github.com/nguyentantai21042004/vidsum/internal/transcript"
	"github.com/nguyentantai21042004/vidsum/pkg/executor"
)

// Deps are the collaborators a Pipeline orchestrates. Tests inject fakes
// here; production code goes through Build.
type Deps struct {
	Provider   provider.Deps
	Summarizer summarizer.Summarizer
	Cache      cache.Cache
	Reconciler keyframes.Reconciler
	Writer     render.Writer
	Logger     logger.Logger
}

type implPipeline struct {
	providerDeps provider.Deps
	summarizer   summarizer.Summarizer
	cache        cache.Cache
	reconciler   keyframes.Reconciler
	writer       render.Writer
	logger       logger.Logger
}

// New creates a Pipeline from pre-built collaborators.
func New(deps Deps) Pipeline {
	return &implPipeline{
		providerDeps: deps.Provider,
		summarizer:   deps.Summarizer,
		cache:        deps.Cache,
		reconciler:   deps.Reconciler,
		writer:       deps.Writer,
		logger:       deps.Logger,
	}
}

// Build wires a Pipeline from configuration: executor, caption normalizer,
// LLM client, chunker, cache, keyframe extractor and output writer.
func Build(cfg *config.Config, cookiesPath string, log logger.Logger) (Pipeline, error) {
	exec := executor.New()

	c, err := cache.New(cfg.Paths.Cache, log)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	client, err := llm.New(cfg.LLM, cfg.Retry, log)
	if err != nil {
		return nil, fmt.Errorf("init llm client: %w", err)
	}

	counter, err := chunker.NewTokenCounter(cfg.LLM.Model)
	if err != nil {
		return nil, fmt.Errorf("init token counter: %w", err)
	}
	ch := chunker.New(cfg.Chunker.MaxTokens, cfg.Chunker.MinSegmentDuration, counter, log)

	extractor, err := keyframes.NewExtractor(filepath.Join(cfg.Paths.Output, "keyframes"), exec, log)
	if err != nil {
		return nil, fmt.Errorf("init keyframe extractor: %w", err)
	}

	return New(Deps{
		Provider: provider.Deps{
			Executor:    exec,
			Normalizer:  transcript.New(cfg.Languages.TranscriptPrefs, log),
			Whisper:     cfg.Whisper,
			CookiesPath: cookiesPath,
			CacheDir:    cfg.Paths.Cache,
			Logger:      log,
		},
		Summarizer: summarizer.New(client, ch, counter, c, cfg.LLM.Model, cfg.Languages.Output, log),
		Cache:      c,
		Reconciler: keyframes.NewReconciler(extractor, log),
		Writer:     render.New(cfg.Paths.Output, log),
		Logger:     log,
	}), nil
}
