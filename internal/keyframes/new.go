package keyframes

import (
	"fmt"
	"os"

	"github.com/nguyentantai21042004/vidsum/internal/logger"
	"github.com/nguyentantai21042004/vidsum/pkg/executor"
)

type implExtractor struct {
	outputDir string
	exec      executor.Executor
	logger    logger.Logger
}

// NewExtractor creates an Extractor writing frames under outputDir.
func NewExtractor(outputDir string, exec executor.Executor, log logger.Logger) (Extractor, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create keyframes dir: %w", err)
	}
	return &implExtractor{
		outputDir: outputDir,
		exec:      exec,
		logger:    log,
	}, nil
}

type implReconciler struct {
	extractor Extractor
	logger    logger.Logger
}

// NewReconciler creates a Reconciler delegating image extraction to the
// given Extractor.
func NewReconciler(extractor Extractor, log logger.Logger) Reconciler {
	return &implReconciler{
		extractor: extractor,
		logger:    log,
	}
}
