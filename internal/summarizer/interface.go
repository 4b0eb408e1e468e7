package summarizer

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// ErrSummaryGeneration is returned when the reduce phase cannot produce a
// parseable structured summary, even after the single grounding retry.
var ErrSummaryGeneration = errors.New("summary generation failed")

// Options control a single summarization run.
type Options struct {
	// ExtractKeyframes asks the model to suggest keyframe timestamps per
	// chapter.
	ExtractKeyframes bool
	// ForceRefresh bypasses the summary cache.
	ForceRefresh bool
}

// Summarizer turns a transcript plus metadata into a structured summary via
// a map-reduce pass over the LLM, and derives study documents from it.
type Summarizer interface {
	// Summarize runs the cache-checked map-reduce pipeline. A video short
	// enough to fit in one chunk skips the map phase and is reduced over
	// the raw transcript text directly.
	Summarize(ctx context.Context, t *models.Transcript, meta models.VideoMetadata, opts Options) (*models.SummaryResult, error)

	// RefineWithVision re-derives chapter bullet summaries from extracted
	// keyframe images. Per-chapter failures leave that chapter untouched.
	RefineWithVision(ctx context.Context, result *models.SummaryResult)

	// GenerateStudyNotes renders freeform Markdown study notes via the LLM.
	GenerateStudyNotes(ctx context.Context, t *models.Transcript, meta models.VideoMetadata, summary *models.SummaryResult) (string, error)

	// GenerateExtractiveNotes derives study notes from the transcript alone,
	// deterministically and without any model call.
	GenerateExtractiveNotes(t *models.Transcript, meta models.VideoMetadata) string
}
