package keyframes

import (
	"context"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// Extractor pulls single still frames out of a media source at given
// timestamps. Extraction is idempotent per (video id, timestamp).
type Extractor interface {
	// ExtractFrame seeks the media source and decodes one frame. Returns
	// the image path, reusing an existing file when present.
	ExtractFrame(ctx context.Context, mediaSource, videoID string, timestamp float64) (string, error)

	// ExtractBatch extracts one frame per timestamp. The returned slice is
	// positional: a failed extraction leaves an empty string at its index
	// and never aborts the batch.
	ExtractBatch(ctx context.Context, mediaSource, videoID string, timestamps []float64) []string
}

// Reconciler maps keyframe requests in a summary onto extracted images,
// synthesizing chapter-midpoint fallbacks when the model suggested none.
type Reconciler interface {
	Reconcile(ctx context.Context, result *models.SummaryResult, mediaSource, videoID string)
}
