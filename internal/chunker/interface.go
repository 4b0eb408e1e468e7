package chunker

import (
	"context"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// TokenCounter measures text in model tokens.
type TokenCounter interface {
	Count(text string) int
}

// Chunker merges fragmented segments and partitions a transcript into
// token-budgeted groups for LLM context windows.
type Chunker interface {
	// PreAggregate merges consecutive segments while the running segment's
	// duration is below the configured minimum. Returned segments are new
	// values; the input is never mutated.
	PreAggregate(segments []models.Segment) []models.Segment

	// Chunk pre-aggregates and then greedily packs segments into ordered
	// groups under the token budget. A segment is never split across
	// chunks; a single oversized segment still gets its own chunk.
	Chunk(ctx context.Context, t *models.Transcript) [][]models.Segment
}
