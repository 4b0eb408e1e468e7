package chunker

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// PreAggregate merges runs of short segments so token-based splitting works
// on coherent stretches of speech instead of caption-sized fragments.
func (c *implChunker) PreAggregate(segments []models.Segment) []models.Segment {
	if len(segments) == 0 {
		return nil
	}

	merged := make([]models.Segment, 0, len(segments))
	current := segments[0]

	for _, next := range segments[1:] {
		if current.Duration() < c.minDuration {
			current = models.Segment{
				Start: current.Start,
				End:   next.End,
				Text:  strings.TrimSpace(current.Text + " " + next.Text),
			}
		} else {
			merged = append(merged, current)
			current = next
		}
	}
	merged = append(merged, current)

	return merged
}

// Chunk partitions the pre-aggregated transcript into ordered groups whose
// token totals stay under the budget. Boundaries are deterministic for
// identical input and budget.
func (c *implChunker) Chunk(ctx context.Context, t *models.Transcript) [][]models.Segment {
	segments := c.PreAggregate(t.Segments)

	var chunks [][]models.Segment
	var current []models.Segment
	currentTokens := 0

	for _, seg := range segments {
		segTokens := c.counter.Count(seg.Text)

		if currentTokens+segTokens > c.maxTokens && len(current) > 0 {
			chunks = append(chunks, current)
			current = nil
			currentTokens = 0
		}

		current = append(current, seg)
		currentTokens += segTokens
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}

	c.logger.Info(ctx, "Split transcript into %d chunks", len(chunks))
	return chunks
}
