package chunker

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/vidsum/internal/logger"
	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// wordCounter counts whitespace-separated words, standing in for a real
// tokenizer so tests stay hermetic.
type wordCounter struct{}

func (wordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

func newTestChunker(maxTokens int, minDuration float64) Chunker {
	return New(maxTokens, minDuration, wordCounter{}, logger.New("error"))
}

func makeSegments(count int, segDuration float64, wordsPer int) []models.Segment {
	segs := make([]models.Segment, count)
	words := make([]string, wordsPer)
	for i := range words {
		words[i] = "w"
	}
	text := strings.Join(words, " ")
	for i := range segs {
		start := float64(i) * segDuration
		segs[i] = models.Segment{
			Start: start,
			End:   start + segDuration,
			Text:  fmt.Sprintf("s%d %s", i, text),
		}
	}
	return segs
}

func TestPreAggregateMergesShortSegments(t *testing.T) {
	c := newTestChunker(3000, 20)

	segs := []models.Segment{
		{Start: 0, End: 5, Text: "a"},
		{Start: 5, End: 10, Text: "b"},
		{Start: 10, End: 25, Text: "c"},
		{Start: 25, End: 50, Text: "d"},
		{Start: 50, End: 55, Text: "e"},
	}

	merged := c.PreAggregate(segs)
	want := []models.Segment{
		{Start: 0, End: 25, Text: "a b c"},
		{Start: 25, End: 50, Text: "d"},
		{Start: 50, End: 55, Text: "e"},
	}

	if !reflect.DeepEqual(merged, want) {
		t.Errorf("PreAggregate() = %+v, want %+v", merged, want)
	}
}

func TestPreAggregateEmpty(t *testing.T) {
	c := newTestChunker(3000, 20)
	if got := c.PreAggregate(nil); got != nil {
		t.Errorf("PreAggregate(nil) = %v, want nil", got)
	}
}

func TestPreAggregateIdempotent(t *testing.T) {
	c := newTestChunker(3000, 20)

	segs := makeSegments(40, 15, 5)
	once := c.PreAggregate(segs)
	twice := c.PreAggregate(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("PreAggregate not idempotent: %d then %d segments", len(once), len(twice))
	}
}

func TestPreAggregateDoesNotMutateInput(t *testing.T) {
	c := newTestChunker(3000, 20)

	segs := []models.Segment{
		{Start: 0, End: 5, Text: "a"},
		{Start: 5, End: 10, Text: "b"},
	}
	orig := make([]models.Segment, len(segs))
	copy(orig, segs)

	c.PreAggregate(segs)
	if !reflect.DeepEqual(segs, orig) {
		t.Error("PreAggregate mutated its input")
	}
}

func TestChunkReproducesSegmentSequence(t *testing.T) {
	c := newTestChunker(300, 20)

	tr := &models.Transcript{Segments: makeSegments(100, 15, 20)}
	preAgg := c.PreAggregate(tr.Segments)
	chunks := c.Chunk(context.Background(), tr)

	var flat []models.Segment
	for _, ch := range chunks {
		if len(ch) == 0 {
			t.Fatal("empty chunk produced")
		}
		flat = append(flat, ch...)
	}

	if !reflect.DeepEqual(flat, preAgg) {
		t.Errorf("concatenated chunks (%d segs) != pre-aggregated sequence (%d segs)",
			len(flat), len(preAgg))
	}
}

func TestChunkOversizedSegmentGetsOwnChunk(t *testing.T) {
	c := newTestChunker(10, 0)

	tr := &models.Transcript{Segments: []models.Segment{
		{Start: 0, End: 30, Text: "short one"},
		{Start: 30, End: 60, Text: strings.Repeat("big ", 50)},
		{Start: 60, End: 90, Text: "tail"},
	}}

	chunks := c.Chunk(context.Background(), tr)
	if len(chunks) != 3 {
		t.Fatalf("Chunk() = %d chunks, want 3", len(chunks))
	}
	if len(chunks[1]) != 1 {
		t.Errorf("oversized segment should sit alone, chunk has %d segments", len(chunks[1]))
	}
}

// Scenario: 40 segments over 600s, each 15s and ~50 tokens. Pre-aggregation
// merges every pair, and the whole transcript fits in one 3000-token chunk.
func TestChunkShortVideoSingleChunk(t *testing.T) {
	c := newTestChunker(3000, 20)

	tr := &models.Transcript{Segments: makeSegments(40, 15, 49)}
	merged := c.PreAggregate(tr.Segments)
	if len(merged) != 20 {
		t.Errorf("PreAggregate() = %d segments, want 20 pair-merges", len(merged))
	}

	chunks := c.Chunk(context.Background(), tr)
	if len(chunks) != 1 {
		t.Errorf("Chunk() = %d chunks, want 1", len(chunks))
	}
}

// Scenario: the same transcript repeated 10 times (~20000 tokens) must yield
// several chunks, each within the token budget.
func TestChunkLongVideoManyChunks(t *testing.T) {
	c := newTestChunker(3000, 20)

	tr := &models.Transcript{Segments: makeSegments(400, 15, 49)}
	chunks := c.Chunk(context.Background(), tr)

	if len(chunks) < 6 {
		t.Fatalf("Chunk() = %d chunks, want >= 6", len(chunks))
	}

	counter := wordCounter{}
	for i, ch := range chunks {
		total := 0
		for _, seg := range ch {
			total += counter.Count(seg.Text)
		}
		if total > 3000 {
			t.Errorf("chunk %d has %d tokens, budget is 3000", i, total)
		}
	}

	// Chronological order across chunk boundaries.
	last := -1.0
	for _, ch := range chunks {
		for _, seg := range ch {
			if seg.Start < last {
				t.Fatal("chunks are not in chronological order")
			}
			last = seg.Start
		}
	}
}
