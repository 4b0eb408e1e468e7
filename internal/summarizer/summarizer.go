package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// retryTranscriptTokenCap bounds the raw transcript embedded in the
// grounding retry prompt so a very long video cannot blow the context
// window on the retry path.
const retryTranscriptTokenCap = 100000

// Summarize runs cache check, chunking, map, reduce and grounding check in
// order. The final accepted reduce response is cached verbatim.
func (s *implSummarizer) Summarize(ctx context.Context, t *models.Transcript, meta models.VideoMetadata, opts Options) (*models.SummaryResult, error) {
	cacheKey := fmt.Sprintf("%s_%s_%s_v2", meta.ID, s.model, s.outputLang)
	if !opts.ForceRefresh {
		if raw, ok := s.cache.GetSummary(cacheKey); ok {
			var cached models.SummaryResult
			if err := json.Unmarshal(raw, &cached); err == nil {
				s.logger.Info(ctx, "Using cached summary for %s", meta.ID)
				return &cached, nil
			}
		}
	}

	s.logger.Info(ctx, "Chunking transcript...")
	chunks := s.chunker.Chunk(ctx, t)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: transcript has no segments", ErrSummaryGeneration)
	}

	terms := requiredTerms(meta.Title)
	in := reduceInput{
		Title:            meta.Title,
		Author:           meta.Author,
		Language:         s.outputLang,
		RequiredTerms:    terms,
		ExtractKeyframes: opts.ExtractKeyframes,
	}

	if len(chunks) == 1 {
		// Short video: one reduce pass over the raw text, no map phase.
		s.logger.Info(ctx, "Single chunk detected, skipping map phase")
		in.Transcript = joinSegments(chunks[0])
	} else {
		in.Chunks = s.mapPhase(ctx, chunks)
	}

	s.logger.Info(ctx, "Starting reduce phase...")
	raw, err := s.llm.CompleteJSON(ctx, groundedSystemPrompt, buildReducePrompt(in), nil)
	if err != nil {
		return nil, fmt.Errorf("reduce phase: %w", err)
	}

	var result models.SummaryResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("%w: parse reduce response: %v", ErrSummaryGeneration, err)
	}

	if !mentionsAny(summaryText(&result), terms) {
		s.logger.Warn(ctx, "Summary mentions no title term, retrying over full transcript at temperature 0")
		retry := reduceInput{
			Title:         meta.Title,
			Author:        meta.Author,
			Language:      s.outputLang,
			RequiredTerms: terms,
			Transcript:    s.cappedFullText(t),
		}
		zero := 0.0
		raw, err = s.llm.CompleteJSON(ctx, groundedSystemPrompt, buildReducePrompt(retry), &zero)
		if err != nil {
			return nil, fmt.Errorf("grounding retry: %w", err)
		}
		var retried models.SummaryResult
		if err := json.Unmarshal([]byte(raw), &retried); err != nil {
			return nil, fmt.Errorf("%w: parse grounding retry response: %v", ErrSummaryGeneration, err)
		}
		result = retried
	}

	if err := s.cache.SaveSummary(cacheKey, []byte(raw)); err != nil {
		s.logger.Warn(ctx, "Failed to cache summary: %v", err)
	}

	return &result, nil
}

// chunkOutcome makes the map phase's partial-failure contract explicit: a
// failed chunk is reduced to an empty summary, never aborts the batch.
type chunkOutcome struct {
	summary models.ChunkSummary
	err     error
}

func (s *implSummarizer) mapPhase(ctx context.Context, chunks [][]models.Segment) []models.ChunkSummary {
	s.logger.Info(ctx, "Starting map phase for %d chunks...", len(chunks))

	outcomes := make([]chunkOutcome, len(chunks))
	for i, chunk := range chunks {
		s.logger.Info(ctx, "Processing chunk %d/%d...", i+1, len(chunks))
		summary, err := s.summarizeChunk(ctx, chunk)
		outcomes[i] = chunkOutcome{summary: summary, err: err}
	}

	summaries := make([]models.ChunkSummary, len(outcomes))
	for i, o := range outcomes {
		if o.err != nil {
			s.logger.Error(ctx, "Chunk %d/%d failed, substituting empty summary: %v", i+1, len(outcomes), o.err)
			summaries[i] = models.ChunkSummary{
				StartTime: chunks[i][0].Start,
				EndTime:   chunks[i][len(chunks[i])-1].End,
				KeyPoints: []string{},
			}
			continue
		}
		summaries[i] = o.summary
	}

	// Reduce reads chunks by start time, not completion order.
	sort.SliceStable(summaries, func(a, b int) bool {
		return summaries[a].StartTime < summaries[b].StartTime
	})
	return summaries
}

func (s *implSummarizer) summarizeChunk(ctx context.Context, chunk []models.Segment) (models.ChunkSummary, error) {
	start := chunk[0].Start
	end := chunk[len(chunk)-1].End

	raw, err := s.llm.CompleteJSON(ctx, groundedSystemPrompt, buildMapPrompt(start, end, joinSegments(chunk)), nil)
	if err != nil {
		return models.ChunkSummary{}, err
	}

	var summary models.ChunkSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return models.ChunkSummary{}, fmt.Errorf("parse chunk summary: %w", err)
	}
	return summary, nil
}

// cappedFullText joins segment texts until the retry token cap is reached.
func (s *implSummarizer) cappedFullText(t *models.Transcript) string {
	var b strings.Builder
	total := 0
	for _, seg := range t.Segments {
		n := s.counter.Count(seg.Text)
		if total+n > retryTranscriptTokenCap && b.Len() > 0 {
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(seg.Text)
		total += n
	}
	return b.String()
}

func joinSegments(segs []models.Segment) string {
	texts := make([]string, len(segs))
	for i, seg := range segs {
		texts[i] = seg.Text
	}
	return strings.Join(texts, "\n")
}

var parenReplacer = strings.NewReplacer("（", " ", "）", " ", "(", " ", ")", " ")

// requiredTerms tokenizes the video title into grounding terms, dropping
// parenthesis characters first.
func requiredTerms(title string) []string {
	return strings.Fields(parenReplacer.Replace(title))
}

// mentionsAny reports whether text contains at least one term,
// case-insensitively. An empty term list always passes.
func mentionsAny(text string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func summaryText(r *models.SummaryResult) string {
	parts := append([]string{r.OneSentenceSummary}, r.KeyPoints...)
	return strings.Join(parts, " ")
}
