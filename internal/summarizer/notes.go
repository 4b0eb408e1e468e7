package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// GenerateStudyNotes renders freeform Markdown study notes via the LLM,
// unwrapping a single enclosing code fence if the model added one.
func (s *implSummarizer) GenerateStudyNotes(ctx context.Context, t *models.Transcript, meta models.VideoMetadata, summary *models.SummaryResult) (string, error) {
	s.logger.Info(ctx, "Generating study notes...")

	md, err := s.llm.CompleteText(ctx, studySystemPrompt, buildStudyPrompt(meta, t.FullText(), summary))
	if err != nil {
		return "", fmt.Errorf("generate study notes: %w", err)
	}
	return stripCodeFence(md), nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	nl := strings.Index(text, "\n")
	end := strings.LastIndex(text, "```")
	if nl == -1 || end <= nl {
		return text
	}
	return strings.TrimSpace(text[nl+1 : end])
}

const (
	extractiveWindows   = 8
	extractiveMaxPoints = 10
	bucketSpanSeconds   = 180.0
)

// GenerateExtractiveNotes derives study notes from the transcript with no
// model call: windowed key points followed by time-bucketed segment
// summaries. An empty transcript yields only the header lines.
func (s *implSummarizer) GenerateExtractiveNotes(t *models.Transcript, meta models.VideoMetadata) string {
	lines := []string{
		fmt.Sprintf("# %s", meta.Title),
		fmt.Sprintf("\n> 作者：%s\n", meta.Author),
		"## 提取式要点（基于原文）",
	}

	total := len(t.Segments)
	if total == 0 {
		return strings.Join(lines, "\n")
	}

	window := total / extractiveWindows
	if window < 1 {
		window = 1
	}

	var keyPoints []string
	for i := 0; i < total; i += window {
		end := i + window
		if end > total {
			end = total
		}
		var texts []string
		for _, seg := range t.Segments[i:end] {
			if text := strings.TrimSpace(seg.Text); text != "" {
				texts = append(texts, text)
			}
			if len(texts) == 3 {
				break
			}
		}
		if snippet := strings.Join(texts, "，"); snippet != "" {
			keyPoints = append(keyPoints, snippet)
		}
	}
	if len(keyPoints) > extractiveMaxPoints {
		keyPoints = keyPoints[:extractiveMaxPoints]
	}
	for _, kp := range keyPoints {
		lines = append(lines, "- "+kp)
	}

	lines = append(lines, "\n## 分段摘要（按时序）")

	flush := func(bucket []models.Segment) {
		var texts []string
		for _, seg := range bucket {
			if text := strings.TrimSpace(seg.Text); text != "" {
				texts = append(texts, text)
			}
		}
		lines = append(lines, "- "+strings.Join(texts, "；"))
	}

	currentStart := t.Segments[0].Start
	var bucket []models.Segment
	for _, seg := range t.Segments {
		if seg.Start-currentStart > bucketSpanSeconds && len(bucket) > 0 {
			flush(bucket)
			currentStart = seg.Start
			bucket = nil
		}
		bucket = append(bucket, seg)
	}
	if len(bucket) > 0 {
		flush(bucket)
	}

	return strings.Join(lines, "\n")
}
