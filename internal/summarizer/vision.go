package summarizer

import (
	"context"
	"encoding/json"
	"os"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// maxVisionImages caps how many keyframe images are attached per chapter.
const maxVisionImages = 6

// RefineWithVision re-derives each chapter's bullet summary from its
// extracted keyframe images. Any per-chapter failure leaves the existing
// summary in place.
func (s *implSummarizer) RefineWithVision(ctx context.Context, result *models.SummaryResult) {
	if !hasImages(result) {
		return
	}

	s.logger.Info(ctx, "Refining chapter summaries using vision keyframes...")
	zero := 0.0

	for ci := range result.Chapters {
		ch := &result.Chapters[ci]

		var images [][]byte
		for _, kf := range ch.KeyFrames {
			if kf.ImagePath == "" || len(images) == maxVisionImages {
				continue
			}
			data, err := os.ReadFile(kf.ImagePath)
			if err != nil {
				s.logger.Warn(ctx, "Skip image %s: %v", kf.ImagePath, err)
				continue
			}
			images = append(images, data)
		}
		if len(images) == 0 {
			continue
		}

		raw, err := s.llm.CompleteVision(ctx, visionSystemPrompt, buildVisionPrompt(*ch), images, &zero)
		if err != nil {
			s.logger.Warn(ctx, "Vision refine failed for chapter %q: %v", ch.Title, err)
			continue
		}

		var parsed struct {
			Summary []string `json:"summary"`
		}
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil || len(parsed.Summary) == 0 {
			s.logger.Warn(ctx, "Vision refine returned unusable response for chapter %q", ch.Title)
			continue
		}
		ch.Summary = parsed.Summary
	}
}

func hasImages(result *models.SummaryResult) bool {
	for _, ch := range result.Chapters {
		for _, kf := range ch.KeyFrames {
			if kf.ImagePath != "" {
				return true
			}
		}
	}
	return false
}
