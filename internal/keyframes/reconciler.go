package keyframes

import (
	"context"
	"fmt"
	"sort"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// maxFallbackFrames caps how many chapter-midpoint frames are synthesized
// when the model suggested no keyframes.
const maxFallbackFrames = 5

// Reconcile collects every keyframe request across chapters, extracts the
// images, and assigns paths back onto the originating KeyFrame values in
// request order. Frames that fail to extract simply stay without an image.
func (r *implReconciler) Reconcile(ctx context.Context, result *models.SummaryResult, mediaSource, videoID string) {
	requests := collectRequests(result)

	if len(requests) == 0 {
		r.logger.Warn(ctx, "Model suggested no keyframes, falling back to chapter midpoints (max %d)", maxFallbackFrames)
		synthesizeFallbacks(result)
		requests = collectRequests(result)
	}
	if len(requests) == 0 {
		return
	}

	timestamps := make([]float64, len(requests))
	for i, kf := range requests {
		timestamps[i] = kf.Timestamp
	}

	r.logger.Info(ctx, "Extracting %d keyframes...", len(timestamps))
	paths := r.extractor.ExtractBatch(ctx, mediaSource, videoID, timestamps)

	for i, path := range paths {
		if path != "" {
			requests[i].ImagePath = path
		}
	}
}

func collectRequests(result *models.SummaryResult) []*models.KeyFrame {
	var requests []*models.KeyFrame
	for ci := range result.Chapters {
		frames := result.Chapters[ci].KeyFrames
		for fi := range frames {
			requests = append(requests, &frames[fi])
		}
	}
	return requests
}

// synthesizeFallbacks places one midpoint keyframe into each of the longest
// chapters, capped, then ordered chronologically.
func synthesizeFallbacks(result *models.SummaryResult) {
	idx := make([]int, len(result.Chapters))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return result.Chapters[idx[a]].Duration() > result.Chapters[idx[b]].Duration()
	})
	if len(idx) > maxFallbackFrames {
		idx = idx[:maxFallbackFrames]
	}
	sort.Ints(idx)

	for _, ci := range idx {
		ch := &result.Chapters[ci]
		mid := ch.StartTime + ch.Duration()/2
		ch.KeyFrames = []models.KeyFrame{{
			Timestamp:   mid,
			Description: fmt.Sprintf("Overview of %s", ch.Title),
		}}
	}
}
