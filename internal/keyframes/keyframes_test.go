package keyframes

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nguyentantai21042004/vidsum/internal/logger"
	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// fakeExtractor records requested timestamps and fails on demand.
type fakeExtractor struct {
	calls  []float64
	failAt map[int]bool
}

var _ Extractor = (*fakeExtractor)(nil)

func (f *fakeExtractor) ExtractFrame(ctx context.Context, mediaSource, videoID string, ts float64) (string, error) {
	if f.failAt[len(f.calls)] {
		f.calls = append(f.calls, ts)
		return "", errors.New("ffmpeg failed")
	}
	f.calls = append(f.calls, ts)
	return fmt.Sprintf("frames/%s_%d.jpg", videoID, int(ts)), nil
}

func (f *fakeExtractor) ExtractBatch(ctx context.Context, mediaSource, videoID string, timestamps []float64) []string {
	paths := make([]string, len(timestamps))
	for i, ts := range timestamps {
		path, err := f.ExtractFrame(ctx, mediaSource, videoID, ts)
		if err != nil {
			continue
		}
		paths[i] = path
	}
	return paths
}

func chapter(title string, start, end float64, frames ...models.KeyFrame) models.Chapter {
	return models.Chapter{Title: title, StartTime: start, EndTime: end, KeyFrames: frames}
}

func TestReconcileAssignsPathsInOrder(t *testing.T) {
	result := &models.SummaryResult{Chapters: []models.Chapter{
		chapter("a", 0, 60, models.KeyFrame{Timestamp: 10}, models.KeyFrame{Timestamp: 30}),
		chapter("b", 60, 120, models.KeyFrame{Timestamp: 90}),
	}}

	ext := &fakeExtractor{}
	r := NewReconciler(ext, logger.New("error"))
	r.Reconcile(context.Background(), result, "video.mp4", "vid1")

	want := []float64{10, 30, 90}
	if len(ext.calls) != len(want) {
		t.Fatalf("extracted %d frames, want %d", len(ext.calls), len(want))
	}
	for i, ts := range want {
		if ext.calls[i] != ts {
			t.Errorf("call %d = %v, want %v", i, ext.calls[i], ts)
		}
	}

	if got := result.Chapters[0].KeyFrames[1].ImagePath; got != "frames/vid1_30.jpg" {
		t.Errorf("image path = %q", got)
	}
	if got := result.Chapters[1].KeyFrames[0].ImagePath; got != "frames/vid1_90.jpg" {
		t.Errorf("image path = %q", got)
	}
}

func TestReconcileFailedFrameLeavesPathUnset(t *testing.T) {
	result := &models.SummaryResult{Chapters: []models.Chapter{
		chapter("a", 0, 60, models.KeyFrame{Timestamp: 10}, models.KeyFrame{Timestamp: 30}),
	}}

	ext := &fakeExtractor{failAt: map[int]bool{0: true}}
	r := NewReconciler(ext, logger.New("error"))
	r.Reconcile(context.Background(), result, "video.mp4", "vid1")

	if got := result.Chapters[0].KeyFrames[0].ImagePath; got != "" {
		t.Errorf("failed frame path = %q, want empty", got)
	}
	if got := result.Chapters[0].KeyFrames[1].ImagePath; got == "" {
		t.Error("second frame should still get a path")
	}
}

func TestReconcileFallbackPicksLongestChaptersChronologically(t *testing.T) {
	// Seven chapters, none with suggested keyframes. The five longest are
	// b(120s), d(100s), f(90s), a(80s), g(70s); c and e are shortest.
	result := &models.SummaryResult{Chapters: []models.Chapter{
		chapter("a", 0, 80),
		chapter("b", 80, 200),
		chapter("c", 200, 230),
		chapter("d", 230, 330),
		chapter("e", 330, 370),
		chapter("f", 370, 460),
		chapter("g", 460, 530),
	}}

	ext := &fakeExtractor{}
	r := NewReconciler(ext, logger.New("error"))
	r.Reconcile(context.Background(), result, "video.mp4", "vid1")

	if len(ext.calls) != 5 {
		t.Fatalf("extracted %d fallback frames, want 5", len(ext.calls))
	}

	// Midpoints of a, b, d, f, g in ascending order.
	want := []float64{40, 140, 280, 415, 495}
	for i, ts := range want {
		if ext.calls[i] != ts {
			t.Errorf("fallback timestamp %d = %v, want %v", i, ext.calls[i], ts)
		}
	}

	for _, short := range []int{2, 4} {
		if len(result.Chapters[short].KeyFrames) != 0 {
			t.Errorf("short chapter %q got a fallback frame", result.Chapters[short].Title)
		}
	}
	if desc := result.Chapters[0].KeyFrames[0].Description; desc != "Overview of a" {
		t.Errorf("fallback description = %q", desc)
	}
}

func TestReconcileNoChaptersIsNoop(t *testing.T) {
	result := &models.SummaryResult{}
	ext := &fakeExtractor{}
	NewReconciler(ext, logger.New("error")).Reconcile(context.Background(), result, "video.mp4", "vid1")
	if len(ext.calls) != 0 {
		t.Errorf("extracted %d frames from empty summary", len(ext.calls))
	}
}
