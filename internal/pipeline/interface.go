package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// Options select the optional stages of a run.
type Options struct {
	// AllowASR enables the speech-to-text fallback when no caption track
	// exists.
	AllowASR bool
	// ExtractKeyframes extracts still images for chapter keyframes.
	ExtractKeyframes bool
	// UseVision refines chapter summaries from the extracted images. It
	// implies keyframe extraction.
	UseVision bool
	// Extractive additionally generates the no-LLM study notes.
	Extractive bool
	// ForceRefresh bypasses the summary cache.
	ForceRefresh bool
	// NoSave skips writing the output bundle to disk.
	NoSave bool
}

// Result is what a completed run hands back to the caller.
type Result struct {
	Metadata   models.VideoMetadata
	Transcript *models.Transcript
	Summary    *models.SummaryResult
	StudyNotes string
	// OutputDir is empty when saving was disabled.
	OutputDir string
}

// Pipeline runs the whole summarization flow for one video URL: metadata,
// transcript, map-reduce summary, optional keyframes and vision refinement,
// study notes, output bundle.
type Pipeline interface {
	Run(ctx context.Context, url string, opts Options) (*Result, error)
}
