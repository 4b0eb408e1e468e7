package pipeline

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/vidsum/internal/models"
	"github.com/nguyentantai21042004/vidsum/internal/provider"
	"github.com/nguyentantai21042004/vidsum/internal/render"
	"github.com/nguyentantai21042004/vidsum/internal/summarizer"
)

// Run executes the full flow for one URL. Fatal errors surface before
// anything is written; per-unit failures inside keyframe extraction and
// vision refinement degrade silently.
func (p *implPipeline) Run(ctx context.Context, url string, opts Options) (*Result, error) {
	src, err := provider.ForURL(url, p.providerDeps)
	if err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "Fetching video info...")
	meta, err := src.ExtractInfo(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("extract video info: %w", err)
	}

	t, err := p.fetchTranscript(ctx, src, url, meta.ID, opts.AllowASR)
	if err != nil {
		return nil, err
	}
	p.logger.Info(ctx, "Found video: %s (%d segments)", meta.Title, len(t.Segments))

	wantFrames := opts.ExtractKeyframes || opts.UseVision
	summary, err := p.summarizer.Summarize(ctx, t, *meta, summarizer.Options{
		ExtractKeyframes: wantFrames,
		ForceRefresh:     opts.ForceRefresh,
	})
	if err != nil {
		return nil, err
	}

	if wantFrames {
		p.extractKeyframes(ctx, src, url, meta.ID, summary)
	}
	if opts.UseVision {
		p.summarizer.RefineWithVision(ctx, summary)
	}

	studyNotes, err := p.summarizer.GenerateStudyNotes(ctx, t, *meta, summary)
	if err != nil {
		return nil, err
	}

	var extractiveNotes string
	if opts.Extractive {
		extractiveNotes = p.summarizer.GenerateExtractiveNotes(t, *meta)
	}

	result := &Result{
		Metadata:   *meta,
		Transcript: t,
		Summary:    summary,
		StudyNotes: studyNotes,
	}

	if !opts.NoSave {
		dir, err := p.writer.Save(ctx, render.Bundle{
			Metadata:        *meta,
			Transcript:      t,
			Summary:         summary,
			StudyNotes:      studyNotes,
			ExtractiveNotes: extractiveNotes,
		})
		if err != nil {
			return nil, err
		}
		result.OutputDir = dir
	}

	return result, nil
}

// fetchTranscript serves the cached transcript when present, otherwise
// fetches and caches a fresh one.
func (p *implPipeline) fetchTranscript(ctx context.Context, src provider.VideoSource, url, videoID string, allowASR bool) (*models.Transcript, error) {
	if cached, ok := p.cache.GetTranscript(videoID); ok {
		p.logger.Info(ctx, "Using cached transcript for %s", videoID)
		return cached, nil
	}

	t, err := src.GetTranscript(ctx, url, allowASR)
	if err != nil {
		return nil, err
	}

	if err := p.cache.SaveTranscript(t); err != nil {
		p.logger.Warn(ctx, "Failed to cache transcript: %v", err)
	}
	return t, nil
}

// extractKeyframes resolves a seekable stream URL and reconciles keyframe
// requests against it. Any failure here degrades to a summary without
// images.
func (p *implPipeline) extractKeyframes(ctx context.Context, src provider.VideoSource, url, videoID string, summary *models.SummaryResult) {
	streamURL, err := src.StreamURL(ctx, url)
	if err != nil {
		p.logger.Warn(ctx, "Could not resolve stream URL, skipping keyframes: %v", err)
		return
	}
	p.reconciler.Reconcile(ctx, summary, streamURL, videoID)
}
