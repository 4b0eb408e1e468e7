package provider

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/vidsum/internal/models"
	"github.com/nguyentantai21042004/vidsum/internal/transcript"
)

// ExtractInfo returns metadata for the video behind the URL.
func (p *implProvider) ExtractInfo(ctx context.Context, videoURL string) (*models.VideoMetadata, error) {
	info, err := p.dumpInfo(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	entry := selectEntry(info, videoURL)

	author := entry.Uploader
	if author == "" {
		author = "Unknown"
	}
	pageURL := entry.WebpageURL
	if pageURL == "" {
		pageURL = videoURL
	}

	return &models.VideoMetadata{
		ID:           entry.ID,
		Title:        entry.Title,
		Author:       author,
		Duration:     entry.Duration,
		Platform:     p.platform,
		URL:          pageURL,
		Description:  entry.Description,
		ThumbnailURL: entry.Thumbnail,
	}, nil
}

// GetTranscript fetches the best caption track and normalizes it. Any
// caption failure falls back to ASR when allowed, otherwise surfaces
// transcript.ErrNoTranscript for the caller to decide.
func (p *implProvider) GetTranscript(ctx context.Context, videoURL string, allowASR bool) (*models.Transcript, error) {
	id, err := p.videoID(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	tr, capErr := p.captionTranscript(ctx, videoURL, id)
	if capErr == nil {
		return tr, nil
	}
	p.logger.Warn(ctx, "Caption transcript unavailable for %s: %v", id, capErr)

	if allowASR {
		p.logger.Info(ctx, "Falling back to speech-to-text for %s", id)
		return p.transcribeASR(ctx, videoURL, id)
	}

	return nil, fmt.Errorf("%w (enable ASR to transcribe audio)", transcript.ErrNoTranscript)
}

func (p *implProvider) captionTranscript(ctx context.Context, videoURL, id string) (*models.Transcript, error) {
	args := []string{"-J", "--no-warnings", "--write-subs", "--write-auto-subs", "--skip-download"}
	if p.cookies != "" {
		args = append(args, "--cookies", p.cookies)
	}
	args = append(args, videoURL)

	out, err := p.exec.Execute(ctx, "yt-dlp", args...)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp list subtitles: %w", err)
	}

	var info ytdlpInfo
	if err := unmarshalInfo(out, &info); err != nil {
		return nil, err
	}
	entry := selectEntry(&info, videoURL)

	tracks := collectTracks(entry)
	if len(tracks) == 0 {
		tracks = collectTracks(&info)
	}

	track, err := p.normalizer.SelectTrack(tracks)
	if err != nil {
		return nil, err
	}
	p.logger.Info(ctx, "Fetching caption track %s/%s", track.Language, track.Format)

	payload, err := p.fetchCaptions(ctx, track.URL)
	if err != nil {
		return nil, err
	}

	return p.normalizer.Normalize(ctx, id, *track, payload)
}
