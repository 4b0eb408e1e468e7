package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// VideoSource is the caption/metadata collaborator contract, one variant per
// supported platform.
type VideoSource interface {
	// ExtractInfo returns the video's metadata.
	ExtractInfo(ctx context.Context, url string) (*models.VideoMetadata, error)

	// GetTranscript fetches and normalizes the best caption track. When no
	// usable track exists and allowASR is set, it falls back to local
	// speech-to-text; otherwise it returns transcript.ErrNoTranscript.
	GetTranscript(ctx context.Context, url string, allowASR bool) (*models.Transcript, error)

	// StreamURL resolves a directly seekable media URL for frame
	// extraction.
	StreamURL(ctx context.Context, url string) (string, error)
}

// ForURL dispatches to a platform variant by inspecting the URL itself,
// never by runtime type inspection.
func ForURL(url string, deps Deps) (VideoSource, error) {
	switch {
	case strings.Contains(url, "bilibili.com"), strings.HasPrefix(url, "BV"):
		return NewBilibili(deps), nil
	case strings.Contains(url, "youtube.com"), strings.Contains(url, "youtu.be"):
		return NewYouTube(deps), nil
	default:
		return nil, fmt.Errorf("unsupported video URL: %s", url)
	}
}
