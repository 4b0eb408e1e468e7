package provider

import (
	"context"
	"fmt"
	"strings"
)

// StreamURL resolves a direct, seekable media URL so keyframe extraction can
// seek without downloading the whole video. Prefers progressive MP4.
func (p *implProvider) StreamURL(ctx context.Context, videoURL string) (string, error) {
	args := []string{
		"-g",
		"-f", "best[ext=mp4]/best",
		"--no-warnings",
	}
	if p.cookies != "" {
		args = append(args, "--cookies", p.cookies)
	}
	args = append(args, videoURL)

	out, err := p.exec.Execute(ctx, "yt-dlp", args...)
	if err != nil {
		return "", fmt.Errorf("resolve stream url: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return "", fmt.Errorf("resolve stream url: empty yt-dlp output")
	}

	return strings.TrimSpace(lines[0]), nil
}
