package keyframes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ExtractFrame seeks to the timestamp and decodes a single frame via ffmpeg.
// Frames are content-addressed by {video_id}_{timestamp}; an existing file
// is returned without re-extraction.
func (e *implExtractor) ExtractFrame(ctx context.Context, mediaSource, videoID string, timestamp float64) (string, error) {
	filename := fmt.Sprintf("%s_%d.jpg", videoID, int(timestamp))
	outputPath := filepath.Join(e.outputDir, filename)

	if _, err := os.Stat(outputPath); err == nil {
		e.logger.Debug(ctx, "Reusing extracted keyframe: %s", outputPath)
		return outputPath, nil
	}

	args := []string{
		"-ss", strconv.FormatFloat(timestamp, 'f', 3, 64),
		"-i", mediaSource,
		"-vframes", "1",
		"-q:v", "2",
		"-y",
		outputPath,
	}

	if _, err := e.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("extract frame at %.1fs: %w", timestamp, err)
	}

	return outputPath, nil
}

// ExtractBatch extracts frames one timestamp at a time. Per-frame failures
// are logged and leave an empty path at that position.
func (e *implExtractor) ExtractBatch(ctx context.Context, mediaSource, videoID string, timestamps []float64) []string {
	paths := make([]string, len(timestamps))

	for i, ts := range timestamps {
		path, err := e.ExtractFrame(ctx, mediaSource, videoID, ts)
		if err != nil {
			e.logger.Warn(ctx, "Keyframe extraction failed at %.1fs: %v", ts, err)
			continue
		}
		paths[i] = path
	}

	return paths
}
