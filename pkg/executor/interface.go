package executor

import "context"

// Executor runs external commands (yt-dlp, ffmpeg, whisper.cpp) and returns
// their stdout. Implementations must capture stderr into returned errors.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
