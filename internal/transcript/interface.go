package transcript

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// ErrNoTranscript means no usable caption track could be located or parsed.
// The caller decides whether to fall back to ASR.
var ErrNoTranscript = errors.New("no usable transcript available")

// Track describes one caption track candidate offered by a platform.
type Track struct {
	Language string
	Format   string // "json3", "vtt", "srt", "json", ...
	URL      string
}

// Normalizer converts heterogeneous caption payloads into ordered Segments
// and picks the best track among candidates.
type Normalizer interface {
	// SelectTrack scores every candidate by language preference and format
	// preference and returns the best one. Ties resolve to the first
	// candidate in enumeration order.
	SelectTrack(tracks []Track) (*Track, error)

	// Normalize parses a raw caption payload into a Transcript tagged with
	// the track language and platform_caption provenance. Cues with
	// unparseable timestamps or empty text are dropped individually.
	Normalize(ctx context.Context, videoID string, track Track, payload []byte) (*models.Transcript, error)
}
