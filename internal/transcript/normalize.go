package transcript

import (
	"context"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// Normalize parses a caption payload into a Transcript. The declared track
// format is tried first; when it yields nothing the payload is sniffed, since
// platforms routinely mislabel caption formats.
func (n *implNormalizer) Normalize(ctx context.Context, videoID string, track Track, payload []byte) (*models.Transcript, error) {
	segments := parseByFormat(track.Format, payload)
	if len(segments) == 0 {
		segments = sniff(payload)
	}
	if len(segments) == 0 {
		return nil, ErrNoTranscript
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})

	n.logger.Info(ctx, "Normalized %d caption cues (%s/%s)",
		len(segments), track.Language, track.Format)

	return &models.Transcript{
		VideoID:  videoID,
		Language: track.Language,
		Source:   models.SourcePlatformCaption,
		Segments: segments,
	}, nil
}

func parseByFormat(format string, payload []byte) []models.Segment {
	switch strings.ToLower(format) {
	case "vtt":
		return parseVTT(string(payload))
	case "srt":
		return parseSRT(string(payload))
	case "json3":
		return parseJSON3(payload)
	case "json":
		return parseCueList(payload)
	default:
		return nil
	}
}

func sniff(payload []byte) []models.Segment {
	text := strings.TrimSpace(string(payload))
	switch {
	case strings.HasPrefix(text, "WEBVTT"):
		return parseVTT(text)
	case strings.HasPrefix(text, "{"):
		if segs := parseJSON3(payload); len(segs) > 0 {
			return segs
		}
		return parseCueList(payload)
	case strings.Contains(text, "-->"):
		return parseSRT(text)
	default:
		return nil
	}
}

// FromASR maps an ASR segment list 1:1 onto a Transcript tagged with
// asr_generated provenance and the detected language.
func FromASR(videoID, language string, segments []models.Segment) *models.Transcript {
	kept := make([]models.Segment, 0, len(segments))
	for _, s := range segments {
		if strings.TrimSpace(s.Text) == "" || s.End < s.Start {
			continue
		}
		s.Text = strings.TrimSpace(s.Text)
		kept = append(kept, s)
	}

	return &models.Transcript{
		VideoID:  videoID,
		Language: language,
		Source:   models.SourceASRGenerated,
		Segments: kept,
	}
}
