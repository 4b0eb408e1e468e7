package models

import "strings"

// Transcript source provenance.
const (
	SourcePlatformCaption = "platform_caption"
	SourceASRGenerated    = "asr_generated"
)

// Segment is a single timed unit of transcript text. Segments are value
// objects: merging produces new segments, never mutates in place.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Transcript is an ordered sequence of segments for one video.
// Segments are sorted ascending by start time; gaps are allowed.
type Transcript struct {
	VideoID  string    `json:"video_id"`
	Language string    `json:"language"`
	Source   string    `json:"source"`
	Segments []Segment `json:"segments"`
}

// FullText joins all segment texts with newlines.
func (t *Transcript) FullText() string {
	texts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		texts = append(texts, s.Text)
	}
	return strings.Join(texts, "\n")
}
