package models

// ChunkSummary is the map-phase output for one chunk. It only lives within a
// single summarization run; the reduce phase consumes it.
type ChunkSummary struct {
	StartTime float64  `json:"start_time"`
	EndTime   float64  `json:"end_time"`
	KeyPoints []string `json:"key_points"`
	Entities  []string `json:"entities,omitempty"`
}

// KeyFrame is a still image request at a timestamp. ImagePath stays empty
// until the extractor assigns it; frames are content-addressed by
// {video_id}_{timestamp} and never re-extracted once a path exists.
type KeyFrame struct {
	Timestamp   float64 `json:"timestamp"`
	Description string  `json:"description"`
	ImagePath   string  `json:"image_path,omitempty"`
}

// Chapter is one titled section of the summary. Chapters should collectively
// cover the transcript span, but gaps and overlaps are tolerated.
type Chapter struct {
	Title     string     `json:"title"`
	StartTime float64    `json:"start_time"`
	EndTime   float64    `json:"end_time"`
	Summary   []string   `json:"summary"`
	KeyFrames []KeyFrame `json:"keyframes,omitempty"`
}

// Duration returns the chapter length in seconds.
func (c Chapter) Duration() float64 {
	return c.EndTime - c.StartTime
}

// Quote is a notable line with its timestamp.
type Quote struct {
	Text      string  `json:"text"`
	Timestamp float64 `json:"timestamp"`
}

// SummaryResult is the root aggregate produced by the reduce phase and
// persisted verbatim to cache and to the output bundle.
type SummaryResult struct {
	OneSentenceSummary string    `json:"one_sentence_summary"`
	KeyPoints          []string  `json:"key_points"`
	Chapters           []Chapter `json:"chapters"`
	Quotes             []Quote   `json:"quotes,omitempty"`
}

// VideoMetadata is produced once per run by the provider and treated as
// read-only input everywhere downstream.
type VideoMetadata struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Duration     float64 `json:"duration"`
	Platform     string  `json:"platform"`
	URL          string  `json:"url"`
	Description  string  `json:"description,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
}
