package cache

import "github.com/nguyentantai21042004/vidsum/internal/models"

// Cache persists transcripts and summary JSON between runs. Summary entries
// are content-addressed by a hash of the composite key string; a corrupt or
// unreadable entry is a miss, never an error.
type Cache interface {
	GetSummary(key string) ([]byte, bool)
	SaveSummary(key string, raw []byte) error
	GetTranscript(videoID string) (*models.Transcript, bool)
	SaveTranscript(t *models.Transcript) error
}
