package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func (c *implCache) summaryPath(key string) string {
	return filepath.Join(c.dir, "summaries", hashKey(key)+".json")
}

func (c *implCache) transcriptPath(videoID string) string {
	return filepath.Join(c.dir, "transcripts", videoID+".json")
}

// GetSummary returns the raw cached summary JSON for the composite key.
func (c *implCache) GetSummary(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.summaryPath(key))
	if err != nil {
		return nil, false
	}
	// Reject entries that are no longer valid JSON so a torn write from a
	// racing run surfaces as a miss.
	if !json.Valid(data) {
		c.logger.Warn(context.Background(), "Ignoring corrupt summary cache entry for key %s", key)
		return nil, false
	}
	return data, true
}

// SaveSummary writes the raw summary JSON under the hashed key.
func (c *implCache) SaveSummary(key string, raw []byte) error {
	if err := os.WriteFile(c.summaryPath(key), raw, 0644); err != nil {
		return fmt.Errorf("write summary cache: %w", err)
	}
	return nil
}

// GetTranscript returns the cached transcript for a video, if present.
func (c *implCache) GetTranscript(videoID string) (*models.Transcript, bool) {
	data, err := os.ReadFile(c.transcriptPath(videoID))
	if err != nil {
		return nil, false
	}

	var t models.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		c.logger.Warn(context.Background(), "Ignoring corrupt transcript cache for %s: %v", videoID, err)
		return nil, false
	}
	return &t, true
}

// SaveTranscript persists a transcript keyed by its video id.
func (c *implCache) SaveTranscript(t *models.Transcript) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(c.transcriptPath(t.VideoID), data, 0644); err != nil {
		return fmt.Errorf("write transcript cache: %w", err)
	}
	return nil
}
