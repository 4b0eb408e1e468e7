package render

import (
	"context"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// Bundle is everything one run produced that should land on disk.
type Bundle struct {
	Metadata        models.VideoMetadata
	Transcript      *models.Transcript
	Summary         *models.SummaryResult
	StudyNotes      string
	ExtractiveNotes string
}

// Writer persists a run's artifacts under an output directory namespaced by
// video id. Nothing is written until the whole bundle is available.
type Writer interface {
	// Save writes the bundle and returns the directory it was written to.
	Save(ctx context.Context, b Bundle) (string, error)
}
