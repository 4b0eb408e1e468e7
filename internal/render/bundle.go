package render

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the bundle under {outputDir}/{video_id}/. The docx rendering
// is best effort; a failure there is logged and does not fail the save.
func (w *implWriter) Save(ctx context.Context, b Bundle) (string, error) {
	dir := filepath.Join(w.outputDir, b.Metadata.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, "summary.json"), b.Summary); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "transcript.json"), b.Transcript); err != nil {
		return "", err
	}

	md := ToMarkdown(b.Metadata, b.Summary)
	if err := os.WriteFile(filepath.Join(dir, "summary.md"), []byte(md), 0644); err != nil {
		return "", fmt.Errorf("write summary.md: %w", err)
	}

	docxPath := filepath.Join(dir, "summary.docx")
	if err := markdownToDocx(b.Metadata.Title, md, docxPath); err != nil {
		w.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
	}

	if b.StudyNotes != "" {
		if err := os.WriteFile(filepath.Join(dir, "study.md"), []byte(b.StudyNotes), 0644); err != nil {
			return "", fmt.Errorf("write study.md: %w", err)
		}
	}
	if b.ExtractiveNotes != "" {
		if err := os.WriteFile(filepath.Join(dir, "study_extractive.md"), []byte(b.ExtractiveNotes), 0644); err != nil {
			return "", fmt.Errorf("write study_extractive.md: %w", err)
		}
	}

	w.logger.Info(ctx, "Saved output to %s", dir)
	return dir, nil
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
