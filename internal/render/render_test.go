package render

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/vidsum/internal/logger"
	"github.com/nguyentantai21042004/vidsum/internal/models"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{61, "01:01"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.seconds); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func sampleBundle() Bundle {
	return Bundle{
		Metadata: models.VideoMetadata{ID: "vid1", Title: "A Video", Author: "someone"},
		Transcript: &models.Transcript{VideoID: "vid1", Language: "en", Source: models.SourcePlatformCaption,
			Segments: []models.Segment{{Start: 0, End: 5, Text: "hello"}}},
		Summary: &models.SummaryResult{
			OneSentenceSummary: "One line.",
			KeyPoints:          []string{"first", "second"},
			Chapters: []models.Chapter{
				{Title: "Opening", StartTime: 0, EndTime: 90, Summary: []string{"intro"},
					KeyFrames: []models.KeyFrame{{Timestamp: 45, Description: "host on screen", ImagePath: "frames/vid1_45.jpg"}}},
				{Title: "Closing", StartTime: 90, EndTime: 3700, Summary: []string{"outro"}},
			},
			Quotes: []models.Quote{{Text: "a memorable line", Timestamp: 100}},
		},
		StudyNotes:      "# Study\n- point",
		ExtractiveNotes: "# A Video\nnotes",
	}
}

func TestToMarkdown(t *testing.T) {
	b := sampleBundle()
	md := ToMarkdown(b.Metadata, b.Summary)

	for _, want := range []string{
		"# A Video",
		"> 作者：someone",
		"## 一句话总结",
		"One line.",
		"## 关键要点",
		"- first",
		"## 章节",
		"### Opening （00:00 - 01:30）",
		"#### 关键帧",
		"![Opening](frames/vid1_45.jpg)",
		"- 时间：00:45，说明：host on screen",
		"### Closing （01:30 - 01:01:40）",
		"## 金句",
		"- a memorable line （01:40）",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestToMarkdownNoQuotesNoSection(t *testing.T) {
	b := sampleBundle()
	b.Summary.Quotes = nil
	if strings.Contains(ToMarkdown(b.Metadata, b.Summary), "金句") {
		t.Error("quotes section rendered without quotes")
	}
}

func TestSaveWritesBundle(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, logger.New("error"))

	b := sampleBundle()
	out, err := w.Save(context.Background(), b)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if out != filepath.Join(dir, "vid1") {
		t.Errorf("output dir = %q", out)
	}

	for _, name := range []string{"summary.json", "transcript.json", "summary.md", "study.md", "study_extractive.md"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}

	raw, err := os.ReadFile(filepath.Join(out, "summary.json"))
	if err != nil {
		t.Fatal(err)
	}
	var got models.SummaryResult
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("summary.json not valid JSON: %v", err)
	}
	if got.OneSentenceSummary != b.Summary.OneSentenceSummary {
		t.Error("summary.json does not round trip")
	}
}

func TestSaveSkipsEmptyNotes(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, logger.New("error"))

	b := sampleBundle()
	b.StudyNotes = ""
	b.ExtractiveNotes = ""
	out, err := w.Save(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"study.md", "study_extractive.md"} {
		if _, err := os.Stat(filepath.Join(out, name)); err == nil {
			t.Errorf("%s written despite empty content", name)
		}
	}
}
