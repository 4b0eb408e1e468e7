package summarizer

import (
	"context"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", "# Notes\ncontent", "# Notes\ncontent"},
		{"markdown fence", "```markdown\n# Notes\ncontent\n```", "# Notes\ncontent"},
		{"bare fence", "```\nbody\n```", "body"},
		{"surrounding whitespace", "  ```\nbody\n```  ", "body"},
		{"inner fence kept", "# Notes\n```go\ncode\n```\nmore", "# Notes\n```go\ncode\n```\nmore"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateStudyNotesStripsFence(t *testing.T) {
	llm := &fakeLLM{textResp: "```markdown\n# Study\n- point\n```"}
	s := newTestSummarizer(t, llm, 100000)

	result := groundedResult()
	notes, err := s.GenerateStudyNotes(context.Background(), testTranscript(3), meta, &result)
	if err != nil {
		t.Fatalf("GenerateStudyNotes() error = %v", err)
	}
	if notes != "# Study\n- point" {
		t.Errorf("notes = %q", notes)
	}
	if !strings.Contains(llm.prompts[0], "Full transcript:") {
		t.Error("study prompt should embed the transcript")
	}
}

func TestGenerateExtractiveNotesEmptyTranscript(t *testing.T) {
	s := newTestSummarizer(t, &fakeLLM{}, 100000)

	got := s.GenerateExtractiveNotes(&models.Transcript{VideoID: "vid1"}, meta)

	if !strings.HasPrefix(got, "# Intro to Rust Ownership") {
		t.Errorf("missing title header: %q", got)
	}
	if !strings.Contains(got, "> 作者：someone") {
		t.Errorf("missing author line: %q", got)
	}
	if strings.Contains(got, "- ") {
		t.Errorf("empty transcript should produce no bullet lines: %q", got)
	}
}

func TestGenerateExtractiveNotesSections(t *testing.T) {
	s := newTestSummarizer(t, &fakeLLM{}, 100000)

	// 16 segments, 30s apart: two windows of 2 per key point, and segments
	// spanning 480s split into 180s buckets.
	tr := testTranscript(16)
	got := s.GenerateExtractiveNotes(tr, meta)

	if !strings.Contains(got, "## 提取式要点（基于原文）") {
		t.Error("missing key-points section")
	}
	if !strings.Contains(got, "## 分段摘要（按时序）") {
		t.Error("missing segment-summary section")
	}

	lines := strings.Split(got, "\n")
	bullets := 0
	inKeyPoints := false
	for _, line := range lines {
		if strings.HasPrefix(line, "## ") {
			inKeyPoints = strings.Contains(line, "提取式要点")
			continue
		}
		if inKeyPoints && strings.HasPrefix(line, "- ") {
			bullets++
		}
	}
	if bullets == 0 || bullets > 10 {
		t.Errorf("key-point bullets = %d, want 1..10", bullets)
	}
}

func TestGenerateExtractiveNotesBucketsBySpan(t *testing.T) {
	s := newTestSummarizer(t, &fakeLLM{}, 100000)

	// Two clusters more than 180s apart must land in separate buckets.
	tr := &models.Transcript{VideoID: "vid1", Segments: []models.Segment{
		{Start: 0, End: 10, Text: "first cluster a"},
		{Start: 10, End: 20, Text: "first cluster b"},
		{Start: 400, End: 410, Text: "second cluster"},
	}}
	got := s.GenerateExtractiveNotes(tr, meta)

	if !strings.Contains(got, "- first cluster a；first cluster b") {
		t.Errorf("first bucket not joined: %q", got)
	}
	if !strings.Contains(got, "- second cluster") {
		t.Errorf("second bucket missing: %q", got)
	}
	if strings.Contains(got, "first cluster b；second cluster") {
		t.Error("clusters further apart than the bucket span must not merge")
	}
}
