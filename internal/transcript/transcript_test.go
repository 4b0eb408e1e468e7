package transcript

import (
	"context"
	"testing"

	"github.com/nguyentantai21042004/vidsum/internal/logger"
	"github.com/nguyentantai21042004/vidsum/internal/models"
)

func newTestNormalizer(prefs ...string) Normalizer {
	if len(prefs) == 0 {
		prefs = []string{"zh-Hans", "zh", "en"}
	}
	return New(prefs, logger.New("error"))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{"full clock", "00:01:30.500", 90.5, false},
		{"minutes only", "02:15.250", 135.25, false},
		{"comma decimals", "00:00:05,000", 5.0, false},
		{"hours", "01:00:00.000", 3600.0, false},
		{"garbage", "abc", 0, true},
		{"too many parts", "1:2:3:4", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClock(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseClock(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

const sampleVTT = `WEBVTT

00:00:01.000 --> 00:00:03.000
first line

00:00:03.000 --> 00:00:05.500
second line
continued

bogus --> cue

00:00:06.000 --> 00:00:07.000
`

func TestParseVTT(t *testing.T) {
	segs := parseVTT(sampleVTT)
	if len(segs) != 2 {
		t.Fatalf("parseVTT() = %d segments, want 2", len(segs))
	}
	if segs[0].Text != "first line" {
		t.Errorf("first text = %q", segs[0].Text)
	}
	if segs[1].Text != "second line continued" {
		t.Errorf("multi-line cue text = %q", segs[1].Text)
	}
	if segs[1].Start != 3.0 || segs[1].End != 5.5 {
		t.Errorf("second cue times = %v-%v", segs[1].Start, segs[1].End)
	}
}

const sampleSRT = `1
00:00:01,000 --> 00:00:02,500
hello

2
00:00:02,500 --> 00:00:04,000
world again

3
00:00:05,000 --> 00:00:06,000
`

func TestParseSRT(t *testing.T) {
	segs := parseSRT(sampleSRT)
	if len(segs) != 2 {
		t.Fatalf("parseSRT() = %d segments, want 2 (empty cue dropped)", len(segs))
	}
	if segs[0].Start != 1.0 || segs[0].End != 2.5 {
		t.Errorf("first cue times = %v-%v", segs[0].Start, segs[0].End)
	}
	if segs[1].Text != "world again" {
		t.Errorf("second text = %q", segs[1].Text)
	}
}

func TestParseJSON3(t *testing.T) {
	payload := []byte(`{"events":[
		{"tStartMs":0,"dDurationMs":1500,"segs":[{"utf8":"he"},{"utf8":"llo"}]},
		{"tStartMs":1500,"segs":[{"utf8":"no duration"}]},
		{"tStartMs":5000,"dDurationMs":-2000,"segs":[{"utf8":"negative duration"}]},
		{"tStartMs":2000,"dDurationMs":500,"segs":[{"utf8":"\n"}]},
		{"tStartMs":3000,"dDurationMs":1000,"segs":[{"utf8":"world"}]}
	]}`)

	segs := parseJSON3(payload)
	if len(segs) != 2 {
		t.Fatalf("parseJSON3() = %d segments, want 2", len(segs))
	}
	if segs[0].Text != "hello" || segs[0].Start != 0 || segs[0].End != 1.5 {
		t.Errorf("first segment = %+v", segs[0])
	}
	if segs[1].Start != 3.0 || segs[1].End != 4.0 {
		t.Errorf("second segment times = %v-%v", segs[1].Start, segs[1].End)
	}
}

func TestParseCueList(t *testing.T) {
	payload := []byte(`{"body":[
		{"from":0.5,"to":2.0,"content":"你好"},
		{"from":2.0,"to":1.0,"content":"backwards"},
		{"from":3.0,"to":4.0,"content":"  "}
	]}`)

	segs := parseCueList(payload)
	if len(segs) != 1 {
		t.Fatalf("parseCueList() = %d segments, want 1", len(segs))
	}
	if segs[0].Text != "你好" {
		t.Errorf("text = %q", segs[0].Text)
	}
}

// Property: no parser ever yields empty text or end < start.
func TestParsersInvariant(t *testing.T) {
	inputs := [][]models.Segment{
		parseVTT(sampleVTT),
		parseSRT(sampleSRT),
		parseJSON3([]byte(`{"events":[
			{"tStartMs":100,"dDurationMs":50,"segs":[{"utf8":"x"}]},
			{"tStartMs":5000,"dDurationMs":-2000,"segs":[{"utf8":"backwards"}]}
		]}`)),
		parseCueList([]byte(`{"body":[{"from":1,"to":2,"content":"y"}]}`)),
	}

	for _, segs := range inputs {
		for _, s := range segs {
			if s.Text == "" {
				t.Error("parser produced empty text")
			}
			if s.End < s.Start {
				t.Errorf("parser produced end %v < start %v", s.End, s.Start)
			}
		}
	}
}

func TestSelectTrack(t *testing.T) {
	tests := []struct {
		name    string
		tracks  []Track
		want    int
		wantErr bool
	}{
		{
			name:    "no candidates",
			tracks:  nil,
			wantErr: true,
		},
		{
			name: "exact language beats substring",
			tracks: []Track{
				{Language: "zh-CN", Format: "vtt"},
				{Language: "zh-Hans", Format: "vtt"},
			},
			want: 1,
		},
		{
			name: "format breaks language tie",
			tracks: []Track{
				{Language: "en", Format: "srt"},
				{Language: "en", Format: "json3"},
			},
			want: 1,
		},
		{
			name: "full tie keeps first",
			tracks: []Track{
				{Language: "en", Format: "vtt"},
				{Language: "en", Format: "srt"},
			},
			want: 0,
		},
		{
			name: "language outranks format",
			tracks: []Track{
				{Language: "ko", Format: "json3"},
				{Language: "en", Format: "other"},
			},
			want: 1,
		},
	}

	n := newTestNormalizer().(*implNormalizer)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.SelectTrack(tt.tracks)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SelectTrack() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != &tt.tracks[tt.want] {
				t.Errorf("SelectTrack() = %+v, want index %d", got, tt.want)
			}
		})
	}
}

func TestNormalizeSniffsMislabeledFormat(t *testing.T) {
	n := newTestNormalizer()

	// Declared srt, actually WebVTT.
	tr, err := n.Normalize(context.Background(), "vid1", Track{Language: "en", Format: "srt"}, []byte(sampleVTT))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(tr.Segments) != 2 {
		t.Errorf("segments = %d, want 2", len(tr.Segments))
	}
	if tr.Source != models.SourcePlatformCaption {
		t.Errorf("source = %q", tr.Source)
	}
}

func TestNormalizeUnparseable(t *testing.T) {
	n := newTestNormalizer()
	_, err := n.Normalize(context.Background(), "vid1", Track{Language: "en", Format: "vtt"}, []byte("not captions"))
	if err != ErrNoTranscript {
		t.Errorf("Normalize() error = %v, want ErrNoTranscript", err)
	}
}

func TestFromASR(t *testing.T) {
	tr := FromASR("vid2", "en", []models.Segment{
		{Start: 0, End: 1, Text: " hello "},
		{Start: 1, End: 2, Text: "   "},
		{Start: 3, End: 2, Text: "backwards"},
	})

	if tr.Source != models.SourceASRGenerated {
		t.Errorf("source = %q, want asr_generated", tr.Source)
	}
	if len(tr.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(tr.Segments))
	}
	if tr.Segments[0].Text != "hello" {
		t.Errorf("text = %q, want trimmed hello", tr.Segments[0].Text)
	}
}
