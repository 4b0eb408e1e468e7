package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nguyentantai21042004/vidsum/internal/models"
	"github.com/nguyentantai21042004/vidsum/internal/transcript"
)

// downloadAudio fetches the video's audio track into the cache directory.
// Idempotent: an already-downloaded file is reused.
func (p *implProvider) downloadAudio(ctx context.Context, videoURL, id string) (string, error) {
	audioPath := filepath.Join(p.cacheDir, id+".mp3")
	if _, err := os.Stat(audioPath); err == nil {
		p.logger.Debug(ctx, "Reusing downloaded audio: %s", audioPath)
		return audioPath, nil
	}

	if err := os.MkdirAll(p.cacheDir, 0755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	p.logger.Info(ctx, "Downloading audio for ASR...")
	args := []string{
		"-f", "bestaudio/best",
		"-x", "--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", filepath.Join(p.cacheDir, id+".%(ext)s"),
		"--no-warnings",
	}
	if p.cookies != "" {
		args = append(args, "--cookies", p.cookies)
	}
	args = append(args, videoURL)

	if _, err := p.exec.Execute(ctx, "yt-dlp", args...); err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("audio file missing after download: %w", err)
	}

	return audioPath, nil
}

// whisperOutput is the whisper.cpp JSON (-oj) result shape.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// transcribeASR downloads audio and runs whisper.cpp, mapping its segment
// list 1:1 into an asr_generated transcript.
func (p *implProvider) transcribeASR(ctx context.Context, videoURL, id string) (*models.Transcript, error) {
	audioPath, err := p.downloadAudio(ctx, videoURL, id)
	if err != nil {
		return nil, err
	}

	outputPrefix := filepath.Join(p.cacheDir, id+"_asr")
	args := []string{
		"-m", p.whisper.ModelPath,
		"-f", audioPath,
		"-oj",
		"-l", "auto",
		"-t", strconv.Itoa(p.whisper.Threads),
		"--output-file", outputPrefix,
	}

	p.logger.Info(ctx, "Transcribing audio with whisper (%d threads), this may take a while...", p.whisper.Threads)
	if _, err := p.exec.Execute(ctx, p.whisper.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	jsonPath := outputPrefix + ".json"
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	defer os.Remove(jsonPath)

	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode whisper output: %w", err)
	}

	segments := make([]models.Segment, 0, len(out.Transcription))
	for _, s := range out.Transcription {
		segments = append(segments, models.Segment{
			Start: float64(s.Offsets.From) / 1000.0,
			End:   float64(s.Offsets.To) / 1000.0,
			Text:  s.Text,
		})
	}

	lang := out.Result.Language
	if lang == "" {
		lang = "unknown"
	}

	tr := transcript.FromASR(id, lang, segments)
	if len(tr.Segments) == 0 {
		return nil, fmt.Errorf("%w: ASR produced no usable segments", transcript.ErrNoTranscript)
	}
	return tr, nil
}
