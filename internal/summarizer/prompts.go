package summarizer

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

const groundedSystemPrompt = "You output JSON strictly grounded in the provided content. Do not include anything not present in the transcript or chunk summaries."

const studySystemPrompt = "You are a helpful instructor that writes high-quality Markdown."

const visionSystemPrompt = `You output JSON: {"summary": ["bullet", ...]}. Use the images to improve clarity. Keep bullets concise, factual, and grounded in the visuals and text.`

const mapPromptFmt = `Extract the key points from this transcript chunk covering %.1fs to %.1fs.

Respond with a JSON object:
{"start_time": %.1f, "end_time": %.1f, "key_points": ["..."], "entities": ["..."]}

Rules:
- key_points: the concrete facts, steps or claims made in this chunk, in order.
- entities: named people, products, tools or concepts mentioned.
- Use only information present in the chunk text.

Chunk text:
---
%s
---`

func buildMapPrompt(start, end float64, text string) string {
	return fmt.Sprintf(mapPromptFmt, start, end, start, end, text)
}

// reduceInput carries everything the reduce prompt embeds. Exactly one of
// Chunks or Transcript is set: chunk summaries for the map-reduce path, raw
// transcript text for single-chunk videos and the grounding retry.
type reduceInput struct {
	Title            string
	Author           string
	Language         string
	RequiredTerms    []string
	ExtractKeyframes bool
	Chunks           []models.ChunkSummary
	Transcript       string
}

func buildReducePrompt(in reduceInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Produce a structured summary of the video %q by %s.\n", in.Title, in.Author)
	fmt.Fprintf(&b, "Write all output text in %s.\n", in.Language)
	if len(in.RequiredTerms) > 0 {
		fmt.Fprintf(&b, "The one-sentence summary or key points must mention at least one of: %s.\n", strings.Join(in.RequiredTerms, ", "))
	}

	b.WriteString("\nRespond with a JSON object:\n")
	b.WriteString(`{"one_sentence_summary": "...", "key_points": ["..."], "chapters": [{"title": "...", "start_time": 0.0, "end_time": 0.0, "summary": ["..."]`)
	if in.ExtractKeyframes {
		b.WriteString(`, "keyframes": [{"timestamp": 0.0, "description": "..."}]`)
	}
	b.WriteString(`}], "quotes": [{"text": "...", "timestamp": 0.0}]}`)

	b.WriteString("\n\nRules:\n")
	b.WriteString("- Chapters cover the video in chronological order, times in seconds.\n")
	b.WriteString("- key_points are the most important takeaways across the whole video.\n")
	b.WriteString("- quotes are notable verbatim lines worth remembering, with their timestamps.\n")
	b.WriteString("- Use only information present in the material below.\n")
	if in.ExtractKeyframes {
		b.WriteString("- For each chapter, suggest 1-2 keyframe timestamps where the visuals best illustrate it.\n")
	}

	if in.Transcript != "" {
		b.WriteString("\nTranscript:\n---\n")
		b.WriteString(in.Transcript)
		b.WriteString("\n---")
		return b.String()
	}

	b.WriteString("\nChunk summaries (in order):\n")
	for _, c := range in.Chunks {
		fmt.Fprintf(&b, "\n[%.1fs - %.1fs]\n", c.StartTime, c.EndTime)
		for _, p := range c.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		if len(c.Entities) > 0 {
			fmt.Fprintf(&b, "Entities: %s\n", strings.Join(c.Entities, ", "))
		}
	}
	return b.String()
}

func buildStudyPrompt(meta models.VideoMetadata, fullText string, summary *models.SummaryResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write study notes in Markdown for the video %q by %s.\n", meta.Title, meta.Author)
	b.WriteString("Organize them so a learner can review the material without watching the video: ")
	b.WriteString("an overview, the main concepts explained in your own words, and a recap.\n")

	fmt.Fprintf(&b, "\nOne-sentence summary: %s\n", summary.OneSentenceSummary)
	if len(summary.KeyPoints) > 0 {
		b.WriteString("Key points:\n")
		for _, p := range summary.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	if len(summary.Chapters) > 0 {
		b.WriteString("Chapters:\n")
		for _, c := range summary.Chapters {
			fmt.Fprintf(&b, "- %s (%.0fs-%.0fs): %s\n", c.Title, c.StartTime, c.EndTime, strings.Join(c.Summary, "; "))
		}
	}

	b.WriteString("\nFull transcript:\n---\n")
	b.WriteString(fullText)
	b.WriteString("\n---")
	return b.String()
}

func buildVisionPrompt(ch models.Chapter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\nTime: %d-%d\nExisting bullets:\n", ch.Title, int(ch.StartTime), int(ch.EndTime))
	for _, p := range ch.Summary {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return b.String()
}
