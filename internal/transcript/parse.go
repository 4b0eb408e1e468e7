package transcript

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

var cueTimeRe = regexp.MustCompile(`(\d{2}:\d{2}(?::\d{2})?[\.,]\d{3})\s+-->\s+(\d{2}:\d{2}(?::\d{2})?[\.,]\d{3})`)

// parseClock converts "HH:MM:SS.mmm" or "MM:SS.mmm" (comma decimals allowed)
// into seconds.
func parseClock(ts string) (float64, error) {
	ts = strings.ReplaceAll(strings.TrimSpace(ts), ",", ".")
	parts := strings.Split(ts, ":")

	var hStr, mStr, sStr string
	switch len(parts) {
	case 2:
		hStr, mStr, sStr = "0", parts[0], parts[1]
	case 3:
		hStr, mStr, sStr = parts[0], parts[1], parts[2]
	default:
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	h, err := strconv.Atoi(hStr)
	if err != nil {
		return 0, fmt.Errorf("malformed hours in %q", ts)
	}
	m, err := strconv.Atoi(mStr)
	if err != nil {
		return 0, fmt.Errorf("malformed minutes in %q", ts)
	}
	s, err := strconv.ParseFloat(sStr, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed seconds in %q", ts)
	}

	return float64(h)*3600 + float64(m)*60 + s, nil
}

// parseVTT scans WebVTT content cue by cue. A cue with an unparseable
// timestamp line or no text is skipped, not fatal.
func parseVTT(content string) []models.Segment {
	lines := strings.Split(content, "\n")
	var segments []models.Segment

	i := 0
	for i < len(lines) {
		line := lines[i]
		i++

		m := cueTimeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		start, err1 := parseClock(m[1])
		end, err2 := parseClock(m[2])
		if err1 != nil || err2 != nil || end < start {
			continue
		}

		var textLines []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			if strings.Contains(lines[i], "-->") {
				break
			}
			textLines = append(textLines, strings.TrimSpace(lines[i]))
			i++
		}
		for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
			i++
		}

		text := strings.Join(textLines, " ")
		if text != "" {
			segments = append(segments, models.Segment{Start: start, End: end, Text: text})
		}
	}

	return segments
}

var srtIndexRe = regexp.MustCompile(`^\d+$`)

// parseSRT splits SubRip content into blank-line separated blocks.
func parseSRT(content string) []models.Segment {
	blocks := regexp.MustCompile(`\n\s*\n`).Split(strings.TrimSpace(content), -1)
	var segments []models.Segment

	for _, block := range blocks {
		var lines []string
		for _, l := range strings.Split(block, "\n") {
			if t := strings.TrimSpace(l); t != "" {
				lines = append(lines, t)
			}
		}
		if len(lines) == 0 {
			continue
		}

		idx := 0
		if srtIndexRe.MatchString(lines[0]) {
			idx = 1
		}
		if idx >= len(lines) || !strings.Contains(lines[idx], "-->") {
			continue
		}

		m := cueTimeRe.FindStringSubmatch(lines[idx])
		if m == nil {
			continue
		}
		start, err1 := parseClock(m[1])
		end, err2 := parseClock(m[2])
		if err1 != nil || err2 != nil || end < start {
			continue
		}

		text := strings.Join(lines[idx+1:], " ")
		if text != "" {
			segments = append(segments, models.Segment{Start: start, End: end, Text: text})
		}
	}

	return segments
}

// json3Event mirrors YouTube's segment-event caption JSON. Timestamps are
// millisecond integers.
type json3Event struct {
	StartMs    *int64 `json:"tStartMs"`
	DurationMs *int64 `json:"dDurationMs"`
	Segs       []struct {
		UTF8 string `json:"utf8"`
	} `json:"segs"`
}

func parseJSON3(content []byte) []models.Segment {
	var payload struct {
		Events []json3Event `json:"events"`
	}
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil
	}

	var segments []models.Segment
	for _, ev := range payload.Events {
		if ev.StartMs == nil || ev.DurationMs == nil || *ev.DurationMs < 0 {
			continue
		}
		var sb strings.Builder
		for _, s := range ev.Segs {
			sb.WriteString(s.UTF8)
		}
		text := strings.TrimSpace(strings.ReplaceAll(sb.String(), "\n", " "))
		if text == "" {
			continue
		}
		start := float64(*ev.StartMs) / 1000.0
		end := float64(*ev.StartMs+*ev.DurationMs) / 1000.0
		segments = append(segments, models.Segment{Start: start, End: end, Text: text})
	}

	return segments
}

// parseCueList handles structured JSON cue lists of the Bilibili shape:
// {"body": [{"from": 1.2, "to": 3.4, "content": "..."}]}.
func parseCueList(content []byte) []models.Segment {
	var payload struct {
		Body []struct {
			From    float64 `json:"from"`
			To      float64 `json:"to"`
			Content string  `json:"content"`
		} `json:"body"`
	}
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil
	}

	var segments []models.Segment
	for _, cue := range payload.Body {
		text := strings.TrimSpace(cue.Content)
		if text == "" || cue.To < cue.From {
			continue
		}
		segments = append(segments, models.Segment{Start: cue.From, End: cue.To, Text: text})
	}

	return segments
}
