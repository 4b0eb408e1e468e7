package render

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/vidsum/internal/models"
)

// FormatTime renders seconds as MM:SS, or HH:MM:SS past the hour mark.
func FormatTime(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// ToMarkdown renders the structured summary as a Markdown document with
// chapter sections, keyframe images and quotes.
func ToMarkdown(meta models.VideoMetadata, summary *models.SummaryResult) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("# %s", meta.Title))
	lines = append(lines, fmt.Sprintf("\n> 作者：%s\n", meta.Author))

	lines = append(lines, "## 一句话总结")
	lines = append(lines, summary.OneSentenceSummary)

	lines = append(lines, "\n## 关键要点")
	for _, kp := range summary.KeyPoints {
		lines = append(lines, "- "+kp)
	}

	lines = append(lines, "\n## 章节")
	for _, ch := range summary.Chapters {
		lines = append(lines, fmt.Sprintf("### %s （%s - %s）", ch.Title, FormatTime(ch.StartTime), FormatTime(ch.EndTime)))
		for _, p := range ch.Summary {
			lines = append(lines, "- "+p)
		}
		if len(ch.KeyFrames) > 0 {
			lines = append(lines, "\n#### 关键帧")
			for _, kf := range ch.KeyFrames {
				if kf.ImagePath != "" {
					lines = append(lines, fmt.Sprintf("![%s](%s)", ch.Title, kf.ImagePath))
				}
				lines = append(lines, fmt.Sprintf("- 时间：%s，说明：%s", FormatTime(kf.Timestamp), kf.Description))
			}
		}
		lines = append(lines, "")
	}

	if len(summary.Quotes) > 0 {
		lines = append(lines, "## 金句")
		for _, q := range summary.Quotes {
			lines = append(lines, fmt.Sprintf("- %s （%s）", q.Text, FormatTime(q.Timestamp)))
		}
	}

	return strings.Join(lines, "\n")
}
