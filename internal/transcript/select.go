package transcript

import (
	"context"
	"strings"
)

// Format preference: structured JSON beats WebVTT/SubRip beats anything else.
var formatRanks = map[string]int{
	"json3": 0,
	"json":  0,
	"vtt":   1,
	"srt":   1,
}

const (
	defaultLangRank   = 99
	defaultFormatRank = 9
)

// langRank maps a track language onto the preference order. Exact match
// beats substring match beats the default. Lower rank wins.
func (n *implNormalizer) langRank(lang string) int {
	l := strings.ToLower(lang)
	for i, pref := range n.langPrefs {
		if strings.ToLower(pref) == l {
			return i * 2
		}
	}
	for i, pref := range n.langPrefs {
		if strings.Contains(l, strings.ToLower(pref)) {
			return i*2 + 1
		}
	}
	return defaultLangRank
}

func formatRank(format string) int {
	if r, ok := formatRanks[strings.ToLower(format)]; ok {
		return r
	}
	return defaultFormatRank
}

// SelectTrack picks the single best candidate. The combined score weights
// language over format; ties keep the first-encountered candidate.
func (n *implNormalizer) SelectTrack(tracks []Track) (*Track, error) {
	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}

	best := 0
	bestScore := n.langRank(tracks[0].Language)*100 + formatRank(tracks[0].Format)
	for i := 1; i < len(tracks); i++ {
		score := n.langRank(tracks[i].Language)*100 + formatRank(tracks[i].Format)
		if score < bestScore {
			best = i
			bestScore = score
		}
	}

	n.logger.Debug(context.Background(), "Selected caption track %s/%s among %d candidates",
		tracks[best].Language, tracks[best].Format, len(tracks))
	return &tracks[best], nil
}
