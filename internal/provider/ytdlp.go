package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/vidsum/internal/transcript"
)

const browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ytdlpInfo is the subset of `yt-dlp -J` output the pipeline consumes.
type ytdlpInfo struct {
	ID                string                  `json:"id"`
	Title             string                  `json:"title"`
	Uploader          string                  `json:"uploader"`
	Duration          float64                 `json:"duration"`
	WebpageURL        string                  `json:"webpage_url"`
	Description       string                  `json:"description"`
	Thumbnail         string                  `json:"thumbnail"`
	Subtitles         map[string][]ytdlpTrack `json:"subtitles"`
	AutomaticCaptions map[string][]ytdlpTrack `json:"automatic_captions"`
	PlaylistIndex     int                     `json:"playlist_index"`
	Entries           []ytdlpInfo             `json:"entries"`
}

type ytdlpTrack struct {
	URL string `json:"url"`
	Ext string `json:"ext"`
}

// dumpInfo runs `yt-dlp -J` and decodes the metadata dump.
func (p *implProvider) dumpInfo(ctx context.Context, videoURL string) (*ytdlpInfo, error) {
	args := []string{"-J", "--no-warnings"}
	if p.cookies != "" {
		args = append(args, "--cookies", p.cookies)
	}
	args = append(args, videoURL)

	out, err := p.exec.Execute(ctx, "yt-dlp", args...)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp extract info: %w", err)
	}

	var info ytdlpInfo
	if err := unmarshalInfo(out, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func unmarshalInfo(out string, info *ytdlpInfo) error {
	if err := json.Unmarshal([]byte(out), info); err != nil {
		return fmt.Errorf("decode yt-dlp info: %w", err)
	}
	return nil
}

// selectEntry resolves multi-part dumps (Bilibili ?p=N) to the requested
// page, defaulting to the first entry.
func selectEntry(info *ytdlpInfo, videoURL string) *ytdlpInfo {
	if len(info.Entries) == 0 {
		return info
	}

	page := 1
	if u, err := url.Parse(videoURL); err == nil {
		if pv := u.Query().Get("p"); pv != "" {
			if n, err := strconv.Atoi(pv); err == nil && n > 0 {
				page = n
			}
		}
	}

	for i := range info.Entries {
		if info.Entries[i].PlaylistIndex == page {
			return &info.Entries[i]
		}
	}
	return &info.Entries[0]
}

// collectTracks flattens the caption maps into candidates. Manually created
// subtitles come before automatic captions, and languages enumerate in
// sorted order so track selection is deterministic.
func collectTracks(info *ytdlpInfo) []transcript.Track {
	var tracks []transcript.Track
	for _, group := range []map[string][]ytdlpTrack{info.Subtitles, info.AutomaticCaptions} {
		langs := make([]string, 0, len(group))
		for lang := range group {
			langs = append(langs, lang)
		}
		sort.Strings(langs)

		for _, lang := range langs {
			for _, tr := range group[lang] {
				if tr.URL == "" {
					continue
				}
				tracks = append(tracks, transcript.Track{
					Language: lang,
					Format:   strings.ToLower(tr.Ext),
					URL:      tr.URL,
				})
			}
		}
	}
	return tracks
}

// fetchCaptions downloads a caption payload with browser-like headers; some
// platforms refuse caption requests without a Referer.
func (p *implProvider) fetchCaptions(ctx context.Context, captionURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new caption request: %w", err)
	}
	req.Header.Set("Referer", p.referer)
	req.Header.Set("User-Agent", browserUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch captions: status %s", resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 32<<20))
}

// videoID extracts the platform video id from the URL, falling back to a
// metadata dump when the URL shape is unrecognized.
func (p *implProvider) videoID(ctx context.Context, videoURL string) (string, error) {
	if m := p.idPattern.FindStringSubmatch(videoURL); m != nil {
		return m[1], nil
	}

	info, err := p.dumpInfo(ctx, videoURL)
	if err != nil {
		return "", fmt.Errorf("resolve video id: %w", err)
	}
	if info.ID == "" {
		return "", fmt.Errorf("resolve video id: empty id for %s", videoURL)
	}
	return info.ID, nil
}
