package main

import (
	"fmt"
	"net/url"
	"strings"
)

// normalizeURL cleans up copy-pasted video links: strips stray quotes and
// backticks, expands a raw Bilibili BV id, and canonicalizes YouTube links
// to the watch?v= form.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`\"'")
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "BV") && !strings.Contains(raw, "bilibili.com") {
		return "https://www.bilibili.com/video/" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	host := u.Hostname()
	switch {
	case strings.Contains(host, "youtube.com") && u.Path == "/watch":
		if v := u.Query().Get("v"); v != "" {
			return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v)
		}
	case strings.Contains(host, "youtu.be"):
		if id := strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)[0]; id != "" {
			return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
		}
	}

	return raw
}
