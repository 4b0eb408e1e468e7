package provider

import (
	"net/http"
	"regexp"
	"time"

	"github.com/nguyentantai21042004/vidsum/internal/config"
	"github.com/nguyentantai21042004/vidsum/internal/logger"
	"github.com/nguyentantai21042004/vidsum/internal/transcript"
	"github.com/nguyentantai21042004/vidsum/pkg/executor"
)

// Deps carries the collaborators shared by every platform variant.
type Deps struct {
	Executor    executor.Executor
	Normalizer  transcript.Normalizer
	Whisper     config.WhisperConfig
	CookiesPath string
	CacheDir    string
	Logger      logger.Logger
}

type implProvider struct {
	platform   string
	referer    string
	idPattern  *regexp.Regexp
	exec       executor.Executor
	normalizer transcript.Normalizer
	httpClient *http.Client
	whisper    config.WhisperConfig
	cookies    string
	cacheDir   string
	logger     logger.Logger
}

var (
	youtubeIDRe  = regexp.MustCompile(`(?:v=|/shorts/|youtu\.be/)([A-Za-z0-9_-]{11})`)
	bilibiliIDRe = regexp.MustCompile(`(BV[A-Za-z0-9]{10})`)
)

func newProvider(platform, referer string, idPattern *regexp.Regexp, deps Deps) *implProvider {
	return &implProvider{
		platform:   platform,
		referer:    referer,
		idPattern:  idPattern,
		exec:       deps.Executor,
		normalizer: deps.Normalizer,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		whisper:    deps.Whisper,
		cookies:    deps.CookiesPath,
		cacheDir:   deps.CacheDir,
		logger:     deps.Logger,
	}
}

// NewYouTube creates the YouTube variant.
func NewYouTube(deps Deps) VideoSource {
	return newProvider("youtube", "https://www.youtube.com", youtubeIDRe, deps)
}

// NewBilibili creates the Bilibili variant.
func NewBilibili(deps Deps) VideoSource {
	return newProvider("bilibili", "https://www.bilibili.com", bilibiliIDRe, deps)
}
