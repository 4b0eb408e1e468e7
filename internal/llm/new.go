package llm

import (
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/vidsum/internal/config"
	"github.com/nguyentantai21042004/vidsum/internal/logger"
)

type implClient struct {
	apiKeys         []string
	mu              sync.Mutex
	currentKey      int
	model           string
	temperature     float64
	maxOutputTokens int
	retry           config.RetryConfig
	logger          logger.Logger
}

// New creates a Gemini-backed Client that rotates through the supplied API
// keys on quota errors and retries transient transport failures with
// exponential backoff.
func New(cfg config.LLMConfig, retry config.RetryConfig, log logger.Logger) (Client, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("no LLM API keys configured (set llm.api_keys or GEMINI_API_KEY)")
	}

	return &implClient{
		apiKeys:         cfg.APIKeys,
		model:           cfg.Model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
		retry:           retry,
		logger:          log,
	}, nil
}

// currentAPIKey returns the active key and its 1-based position. Watch mode
// runs concurrent pipelines over one shared client, so reads and rotations
// are serialized on the mutex.
func (c *implClient) currentAPIKey() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKeys[c.currentKey], c.currentKey + 1
}

func (c *implClient) rotateKey() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
}
