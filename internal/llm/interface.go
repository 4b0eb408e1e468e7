package llm

import "context"

// Client is the LLM collaborator. All calls are blocking; transport retries
// and API-key rotation happen below this interface.
type Client interface {
	// CompleteJSON requests a strict JSON-object response. A nil temperature
	// uses the configured default; pass a pointer to 0 for deterministic
	// output.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, temperature *float64) (string, error)

	// CompleteText requests freeform text.
	CompleteText(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// CompleteVision requests a strict JSON-object response over text plus
	// inline JPEG images.
	CompleteVision(ctx context.Context, systemPrompt, userPrompt string, images [][]byte, temperature *float64) (string, error)
}
