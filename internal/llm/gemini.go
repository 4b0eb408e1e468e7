package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const jsonMIMEType = "application/json"

// generate performs one retried GenerateContent call and returns the
// response text. The client is rebuilt per attempt so key rotation takes
// effect immediately.
func (c *implClient) generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	var out string

	err := c.withRetry(ctx, func() error {
		key, _ := c.currentAPIKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}

		result, err := client.Models.GenerateContent(ctx, c.model, contents, cfg)
		if err != nil {
			return fmt.Errorf("generate content: %w", err)
		}
		if result == nil || result.Text() == "" {
			return fmt.Errorf("empty response from model")
		}

		out = result.Text()
		return nil
	})
	if err != nil {
		return "", err
	}

	return out, nil
}

func (c *implClient) baseConfig(systemPrompt string, temperature *float64) *genai.GenerateContentConfig {
	temp := c.temperature
	if temperature != nil {
		temp = *temperature
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temp)),
		MaxOutputTokens: int32(c.maxOutputTokens),
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}
	return cfg
}

// CompleteJSON requests a strict JSON object response.
func (c *implClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, temperature *float64) (string, error) {
	cfg := c.baseConfig(systemPrompt, temperature)
	cfg.ResponseMIMEType = jsonMIMEType
	return c.generate(ctx, genai.Text(userPrompt), cfg)
}

// CompleteText requests freeform text at the default temperature.
func (c *implClient) CompleteText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.generate(ctx, genai.Text(userPrompt), c.baseConfig(systemPrompt, nil))
}

// CompleteVision requests a strict JSON object response over text plus
// inline JPEG images.
func (c *implClient) CompleteVision(ctx context.Context, systemPrompt, userPrompt string, images [][]byte, temperature *float64) (string, error) {
	cfg := c.baseConfig(systemPrompt, temperature)
	cfg.ResponseMIMEType = jsonMIMEType

	parts := []*genai.Part{{Text: userPrompt}}
	for _, img := range images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: "image/jpeg",
				Data:     img,
			},
		})
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	return c.generate(ctx, contents, cfg)
}
