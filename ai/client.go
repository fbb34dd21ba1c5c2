// Package ai wraps the Gemini SDK behind the single text-generation
// call the draft service needs.
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Client is a thin adapter over the Gemini API client.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient builds a Gemini-backed client for the given model. The API
// key is validated by the provider on the first call, not here.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

// GenerateText runs a single non-streaming generation turn and returns
// the raw reply text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	return resp.Text(), nil
}
