package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

const (
	// DefaultModel is the Gemini model used for extractions.
	DefaultModel = "gemini-2.5-flash"
)

// Client handles Gemini API requests with Google Search grounding enabled.
// The model does its own web search; every response may carry grounding
// metadata listing the pages that informed it.
type Client struct {
	genai *genai.Client
	model string
}

// New creates a Gemini client with a custom model name.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoCredentials
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	log.Printf("[gemini-client] Using model %s", model)
	return &Client{
		genai: client,
		model: model,
	}, nil
}

// NewClient creates a Gemini client with the default model.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	return New(ctx, apiKey, DefaultModel)
}

// Generate issues a single search-grounded generation call. Exactly one
// outbound request; no retries. Transport failures propagate with the
// upstream message attached.
func (c *Client) Generate(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	return resp, nil
}

// Close releases the underlying API client. genai.Client holds no
// resources that need explicit release, so this is a no-op.
func (c *Client) Close() error {
	return nil
}
