package genclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider for the OpenAI image API.
//
// Thread safety: the provider is safe for concurrent use; the underlying
// client handles connection pooling.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	// APIKey is required.
	APIKey string

	// BaseURL is the API endpoint; empty selects DefaultBaseURL.
	BaseURL string

	// Model is the image model; empty selects dall-e-3.
	Model string

	// HTTPClient overrides the default transport, mainly for tests.
	HTTPClient *http.Client
}

// NewOpenAIProvider creates an OpenAI image provider.
//
// Fails when the API key is empty or the endpoint is local, since local
// inference servers do not implement the image API.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("genclient: API key is required for image generation")
	}

	endpoint := cfg.BaseURL
	if endpoint == "" {
		endpoint = DefaultBaseURL
	}
	if IsLocalEndpoint(endpoint) {
		return nil, fmt.Errorf("genclient: local endpoint (%s) does not support image generation", endpoint)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = endpoint
	if cfg.HTTPClient != nil {
		clientConfig.HTTPClient = cfg.HTTPClient
	}

	model := cfg.Model
	if model == "" {
		model = "dall-e-3"
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Generate creates an image from prompt and returns its temporary URL.
// The URL expires after about an hour, so callers should download
// promptly.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("genclient: prompt cannot be empty")
	}

	req := openai.ImageRequest{
		Prompt:         prompt,
		Model:          p.model,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		N:              1,
	}
	// Style is a DALL-E 3 parameter; DALL-E 2 rejects it.
	if p.model == "dall-e-3" {
		req.Style = openai.CreateImageStyleVivid
	}

	response, err := p.client.CreateImage(ctx, req)
	if err != nil {
		return "", fmt.Errorf("genclient: image generation failed: %w", err)
	}
	if len(response.Data) == 0 {
		return "", fmt.Errorf("genclient: provider returned no images")
	}
	if response.Data[0].URL == "" {
		return "", fmt.Errorf("genclient: provider returned an empty image URL")
	}
	return response.Data[0].URL, nil
}

// Model returns the configured image model name.
func (p *OpenAIProvider) Model() string { return p.model }

var _ Provider = (*OpenAIProvider)(nil)
