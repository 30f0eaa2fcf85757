package genclient

import "strings"

// DefaultBaseURL is the standard OpenAI API endpoint.
const DefaultBaseURL = "https://api.openai.com/v1"

// IsLocalEndpoint reports whether endpoint points at a local or LAN
// server. Local inference servers speak the chat API but do not offer
// image generation, so the provider refuses them at construction time.
func IsLocalEndpoint(endpoint string) bool {
	if endpoint == "" {
		return false
	}
	lower := strings.ToLower(endpoint)
	return strings.Contains(lower, "localhost") ||
		strings.Contains(lower, "127.0.0.1") ||
		strings.Contains(lower, "0.0.0.0") ||
		strings.Contains(lower, "192.168.") ||
		strings.Contains(lower, "10.0.")
}
