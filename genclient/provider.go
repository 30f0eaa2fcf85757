// Package genclient talks to remote image generation APIs to produce
// source artwork for the icon pipeline.
package genclient

import "context"

// Provider is the interface for image generation backends. Each provider
// implements this interface so backends can be swapped without touching
// the pipeline.
//
// Generate takes a prompt and returns the URL of the generated image.
// Downloading the image is handled separately by the Downloader.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
