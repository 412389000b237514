package image

import (
	"context"
	"strings"
)

// Prompt carries the localized prompt variants produced by the composer.
// Domestic providers consume the Chinese variant, the rest the English one.
type Prompt struct {
	English string `json:"english"`
	Chinese string `json:"chinese"`
}

// Chinese-or-English, for providers that prefer the localized variant.
func (p Prompt) Localized() string {
	if s := strings.TrimSpace(p.Chinese); s != "" {
		return s
	}
	return strings.TrimSpace(p.English)
}

// English-or-Chinese, for providers tuned on English prompts.
func (p Prompt) International() string {
	if s := strings.TrimSpace(p.English); s != "" {
		return s
	}
	return strings.TrimSpace(p.Chinese)
}

// Credentials holds the secret fields for a single provider. They are
// supplied by the caller per call and never persisted.
type Credentials map[string]string

// Request is the normalized input passed to any generator.
type Request struct {
	Prompt      Prompt
	Size        string
	Quality     string
	Steps       int
	Credentials Credentials
}

// Result is a materialized image: bytes plus whatever metadata the provider
// exposed. URL is set when the provider returned a hosted asset.
type Result struct {
	URL    string
	Data   []byte
	Format string
	Width  int
	Height int
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// DefaultSize is used when the caller does not request a resolution.
const DefaultSize = "1024x1024"

// sizeParts splits "1024x1024" into width and height tokens, falling back to
// the default on malformed input.
func sizeParts(size string) (string, string) {
	size = strings.TrimSpace(size)
	if size == "" {
		size = DefaultSize
	}
	parts := strings.SplitN(strings.ToLower(size), "x", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "1024", "1024"
	}
	return parts[0], parts[1]
}

// sizeWithSep renders the requested size with a provider-specific separator,
// e.g. "1024*1024" for DashScope or "1024:1024" for Hunyuan.
func sizeWithSep(size, sep string) string {
	w, h := sizeParts(size)
	return w + sep + h
}
