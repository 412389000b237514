package image

import (
	"context"
	"net/http"
	"strings"
)

// MinimaxGenerator calls the MiniMax text-to-image endpoint.
type MinimaxGenerator struct {
	backend
	baseURL string
	model   string
}

func NewMinimaxGenerator(baseURL string, client *http.Client) *MinimaxGenerator {
	return &MinimaxGenerator{
		backend: backend{provider: ProviderMinimax, client: client},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   "text_to_image_01",
	}
}

func (g *MinimaxGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	size := strings.TrimSpace(req.Size)
	if size == "" {
		size = DefaultSize
	}
	payload := map[string]any{
		"model":      g.model,
		"prompt":     req.Prompt.Localized(),
		"image_size": size,
	}
	raw, err := g.postJSON(ctx, g.baseURL+"/text_to_image", bearer(req.Credentials["api_key"]), payload)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Data struct {
			Images []struct {
				URL string `json:"url"`
			} `json:"images"`
		} `json:"data"`
	}
	if err := decodeJSON(g.provider, raw, &decoded); err != nil {
		return nil, err
	}
	for _, img := range decoded.Data.Images {
		if u := strings.TrimSpace(img.URL); u != "" {
			return g.materialize(ctx, u)
		}
	}
	return nil, emptyEnvelope(g.provider, raw)
}

var _ Generator = (*MinimaxGenerator)(nil)
