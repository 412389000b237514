package image

import (
	"context"
	"net/http"
	"strings"
)

// DalleGenerator calls the OpenAI image generation endpoint.
type DalleGenerator struct {
	backend
	baseURL string
	model   string
}

// NewDalleGenerator builds a DALL-E 3 client against the given API root.
func NewDalleGenerator(baseURL string, client *http.Client) *DalleGenerator {
	return &DalleGenerator{
		backend: backend{provider: ProviderDalle3, client: client},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   "dall-e-3",
	}
}

func (g *DalleGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	quality := strings.TrimSpace(req.Quality)
	if quality == "" {
		quality = "standard"
	}
	size := strings.TrimSpace(req.Size)
	if size == "" {
		size = DefaultSize
	}
	payload := map[string]any{
		"model":   g.model,
		"prompt":  req.Prompt.International(),
		"size":    size,
		"quality": quality,
		"n":       1,
	}
	raw, err := g.postJSON(ctx, g.baseURL+"/images/generations", bearer(req.Credentials["api_key"]), payload)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := decodeJSON(g.provider, raw, &decoded); err != nil {
		return nil, err
	}
	if len(decoded.Data) == 0 || strings.TrimSpace(decoded.Data[0].URL) == "" {
		return nil, emptyEnvelope(g.provider, raw)
	}
	return g.materialize(ctx, decoded.Data[0].URL)
}

var _ Generator = (*DalleGenerator)(nil)

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + strings.TrimSpace(token)}
}
