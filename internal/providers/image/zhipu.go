package image

import (
	"context"
	"net/http"
	"strings"
)

// ZhipuGenerator calls the Zhipu CogView image endpoint.
type ZhipuGenerator struct {
	backend
	baseURL string
	model   string
}

func NewZhipuGenerator(baseURL string, client *http.Client) *ZhipuGenerator {
	return &ZhipuGenerator{
		backend: backend{provider: ProviderZhipuCogview, client: client},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   "cogview-3",
	}
}

func (g *ZhipuGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	size := strings.TrimSpace(req.Size)
	if size == "" {
		size = DefaultSize
	}
	payload := map[string]any{
		"model":  g.model,
		"prompt": req.Prompt.Localized(),
		"size":   size,
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
	for _, item := range decoded.Data {
		if u := strings.TrimSpace(item.URL); u != "" {
			return g.materialize(ctx, u)
		}
	}
	return nil, emptyEnvelope(g.provider, raw)
}

var _ Generator = (*ZhipuGenerator)(nil)
