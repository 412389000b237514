package image

import (
	"context"
	"net/http"
	"strings"
)

// TongyiGenerator calls the DashScope Tongyi Wanxiang text-to-image API.
type TongyiGenerator struct {
	backend
	baseURL string
	model   string
}

func NewTongyiGenerator(baseURL string, client *http.Client) *TongyiGenerator {
	return &TongyiGenerator{
		backend: backend{provider: ProviderAliTongyi, client: client},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   "wanx-v1",
	}
}

func (g *TongyiGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	payload := map[string]any{
		"model": g.model,
		"input": map[string]any{
			"prompt": req.Prompt.Localized(),
		},
		"parameters": map[string]any{
			"style": "<auto>",
			"size":  sizeWithSep(req.Size, "*"),
			"n":     1,
		},
	}
	endpoint := g.baseURL + "/services/aigc/text2image/image-synthesis"
	raw, err := g.postJSON(ctx, endpoint, bearer(req.Credentials["api_key"]), payload)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Output struct {
			Results []struct {
				URL string `json:"url"`
			} `json:"results"`
		} `json:"output"`
	}
	if err := decodeJSON(g.provider, raw, &decoded); err != nil {
		return nil, err
	}
	for _, result := range decoded.Output.Results {
		if u := strings.TrimSpace(result.URL); u != "" {
			return g.materialize(ctx, u)
		}
	}
	return nil, emptyEnvelope(g.provider, raw)
}

var _ Generator = (*TongyiGenerator)(nil)
