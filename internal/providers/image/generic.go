package image

import (
	"context"
	"net/http"
	"strings"
)

// GenericGenerator handles vendors whose APIs follow the common bearer-auth
// sync pattern but whose envelope key varies. It tries the known envelope
// shapes in order and materializes the first URL found.
type GenericGenerator struct {
	backend
	baseURL string
	path    string
	model   string
}

func NewGenericGenerator(provider, baseURL, path, model string, client *http.Client) *GenericGenerator {
	return &GenericGenerator{
		backend: backend{provider: provider, client: client},
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    path,
		model:   model,
	}
}

type genericEnvelope struct {
	URL  string `json:"url"`
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Images []string `json:"images"`
}

func (e genericEnvelope) firstURL() string {
	if u := strings.TrimSpace(e.URL); u != "" {
		return u
	}
	for _, d := range e.Data {
		if u := strings.TrimSpace(d.URL); u != "" {
			return u
		}
	}
	for _, u := range e.Images {
		if u = strings.TrimSpace(u); u != "" {
			return u
		}
	}
	return ""
}

func (g *GenericGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	payload := map[string]any{
		"prompt": req.Prompt.Localized(),
		"size":   req.Size,
	}
	if g.model != "" {
		payload["model"] = g.model
	}
	raw, err := g.postJSON(ctx, g.baseURL+g.path, bearer(req.Credentials["api_key"]), payload)
	if err != nil {
		return nil, err
	}
	var env genericEnvelope
	if err := decodeJSON(g.provider, raw, &env); err != nil {
		return nil, err
	}
	u := env.firstURL()
	if u == "" {
		return nil, emptyEnvelope(g.provider, raw)
	}
	return g.materialize(ctx, u)
}

var _ Generator = (*GenericGenerator)(nil)
