package image

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"sellerkit/internal/domain"
)

// StabilityGenerator calls the Stability AI SDXL text-to-image endpoint.
// The response carries the image inline as base64 artifacts.
type StabilityGenerator struct {
	backend
	baseURL string
}

func NewStabilityGenerator(baseURL string, client *http.Client) *StabilityGenerator {
	return &StabilityGenerator{
		backend: backend{provider: ProviderStableDiffusion, client: client},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (g *StabilityGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	steps := req.Steps
	if steps <= 0 {
		steps = 30
	}
	w, h := sizeParts(req.Size)
	width, _ := strconv.Atoi(w)
	height, _ := strconv.Atoi(h)
	if width <= 0 || height <= 0 {
		width, height = 1024, 1024
	}
	payload := map[string]any{
		"text_prompts": []map[string]any{{"text": req.Prompt.International(), "weight": 1}},
		"cfg_scale":    7,
		"width":        width,
		"height":       height,
		"samples":      1,
		"steps":        steps,
	}
	headers := bearer(req.Credentials["api_key"])
	headers["Accept"] = "application/json"
	endpoint := g.baseURL + "/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"
	raw, err := g.postJSON(ctx, endpoint, headers, payload)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Artifacts []struct {
			Base64 string `json:"base64"`
		} `json:"artifacts"`
	}
	if err := decodeJSON(g.provider, raw, &decoded); err != nil {
		return nil, err
	}
	if len(decoded.Artifacts) == 0 || decoded.Artifacts[0].Base64 == "" {
		return nil, emptyEnvelope(g.provider, raw)
	}
	data, err := base64.StdEncoding.DecodeString(decoded.Artifacts[0].Base64)
	if err != nil {
		return nil, &domain.ProviderError{Provider: g.provider, Cause: fmt.Errorf("decode artifact: %w", err)}
	}
	res := &Result{Data: data, Format: "image/png", Width: width, Height: height}
	fillDimensions(res)
	return res, nil
}

var _ Generator = (*StabilityGenerator)(nil)
