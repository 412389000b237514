package image

import (
	"context"
	"net/http"
	"strings"
)

// HFGenerator calls the Hugging Face hosted inference API. A successful
// response body is the raw image bytes rather than a JSON envelope. Hosted
// inference can be slow when the model is cold, so this client is registered
// with a 120 second timeout instead of the usual 60.
type HFGenerator struct {
	backend
	baseURL string
	model   string
}

func NewHFGenerator(baseURL string, client *http.Client) *HFGenerator {
	return &HFGenerator{
		backend: backend{provider: ProviderHuggingFace, client: client},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   "stabilityai/stable-diffusion-xl-base-1.0",
	}
}

func (g *HFGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	steps := req.Steps
	if steps <= 0 {
		steps = 20
	}
	payload := map[string]any{
		"inputs": req.Prompt.International(),
		"parameters": map[string]any{
			"num_inference_steps": steps,
			"guidance_scale":      7.5,
		},
	}
	raw, err := g.postJSON(ctx, g.baseURL+"/models/"+g.model, bearer(req.Credentials["api_key"]), payload)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, emptyEnvelope(g.provider, raw)
	}
	res := &Result{Data: raw, Format: "image/png"}
	fillDimensions(res)
	return res, nil
}

var _ Generator = (*HFGenerator)(nil)
