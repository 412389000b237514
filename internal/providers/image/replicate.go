package image

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sellerkit/internal/domain"
)

const (
	sdxlVersion = "39ed52f2a78e934b3ba6e2a89f5b1c712de7dfea535525255b1aa35c5565e08b"

	defaultPollInterval = 5 * time.Second
	defaultPollAttempts = 60
)

// ReplicateGenerator drives Replicate's asynchronous prediction API: submit,
// then poll the status endpoint at a fixed interval until a terminal state or
// the attempt ceiling. Exceeding the ceiling yields a TimeoutError; the
// remote prediction may still complete server-side afterwards.
type ReplicateGenerator struct {
	backend
	baseURL      string
	pollInterval time.Duration
	pollAttempts int
}

func NewReplicateGenerator(baseURL string, client *http.Client) *ReplicateGenerator {
	return &ReplicateGenerator{
		backend:      backend{provider: ProviderReplicateSDXL, client: client},
		baseURL:      strings.TrimRight(baseURL, "/"),
		pollInterval: defaultPollInterval,
		pollAttempts: defaultPollAttempts,
	}
}

type predictionEnvelope struct {
	Status string   `json:"status"`
	Output []string `json:"output"`
	Error  any      `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

func (g *ReplicateGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	steps := req.Steps
	if steps <= 0 {
		steps = 25
	}
	w, h := sizeParts(req.Size)
	width, _ := strconv.Atoi(w)
	height, _ := strconv.Atoi(h)
	if width <= 0 || height <= 0 {
		width, height = 1024, 1024
	}
	payload := map[string]any{
		"version": sdxlVersion,
		"input": map[string]any{
			"prompt":              req.Prompt.International(),
			"width":               width,
			"height":              height,
			"num_inference_steps": steps,
		},
	}
	headers := map[string]string{"Authorization": "Token " + strings.TrimSpace(req.Credentials["api_key"])}
	raw, err := g.postJSON(ctx, g.baseURL+"/predictions", headers, payload)
	if err != nil {
		return nil, err
	}
	var submitted predictionEnvelope
	if err := decodeJSON(g.provider, raw, &submitted); err != nil {
		return nil, err
	}
	statusURL := strings.TrimSpace(submitted.URLs.Get)
	if statusURL == "" {
		return nil, emptyEnvelope(g.provider, raw)
	}
	return g.poll(ctx, statusURL, headers)
}

func (g *ReplicateGenerator) poll(ctx context.Context, statusURL string, headers map[string]string) (*Result, error) {
	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()
	for attempt := 0; attempt < g.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, &domain.ProviderError{Provider: g.provider, Cause: ctx.Err()}
		case <-ticker.C:
		}
		raw, err := g.getJSON(ctx, statusURL, headers)
		if err != nil {
			return nil, err
		}
		var state predictionEnvelope
		if err := decodeJSON(g.provider, raw, &state); err != nil {
			return nil, err
		}
		switch state.Status {
		case "succeeded":
			for _, u := range state.Output {
				if u = strings.TrimSpace(u); u != "" {
					return g.materialize(ctx, u)
				}
			}
			return nil, emptyEnvelope(g.provider, raw)
		case "failed", "canceled":
			return nil, &domain.ProviderError{Provider: g.provider, Body: strings.TrimSpace(string(raw))}
		}
	}
	return nil, &domain.TimeoutError{Provider: g.provider, Attempts: g.pollAttempts}
}

var _ Generator = (*ReplicateGenerator)(nil)
