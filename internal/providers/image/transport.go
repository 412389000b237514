package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"

	"sellerkit/internal/domain"
)

// backend bundles the HTTP machinery shared by every provider client so the
// per-provider code stays focused on auth and envelope shape.
type backend struct {
	provider string
	client   *http.Client
}

// postJSON issues a JSON POST and returns the raw response body. Non-success
// statuses become a ProviderError carrying the body for diagnostics.
func (b backend) postJSON(ctx context.Context, endpoint string, headers map[string]string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &domain.ProviderError{Provider: b.provider, Cause: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.ProviderError{Provider: b.provider, Cause: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return b.do(req)
}

// getJSON issues a GET with the given headers and returns the raw body.
func (b backend) getJSON(ctx context.Context, endpoint string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.ProviderError{Provider: b.provider, Cause: fmt.Errorf("build request: %w", err)}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return b.do(req)
}

func (b backend) do(req *http.Request) ([]byte, error) {
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Provider: b.provider, Cause: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ProviderError{Provider: b.provider, Cause: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode >= 300 {
		return nil, &domain.ProviderError{
			Provider: b.provider,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(raw)),
		}
	}
	return raw, nil
}

// download fetches a hosted image and returns its bytes plus the reported
// content type.
func (b backend) download(ctx context.Context, imageURL string) ([]byte, string, error) {
	parsed, err := url.Parse(strings.TrimSpace(imageURL))
	if err != nil || parsed.Scheme == "" {
		return nil, "", &domain.ProviderError{Provider: b.provider, Cause: fmt.Errorf("invalid image url: %q", imageURL)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, "", &domain.ProviderError{Provider: b.provider, Cause: fmt.Errorf("build download request: %w", err)}
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, "", &domain.ProviderError{Provider: b.provider, Cause: fmt.Errorf("download image: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, "", &domain.ProviderError{Provider: b.provider, Status: resp.StatusCode, Body: "image download failed"}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &domain.ProviderError{Provider: b.provider, Cause: fmt.Errorf("read image: %w", err)}
	}
	format := resp.Header.Get("Content-Type")
	if format == "" {
		format = "image/png"
	}
	return data, format, nil
}

// materialize downloads a hosted asset and fills in pixel dimensions when
// they can be decoded from the payload.
func (b backend) materialize(ctx context.Context, imageURL string) (*Result, error) {
	data, format, err := b.download(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	res := &Result{URL: imageURL, Data: data, Format: format}
	fillDimensions(res)
	return res, nil
}

func fillDimensions(res *Result) {
	if res.Width > 0 && res.Height > 0 {
		return
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(res.Data))
	if err == nil {
		res.Width, res.Height = cfg.Width, cfg.Height
	}
}

// emptyEnvelope covers responses that were accepted but carried no asset.
func emptyEnvelope(provider string, raw []byte) error {
	return &domain.ProviderError{Provider: provider, Body: strings.TrimSpace(string(raw)), Cause: fmt.Errorf("response contained no image")}
}

func decodeJSON(provider string, raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.ProviderError{Provider: provider, Cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
