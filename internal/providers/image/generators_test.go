package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"sellerkit/internal/domain"
)

func TestDalleGeneratePayloadAndResult(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1/images/generations", map[string]any{
		"data": []map[string]any{{"url": "https://img.test/out.png"}},
	})
	transport.setBinaryResponse("https://img.test/out.png", pngBytes(t, 4, 2))

	gen := NewDalleGenerator("https://api.openai.test/v1", &http.Client{Transport: transport})
	res, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{English: "a ceramic mug on a wooden table"},
		Credentials: Credentials{"api_key": "sk-test"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(transport.lastBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["model"] != "dall-e-3" {
		t.Fatalf("model = %v, want dall-e-3", payload["model"])
	}
	if payload["prompt"] != "a ceramic mug on a wooden table" {
		t.Fatalf("prompt = %v", payload["prompt"])
	}
	if payload["size"] != "1024x1024" {
		t.Fatalf("size = %v, want default 1024x1024", payload["size"])
	}
	if res.URL != "https://img.test/out.png" {
		t.Fatalf("url = %q", res.URL)
	}
	if res.Width != 4 || res.Height != 2 {
		t.Fatalf("dimensions = %dx%d, want 4x2", res.Width, res.Height)
	}
}

func TestDalleUpstreamFailure(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setErrorResponse("/v1/images/generations", http.StatusUnauthorized, "invalid api key")

	gen := NewDalleGenerator("https://api.openai.test/v1", &http.Client{Transport: transport})
	_, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{English: "x"},
		Credentials: Credentials{"api_key": "bad"},
	})
	var pe *domain.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if pe.Status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", pe.Status)
	}
	if !strings.Contains(pe.Body, "invalid api key") {
		t.Fatalf("body = %q, want upstream body preserved", pe.Body)
	}
}

func TestStabilityDecodesArtifact(t *testing.T) {
	raw := pngBytes(t, 8, 8)
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image", map[string]any{
		"artifacts": []map[string]any{{"base64": base64.StdEncoding.EncodeToString(raw)}},
	})

	gen := NewStabilityGenerator("https://api.stability.test", &http.Client{Transport: transport})
	res, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{English: "studio product shot"},
		Size:        "512x768",
		Credentials: Credentials{"api_key": "sk"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(res.Data, raw) {
		t.Fatal("artifact bytes not decoded verbatim")
	}
	var payload map[string]any
	if err := json.Unmarshal(transport.lastBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["width"] != float64(512) || payload["height"] != float64(768) {
		t.Fatalf("size = %vx%v, want 512x768", payload["width"], payload["height"])
	}
}

func TestBaiduExchangesTokenBeforeGenerating(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/oauth/2.0/token", map[string]any{"access_token": "tok-123"})
	transport.setJSONResponse("/rpc/2.0/ai_custom/v1/wenxinworkshop/text2image/sd_xl", map[string]any{
		"data": map[string]any{
			"sub_task_result_list": []map[string]any{{
				"final_image_list": []map[string]any{{"img_url": "https://bd.test/final.png"}},
			}},
		},
	})
	transport.setBinaryResponse("https://bd.test/final.png", pngBytes(t, 2, 2))

	gen := NewBaiduGenerator("https://aip.baidu.test", &http.Client{Transport: transport})
	res, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{Chinese: "手工陶瓷杯，暖色调"},
		Credentials: Credentials{"api_key": "ak", "secret_key": "sk"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.URL != "https://bd.test/final.png" {
		t.Fatalf("url = %q", res.URL)
	}
}

func TestBaiduTokenExchangeFailure(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/oauth/2.0/token", map[string]any{"error": "invalid_client"})

	gen := NewBaiduGenerator("https://aip.baidu.test", &http.Client{Transport: transport})
	_, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{Chinese: "x"},
		Credentials: Credentials{"api_key": "ak", "secret_key": "bad"},
	})
	var pe *domain.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if !strings.Contains(pe.Body, "invalid_client") {
		t.Fatalf("body = %q, want exchange response", pe.Body)
	}
}

func TestTongyiPayloadUsesStarSize(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/api/v1/services/aigc/text2image/image-synthesis", map[string]any{
		"output": map[string]any{"results": []map[string]any{{"url": "https://dash.test/r.png"}}},
	})
	transport.setBinaryResponse("https://dash.test/r.png", pngBytes(t, 2, 2))

	gen := NewTongyiGenerator("https://dashscope.test/api/v1", &http.Client{Transport: transport})
	if _, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{Chinese: "国风插画茶具"},
		Size:        "1024x1024",
		Credentials: Credentials{"api_key": "sk"},
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	var payload struct {
		Model      string `json:"model"`
		Parameters struct {
			Size string `json:"size"`
		} `json:"parameters"`
	}
	if err := json.Unmarshal(transport.lastBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Model != "wanx-v1" {
		t.Fatalf("model = %q", payload.Model)
	}
	if payload.Parameters.Size != "1024*1024" {
		t.Fatalf("size = %q, want 1024*1024", payload.Parameters.Size)
	}
}

func TestHunyuanDecodesInlineImage(t *testing.T) {
	raw := pngBytes(t, 3, 3)
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/", map[string]any{
		"Response": map[string]any{"ResultImage": base64.StdEncoding.EncodeToString(raw)},
	})

	gen := NewHunyuanGenerator("https://hunyuan.test", &http.Client{Transport: transport})
	gen.now = func() time.Time { return time.Unix(1700000000, 0) }
	res, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{Chinese: "电商主图"},
		Credentials: Credentials{"secret_id": "id", "secret_key": "key"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(res.Data, raw) {
		t.Fatal("inline image not decoded verbatim")
	}
}

func TestHunyuanErrorEnvelope(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/", map[string]any{
		"Response": map[string]any{
			"Error": map[string]any{"Code": "AuthFailure", "Message": "signature mismatch"},
		},
	})

	gen := NewHunyuanGenerator("https://hunyuan.test", &http.Client{Transport: transport})
	_, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{Chinese: "x"},
		Credentials: Credentials{"secret_id": "id", "secret_key": "key"},
	})
	var pe *domain.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if !strings.Contains(pe.Error(), "AuthFailure") {
		t.Fatalf("error = %v, want vendor code surfaced", pe)
	}
}

func TestHuggingFaceReturnsRawBytes(t *testing.T) {
	raw := pngBytes(t, 5, 5)
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setBinaryResponse("/models/stabilityai/stable-diffusion-xl-base-1.0", raw)

	gen := NewHFGenerator("https://api-inference.test", &http.Client{Transport: transport})
	res, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{English: "minimalist poster"},
		Credentials: Credentials{"api_key": "hf_x"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(res.Data, raw) {
		t.Fatal("expected raw response bytes")
	}
	if res.Width != 5 || res.Height != 5 {
		t.Fatalf("dimensions = %dx%d, want 5x5", res.Width, res.Height)
	}
}

func TestReplicatePollsUntilSucceeded(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponseStatus("/v1/predictions", http.StatusCreated, map[string]any{
		"status": "starting",
		"urls":   map[string]any{"get": "https://api.replicate.test/v1/predictions/p1"},
	})
	transport.setJSONResponse("https://api.replicate.test/v1/predictions/p1", map[string]any{
		"status": "succeeded",
		"output": []string{"https://out.replicate.test/p1.png"},
	})
	transport.setBinaryResponse("https://out.replicate.test/p1.png", pngBytes(t, 2, 2))

	gen := NewReplicateGenerator("https://api.replicate.test/v1", &http.Client{Transport: transport})
	gen.pollInterval = time.Millisecond
	res, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{English: "sdxl render"},
		Credentials: Credentials{"api_key": "r8_x"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.URL != "https://out.replicate.test/p1.png" {
		t.Fatalf("url = %q", res.URL)
	}
}

func TestReplicateFailedPrediction(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponseStatus("/v1/predictions", http.StatusCreated, map[string]any{
		"status": "starting",
		"urls":   map[string]any{"get": "https://api.replicate.test/v1/predictions/p2"},
	})
	transport.setJSONResponse("https://api.replicate.test/v1/predictions/p2", map[string]any{
		"status": "failed",
		"error":  "NSFW content detected",
	})

	gen := NewReplicateGenerator("https://api.replicate.test/v1", &http.Client{Transport: transport})
	gen.pollInterval = time.Millisecond
	_, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{English: "x"},
		Credentials: Credentials{"api_key": "r8_x"},
	})
	var pe *domain.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ProviderError", err)
	}
	if !strings.Contains(pe.Body, "NSFW") {
		t.Fatalf("body = %q, want failure detail", pe.Body)
	}
}

func TestReplicatePollCeiling(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponseStatus("/v1/predictions", http.StatusCreated, map[string]any{
		"status": "starting",
		"urls":   map[string]any{"get": "https://api.replicate.test/v1/predictions/p3"},
	})
	transport.setJSONResponse("https://api.replicate.test/v1/predictions/p3", map[string]any{
		"status": "processing",
	})

	gen := NewReplicateGenerator("https://api.replicate.test/v1", &http.Client{Transport: transport})
	gen.pollInterval = time.Millisecond
	gen.pollAttempts = 3
	_, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{English: "x"},
		Credentials: Credentials{"api_key": "r8_x"},
	})
	var te *domain.TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want TimeoutError", err)
	}
	if te.Attempts != 3 {
		t.Fatalf("attempts = %d, want 3", te.Attempts)
	}
}

func TestGenericEnvelopeShapes(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1/images", map[string]any{
		"images": []string{"https://yitu.test/a.png"},
	})
	transport.setBinaryResponse("https://yitu.test/a.png", pngBytes(t, 2, 2))

	gen := NewGenericGenerator(ProviderYituWonder, "https://yitu.test", "/v1/images", "wonder-v1", &http.Client{Transport: transport})
	res, err := gen.Generate(context.Background(), Request{
		Prompt:      Prompt{Chinese: "插画"},
		Credentials: Credentials{"api_key": "yt"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.URL != "https://yitu.test/a.png" {
		t.Fatalf("url = %q", res.URL)
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

type captureTransport struct {
	responses map[string]responseStub
	lastBody  []byte
}

type responseStub struct {
	status int
	header http.Header
	body   []byte
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodPost {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		c.lastBody = body
		if stub, ok := c.responses[req.URL.Path]; ok {
			return stub.toResponse(), nil
		}
	}
	if req.Method == http.MethodGet {
		if stub, ok := c.responses[req.URL.String()]; ok {
			return stub.toResponse(), nil
		}
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader("not found")),
	}, nil
}

func (c *captureTransport) setJSONResponse(key string, payload any) {
	c.setJSONResponseStatus(key, http.StatusOK, payload)
}

func (c *captureTransport) setJSONResponseStatus(key string, status int, payload any) {
	body, _ := json.Marshal(payload)
	c.responses[key] = responseStub{
		status: status,
		header: http.Header{"Content-Type": []string{"application/json"}},
		body:   body,
	}
}

func (c *captureTransport) setBinaryResponse(key string, data []byte) {
	c.responses[key] = responseStub{
		status: http.StatusOK,
		header: http.Header{"Content-Type": []string{"image/png"}},
		body:   data,
	}
}

func (c *captureTransport) setErrorResponse(key string, status int, body string) {
	c.responses[key] = responseStub{
		status: status,
		header: http.Header{"Content-Type": []string{"application/json"}},
		body:   []byte(body),
	}
}

func (s responseStub) toResponse() *http.Response {
	header := http.Header{}
	for k, values := range s.header {
		cloned := make([]string, len(values))
		copy(cloned, values)
		header[k] = cloned
	}
	return &http.Response{
		StatusCode: s.status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(s.body)),
	}
}
