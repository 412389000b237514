package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"sellerkit/internal/compositor"
	"sellerkit/internal/domain"
	"sellerkit/internal/middleware"
	providers "sellerkit/internal/providers/image"
	"sellerkit/internal/storage"
)

type stubGenerator struct {
	result *providers.Result
	err    error
}

func (s *stubGenerator) Generate(context.Context, providers.Request) (*providers.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestApp(t *testing.T, gen providers.Generator) *App {
	t.Helper()
	registry := providers.NewRegistry()
	if gen != nil {
		registry.Register(providers.Descriptor{
			ID:       "stub",
			Name:     "Stub",
			Requires: []string{"api_key"},
		}, gen)
	}
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	dispatcher := providers.NewDispatcher(registry, store)
	return NewApp(zerolog.Nop(), registry, dispatcher, store, nil, "http://localhost:8080")
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)
	rec := httptest.NewRecorder()
	app.Health(rec, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestProvidersListsCatalog(t *testing.T) {
	app := newTestApp(t, &stubGenerator{})
	rec := httptest.NewRecorder()
	app.Providers(rec, httptest.NewRequest(http.MethodGet, "/v1/providers", nil))

	var resp struct {
		Providers []providers.Descriptor `json:"providers"`
	}
	decodeResponse(t, rec, &resp)
	if len(resp.Providers) != 1 || resp.Providers[0].ID != "stub" {
		t.Fatalf("providers = %+v", resp.Providers)
	}
}

func TestScanTextFlagsAndCleans(t *testing.T) {
	app := newTestApp(t, nil)
	rec := postJSON(t, app.ScanText, "/v1/text/scan", map[string]string{
		"text": "这是最好的产品，保证有效",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Matched   []string `json:"matched"`
		Cleaned   string   `json:"cleaned"`
		Compliant bool     `json:"compliant"`
	}
	decodeResponse(t, rec, &resp)
	if resp.Compliant {
		t.Fatal("text with forbidden words must not be compliant")
	}
	if len(resp.Matched) == 0 {
		t.Fatal("expected matches")
	}
	if strings.Contains(resp.Cleaned, "最好") {
		t.Fatalf("cleaned = %q still contains a mapped term", resp.Cleaned)
	}
}

func TestScanTextRequiresBody(t *testing.T) {
	app := newTestApp(t, nil)
	rec := postJSON(t, app.ScanText, "/v1/text/scan", map[string]string{"text": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestComposePromptEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	rec := postJSON(t, app.ComposePrompt, "/v1/prompts/compose", map[string]any{
		"title":   "夏季连衣裙",
		"content": "新款连衣裙，舒适面料，提升穿着体验",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		English string `json:"english"`
		Chinese string `json:"chinese"`
	}
	decodeResponse(t, rec, &resp)
	if resp.English == "" || resp.Chinese == "" {
		t.Fatalf("expected both prompt variants, got %+v", resp)
	}
}

func TestComposePromptHonorsLocale(t *testing.T) {
	app := newTestApp(t, nil)
	handler := middleware.Locale("zh")(http.HandlerFunc(app.ComposePrompt))

	body, _ := json.Marshal(map[string]any{
		"title":   "夏季连衣裙",
		"content": "新款连衣裙，舒适面料",
	})
	for _, tc := range []struct {
		locale string
		field  string
	}{
		{"en", "english"},
		{"zh", "chinese"},
	} {
		req := httptest.NewRequest(http.MethodPost, "/v1/prompts/compose", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Locale", tc.locale)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		var resp map[string]any
		decodeResponse(t, rec, &resp)
		if resp["prompt"] == "" || resp["prompt"] != resp[tc.field] {
			t.Fatalf("locale %s: prompt = %v, want %s variant %v", tc.locale, resp["prompt"], tc.field, resp[tc.field])
		}
	}
}

func TestDetailPageLayoutEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	rec := postJSON(t, app.DetailPageLayout, "/v1/layouts/detail-page", map[string]string{
		"title":   "网络创业指南",
		"content": "提升运营效率，30天见效，适合中小卖家",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Sections []struct {
			Type string `json:"type"`
		} `json:"sections"`
		SectionPrompts map[string]string `json:"section_prompts"`
	}
	decodeResponse(t, rec, &resp)
	if len(resp.Sections) != 5 {
		t.Fatalf("sections = %d, want 5", len(resp.Sections))
	}
	if len(resp.SectionPrompts) != 5 {
		t.Fatalf("section prompts = %d, want 5", len(resp.SectionPrompts))
	}
	if resp.Sections[0].Type != "hero" {
		t.Fatalf("first section = %q, want hero", resp.Sections[0].Type)
	}
}

func TestGenerateImageDispatchesStub(t *testing.T) {
	gen := &stubGenerator{result: &providers.Result{
		Data:   []byte{0x01, 0x02},
		Format: "image/png",
		Width:  1024,
		Height: 1024,
	}}
	app := newTestApp(t, gen)
	rec := postJSON(t, app.GenerateImage, "/v1/images/generate", map[string]any{
		"provider":    "stub",
		"title":       "标题",
		"content":     "内容",
		"credentials": map[string]string{"api_key": "k"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp generateResponse
	decodeResponse(t, rec, &resp)
	if resp.Provider != "stub" || resp.ImageB64 == "" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Prompt.English == "" {
		t.Fatal("expected a composed prompt in the response")
	}
}

func TestGenerateImageSavesWhenRequested(t *testing.T) {
	gen := &stubGenerator{result: &providers.Result{Data: []byte{0x01}, Format: "image/png"}}
	app := newTestApp(t, gen)
	rec := postJSON(t, app.GenerateImage, "/v1/images/generate", map[string]any{
		"provider":    "stub",
		"title":       "标题",
		"save":        true,
		"credentials": map[string]string{"api_key": "k"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp generateResponse
	decodeResponse(t, rec, &resp)
	if resp.Path == "" || !strings.HasPrefix(resp.PublicURL, "http://localhost:8080/") {
		t.Fatalf("response = %+v", resp)
	}
	if resp.ImageB64 != "" {
		t.Fatal("saved responses should not inline the image")
	}
}

func TestGenerateImageErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"provider failure", &domain.ProviderError{Provider: "stub", Status: 500}, http.StatusBadGateway},
		{"timeout", &domain.TimeoutError{Provider: "stub", Attempts: 60}, http.StatusGatewayTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t, &stubGenerator{err: tc.err})
			rec := postJSON(t, app.GenerateImage, "/v1/images/generate", map[string]any{
				"provider":    "stub",
				"title":       "x",
				"credentials": map[string]string{"api_key": "k"},
			})
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestGenerateImageUnknownProvider(t *testing.T) {
	app := newTestApp(t, nil)
	rec := postJSON(t, app.GenerateImage, "/v1/images/generate", map[string]any{
		"provider": "nope",
		"title":    "x",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func templateBase64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
		}
	}
	encoded, err := compositor.EncodePNG(img)
	if err != nil {
		t.Fatalf("encode template: %v", err)
	}
	return encoded
}

func TestAnalyzeTemplateEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	rec := postJSON(t, app.AnalyzeTemplate, "/v1/templates/analyze", map[string]any{
		"image": templateBase64(t),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp compositor.TemplateAnalysis
	decodeResponse(t, rec, &resp)
	if resp.Width != 120 || resp.Height != 120 {
		t.Fatalf("dimensions = %dx%d", resp.Width, resp.Height)
	}
	if len(resp.DominantColors) == 0 {
		t.Fatal("expected a palette")
	}
}

func TestComposeTemplateEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	rec := postJSON(t, app.ComposeTemplate, "/v1/templates/compose", map[string]any{
		"image": templateBase64(t),
		"spec": map[string]any{
			"title":      "新品上市",
			"subtitle":   "限时特惠",
			"key_points": []string{"包邮", "七天退换"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ImageB64 string `json:"image_base64"`
	}
	decodeResponse(t, rec, &resp)
	if resp.ImageB64 == "" {
		t.Fatal("expected a composite image")
	}
}

func TestComposeTemplateZipFormat(t *testing.T) {
	app := newTestApp(t, nil)
	body, _ := json.Marshal(map[string]any{
		"image": templateBase64(t),
		"spec":  map[string]any{"title": "标题"},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/templates/compose?format=zip", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ComposeTemplate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("content type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected archive bytes")
	}
}

func TestComposeTemplateBadImage(t *testing.T) {
	app := newTestApp(t, nil)
	rec := postJSON(t, app.ComposeTemplate, "/v1/templates/compose", map[string]any{
		"image": "bm90IGFuIGltYWdl",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}
