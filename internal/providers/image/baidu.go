package image

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"sellerkit/internal/domain"
)

// BaiduGenerator calls the Wenxin Yige text-to-image API. Baidu uses a
// two-step scheme: the key/secret pair is first exchanged for a short-lived
// access token, which then rides on the generation call as a query parameter.
type BaiduGenerator struct {
	backend
	baseURL string
}

func NewBaiduGenerator(baseURL string, client *http.Client) *BaiduGenerator {
	return &BaiduGenerator{
		backend: backend{provider: ProviderBaiduWenxin, client: client},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (g *BaiduGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	token, err := g.exchangeToken(ctx, req.Credentials["api_key"], req.Credentials["secret_key"])
	if err != nil {
		return nil, err
	}
	w, h := sizeParts(req.Size)
	width, _ := strconv.Atoi(w)
	height, _ := strconv.Atoi(h)
	if width <= 0 || height <= 0 {
		width, height = 1024, 1024
	}
	payload := map[string]any{
		"prompt":    req.Prompt.Localized(),
		"width":     width,
		"height":    height,
		"image_num": 1,
	}
	endpoint := fmt.Sprintf("%s/rpc/2.0/ai_custom/v1/wenxinworkshop/text2image/sd_xl?access_token=%s",
		g.baseURL, url.QueryEscape(token))
	raw, err := g.postJSON(ctx, endpoint, nil, payload)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Data struct {
			SubTaskResultList []struct {
				FinalImageList []struct {
					ImgURL string `json:"img_url"`
				} `json:"final_image_list"`
			} `json:"sub_task_result_list"`
		} `json:"data"`
	}
	if err := decodeJSON(g.provider, raw, &decoded); err != nil {
		return nil, err
	}
	for _, task := range decoded.Data.SubTaskResultList {
		for _, img := range task.FinalImageList {
			if u := strings.TrimSpace(img.ImgURL); u != "" {
				return g.materialize(ctx, u)
			}
		}
	}
	return nil, emptyEnvelope(g.provider, raw)
}

func (g *BaiduGenerator) exchangeToken(ctx context.Context, apiKey, secretKey string) (string, error) {
	params := url.Values{}
	params.Set("grant_type", "client_credentials")
	params.Set("client_id", strings.TrimSpace(apiKey))
	params.Set("client_secret", strings.TrimSpace(secretKey))
	raw, err := g.postJSON(ctx, g.baseURL+"/oauth/2.0/token?"+params.Encode(), nil, map[string]any{})
	if err != nil {
		return "", err
	}
	var decoded struct {
		AccessToken string `json:"access_token"`
	}
	if err := decodeJSON(g.provider, raw, &decoded); err != nil {
		return "", err
	}
	if decoded.AccessToken == "" {
		return "", &domain.ProviderError{Provider: g.provider, Body: strings.TrimSpace(string(raw)), Cause: fmt.Errorf("token exchange returned no access_token")}
	}
	return decoded.AccessToken, nil
}

var _ Generator = (*BaiduGenerator)(nil)
