package image

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sellerkit/internal/domain"
)

// HunyuanGenerator calls Tencent's Hunyuan painting API. The request carries
// a simplified TC3-style signature header: HMAC-SHA256 over the canonical
// action/timestamp/payload digest with the secret key. The shape matches the
// documented header contract but is not a full, verified implementation of
// the cloud signing protocol.
type HunyuanGenerator struct {
	backend
	baseURL string
	now     func() time.Time
}

func NewHunyuanGenerator(baseURL string, client *http.Client) *HunyuanGenerator {
	return &HunyuanGenerator{
		backend: backend{provider: ProviderTencentHunyuan, client: client},
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

func (g *HunyuanGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	payload := map[string]any{
		"Prompt":     req.Prompt.Localized(),
		"Resolution": sizeWithSep(req.Size, ":"),
	}
	timestamp := strconv.FormatInt(g.now().Unix(), 10)
	headers := map[string]string{
		"Authorization":  signHunyuan(req.Credentials["secret_id"], req.Credentials["secret_key"], timestamp, fmt.Sprint(payload)),
		"X-TC-Action":    "TextToImagePro",
		"X-TC-Version":   "2023-09-01",
		"X-TC-Region":    "ap-beijing",
		"X-TC-Timestamp": timestamp,
	}
	raw, err := g.postJSON(ctx, g.baseURL+"/", headers, payload)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Response struct {
			ResultImage string `json:"ResultImage"`
			Error       struct {
				Code    string `json:"Code"`
				Message string `json:"Message"`
			} `json:"Error"`
		} `json:"Response"`
	}
	if err := decodeJSON(g.provider, raw, &decoded); err != nil {
		return nil, err
	}
	if decoded.Response.Error.Code != "" {
		return nil, &domain.ProviderError{
			Provider: g.provider,
			Body:     strings.TrimSpace(string(raw)),
			Cause:    fmt.Errorf("%s: %s", decoded.Response.Error.Code, decoded.Response.Error.Message),
		}
	}
	if decoded.Response.ResultImage == "" {
		return nil, emptyEnvelope(g.provider, raw)
	}
	data, err := base64.StdEncoding.DecodeString(decoded.Response.ResultImage)
	if err != nil {
		return nil, &domain.ProviderError{Provider: g.provider, Cause: fmt.Errorf("decode result image: %w", err)}
	}
	res := &Result{Data: data, Format: "image/png"}
	fillDimensions(res)
	return res, nil
}

// signHunyuan produces the TC3-HMAC-SHA256 authorization header shape.
func signHunyuan(secretID, secretKey, timestamp, payload string) string {
	digest := sha256.Sum256([]byte(payload))
	toSign := strings.Join([]string{"TC3-HMAC-SHA256", timestamp, hex.EncodeToString(digest[:])}, "\n")
	mac := hmac.New(sha256.New, []byte("TC3"+strings.TrimSpace(secretKey)))
	mac.Write([]byte(toSign))
	signature := hex.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("TC3-HMAC-SHA256 Credential=%s/hunyuan/tc3_request, SignedHeaders=content-type;host, Signature=%s",
		strings.TrimSpace(secretID), signature)
}

var _ Generator = (*HunyuanGenerator)(nil)
