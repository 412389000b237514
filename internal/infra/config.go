package infra

import (
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	OutputDir        string
	UploadDir        string
	PublicBaseURL    string
	OpenAIBaseURL    string
	StabilityBaseURL string
	BaiduBaseURL     string
	TongyiBaseURL    string
	HunyuanBaseURL   string
	ZhipuBaseURL     string
	MinimaxBaseURL   string
	ReplicateBaseURL string
	HFBaseURL        string
	YituBaseURL      string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		OutputDir:        getEnv("OUTPUT_DIR", "./generated"),
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:    getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		StabilityBaseURL: getEnv("STABILITY_BASE_URL", "https://api.stability.ai"),
		BaiduBaseURL:     getEnv("BAIDU_BASE_URL", "https://aip.baidubce.com"),
		TongyiBaseURL:    getEnv("TONGYI_BASE_URL", "https://dashscope.aliyuncs.com/api/v1"),
		HunyuanBaseURL:   getEnv("HUNYUAN_BASE_URL", "https://hunyuan.tencentcloudapi.com"),
		ZhipuBaseURL:     getEnv("ZHIPU_BASE_URL", "https://open.bigmodel.cn/api/paas/v4"),
		MinimaxBaseURL:   getEnv("MINIMAX_BASE_URL", "https://api.minimax.chat/v1"),
		ReplicateBaseURL: getEnv("REPLICATE_BASE_URL", "https://api.replicate.com/v1"),
		HFBaseURL:        getEnv("HF_BASE_URL", "https://api-inference.huggingface.co"),
		YituBaseURL:      getEnv("YITU_BASE_URL", "https://api.yitutech.com"),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 360)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
