package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-app-api/internal/infrastructure/config"
	"recipe-app-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// TextGenerator 生成式語言模型的抽象，方便各服務在測試時替換
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, genCfg *GenerationConfig) (string, error)
	HasKey() bool
}

// GenerationConfig 生成參數，對應 Gemini generationConfig 欄位
type GenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	TopP             float64 `json:"topP,omitempty"`
	TopK             int     `json:"topK,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

// Client Gemini generateContent API 客戶端
type Client struct {
	config *config.GeminiConfig
	client *resty.Client
}

// request generateContent 請求體
type request struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// response generateContent 響應體
type response struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewClient 創建 Gemini 客戶端
func NewClient(cfg *config.GeminiConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// HasKey 檢查 API 金鑰是否已設定
func (c *Client) HasKey() bool {
	return c.config.APIKey != ""
}

// GenerateContent 發送 prompt 並取回第一個候選回應的文字
func (c *Client) GenerateContent(ctx context.Context, prompt string, genCfg *GenerationConfig) (string, error) {
	req := request{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: genCfg,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.config.APIKey).
		SetBody(req).
		Post(fmt.Sprintf("/models/%s:generateContent", c.config.Model))
	common.LogUpstreamCall("gemini", time.Since(start), err)

	if err != nil {
		return "", fmt.Errorf("failed to send request to Gemini: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("Gemini API returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", c.config.Model),
			zap.String("response", resp.String()),
		)
		return "", fmt.Errorf("Gemini API returned error (status %d): %s", resp.StatusCode(), resp.String())
	}

	// 解析回應
	var result response
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in Gemini response")
	}

	text := result.Candidates[0].Content.Parts[0].Text
	common.LogDebug("Gemini 回應內容",
		zap.String("model", c.config.Model),
		zap.Int("content_length", len(text)),
	)

	return text, nil
}
