// Package advisor 封装外部文本生成服务的调用。
//
// 所有顾问（解释、解说、战术建议、对位分析、局面策略、伤病风险）在结构上
// 完全一致：构造结构化上下文 -> 调用文本生成接口 -> 凭据缺失或内部失败
// 一律表现为"缺席"（absent），从不向编排层抛错。因此调用模式只实现一次
// （Client.Generate），各顾问只是 prompt 与上下文形状的特化。
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint 是 OpenAI 兼容的 chat completions 接口。
const DefaultEndpoint = "https://api.openai.com/v1"

// DefaultModel 是默认的对话模型。
const DefaultModel = "gpt-4o-mini"

// Client 是文本顾问客户端。APIKey 为空时处于未配置状态：
// 所有调用直接返回缺席，不发起网络请求。
type Client struct {
	// Endpoint 服务根地址，如 "https://api.openai.com/v1"
	Endpoint string
	// APIKey 凭据；为空表示未配置
	APIKey string
	// Model 对话模型名称
	Model string
	// Temperature 采样温度
	Temperature float64
	// Timeout 请求超时
	Timeout time.Duration

	httpClient *http.Client
}

// Option 配置顾问客户端
type Option func(*Client)

// WithEndpoint 设置服务根地址（测试时指向 httptest 服务）
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.Endpoint = strings.TrimRight(endpoint, "/") }
}

// WithModel 设置对话模型
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.Model = model
		}
	}
}

// WithTemperature 设置采样温度
func WithTemperature(t float64) Option {
	return func(c *Client) { c.Temperature = t }
}

// WithTimeout 设置请求超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.Timeout = timeout
		if c.httpClient != nil {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient 设置自定义 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient 创建文本顾问客户端。apiKey 为空表示未配置（所有调用返回缺席）。
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		Endpoint:    DefaultEndpoint,
		APIKey:      apiKey,
		Model:       DefaultModel,
		Temperature: 0.2,
		Timeout:     30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

// Configured 判断凭据是否可用。
func (c *Client) Configured() bool {
	return c != nil && c.APIKey != ""
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate 调用文本生成接口：systemPrompt 为系统指令，payload 会序列化为
// JSON 作为用户消息。返回 (text, true) 或缺席 (空串, false)。
// 未配置、网络失败、响应异常都表现为缺席，错误不外传。
func (c *Client) Generate(ctx context.Context, systemPrompt string, payload any) (string, bool) {
	if !c.Configured() {
		return "", false
	}

	content, err := json.Marshal(payload)
	if err != nil {
		return "", false
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.Model,
		Temperature: c.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(content)},
		},
	})
	if err != nil {
		return "", false
	}

	url := fmt.Sprintf("%s/chat/completions", c.Endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false
	}
	if len(parsed.Choices) == 0 {
		return "", false
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", false
	}
	return text, true
}
