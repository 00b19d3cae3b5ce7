// Package llm 封装了 OpenAI 兼容的对话补全接口（默认指向 Moonshot）。
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"netqa-go/internal/config"
	"netqa-go/pkg/log"
)

// ErrEmptyResponse 表示接口返回成功但没有可用内容。
var ErrEmptyResponse = errors.New("llm returned no content")

// Client 调用 OpenAI 兼容的 chat completion 接口。
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewClient 根据配置创建客户端。
func NewClient(cfg config.LLMConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
	}
}

// Complete 发送一条 system 消息和一条 user 消息，返回第一个候选回答。
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	log.Infow("LLM request completed",
		"model", c.model,
		"promptTokens", resp.Usage.PromptTokens,
		"completionTokens", resp.Usage.CompletionTokens,
		"elapsed", time.Since(start).String(),
	)
	return resp.Choices[0].Message.Content, nil
}
