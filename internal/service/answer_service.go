package service

import (
	"context"
	"time"

	"netqa-go/internal/config"
	"netqa-go/pkg/log"
)

// AnswerSource 标记回答来自模型还是兜底模板。
type AnswerSource string

const (
	AnswerGenerated AnswerSource = "generated"
	AnswerFallback  AnswerSource = "fallback"

	GeneratedConfidence = 0.95
	FallbackConfidence  = 0.80
)

// Answer 是回答提供者的结果，Source 区分两种来源。
type Answer struct {
	Text       string
	Confidence float64
	Source     AnswerSource
}

// Completer 是对话补全接口，由 pkg/llm.Client 实现。
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// AnswerProvider 为问题生成回答，永远不会失败。
type AnswerProvider interface {
	Answer(ctx context.Context, question string) Answer
}

type answerService struct {
	completer    Completer
	systemPrompt string
	timeout      time.Duration
}

// NewAnswerService 创建回答提供者。completer 为 nil 时总是使用兜底模板。
func NewAnswerService(completer Completer, cfg config.LLMConfig) AnswerProvider {
	prompt := cfg.SystemPrompt
	if prompt == "" {
		prompt = config.DefaultSystemPrompt
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &answerService{completer: completer, systemPrompt: prompt, timeout: timeout}
}

func (s *answerService) Answer(ctx context.Context, question string) Answer {
	if s.completer == nil {
		return fallback(question)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.completer.Complete(callCtx, s.systemPrompt, question)
	if err != nil {
		log.Warnw("[AnswerService] provider failed, using fallback", "error", err)
		return fallback(question)
	}
	return Answer{Text: text, Confidence: GeneratedConfidence, Source: AnswerGenerated}
}

func fallback(question string) Answer {
	return Answer{Text: FallbackAnswer(question), Confidence: FallbackConfidence, Source: AnswerFallback}
}
