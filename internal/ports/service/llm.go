package service

import "context"

// Completion параметры одного запроса к модели
type Completion struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// ILLMService генерация текста
type ILLMService interface {
	Complete(ctx context.Context, req Completion) (string, error)
}
