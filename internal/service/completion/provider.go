// Package completion 将两个可互换的文本生成后端封装为统一的流式接口
package completion

import (
	"context"
	"errors"
)

// Message 角色标注的对话消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider 文本生成提供商
// 新增提供商只需实现本接口并在模型目录中登记
type Provider interface {
	// Name 提供商标识
	Name() string
	// Configured 凭证是否就绪，未就绪时任何调用前即报错
	Configured() bool
	// StreamChat 流式生成，按到达顺序逐片段回调 onToken，流结束后返回
	StreamChat(ctx context.Context, modelName, system string, history []Message, temperature float32, onToken func(string)) error
	// Complete 一次性生成
	Complete(ctx context.Context, modelName, system, prompt string, temperature float32) (string, error)
}

var (
	// ErrUnknownModel 模型不在目录中
	ErrUnknownModel = errors.New("unknown model")
	// ErrProviderNotConfigured 所选提供商缺少凭证
	ErrProviderNotConfigured = errors.New("provider not configured")
)
