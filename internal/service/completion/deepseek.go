package completion

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/eraywen/lumen-blog/internal/config"
)

// DeepSeekProvider DeepSeek 后端（OpenAI 兼容接口）
type DeepSeekProvider struct {
	apiKey  string
	baseURL string
}

// NewDeepSeekProvider 创建 DeepSeek 提供商
func NewDeepSeekProvider(cfg *config.DeepSeekConfig) *DeepSeekProvider {
	return &DeepSeekProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
	}
}

// Name 提供商标识
func (p *DeepSeekProvider) Name() string { return "deepseek" }

// Configured 凭证是否就绪
func (p *DeepSeekProvider) Configured() bool { return p.apiKey != "" }

// StreamChat 流式对话
func (p *DeepSeekProvider) StreamChat(ctx context.Context, modelName, system string, history []Message, temperature float32, onToken func(string)) error {
	if !p.Configured() {
		return fmt.Errorf("%w: deepseek", ErrProviderNotConfigured)
	}

	cm, err := p.chatModel(ctx, modelName, temperature)
	if err != nil {
		return fmt.Errorf("failed to create deepseek model: %w", err)
	}

	sr, err := cm.Stream(ctx, toSchemaMessages(system, history))
	if err != nil {
		return fmt.Errorf("deepseek stream failed: %w", err)
	}
	defer sr.Close()

	for {
		chunk, err := sr.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("deepseek stream failed: %w", err)
		}
		if chunk.Content != "" {
			onToken(chunk.Content)
		}
	}
	return nil
}

// Complete 一次性生成
func (p *DeepSeekProvider) Complete(ctx context.Context, modelName, system, prompt string, temperature float32) (string, error) {
	if !p.Configured() {
		return "", fmt.Errorf("%w: deepseek", ErrProviderNotConfigured)
	}

	cm, err := p.chatModel(ctx, modelName, temperature)
	if err != nil {
		return "", fmt.Errorf("failed to create deepseek model: %w", err)
	}

	msg, err := cm.Generate(ctx, toSchemaMessages(system, []Message{{Role: "user", Content: prompt}}))
	if err != nil {
		return "", fmt.Errorf("deepseek request failed: %w", err)
	}
	return msg.Content, nil
}

// chatModel 按请求参数构造 eino ChatModel，温度是构造期参数
func (p *DeepSeekProvider) chatModel(ctx context.Context, modelName string, temperature float32) (einomodel.BaseChatModel, error) {
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      p.apiKey,
		BaseURL:     p.baseURL,
		Model:       modelName,
		Temperature: &temperature,
	})
}

func toSchemaMessages(system string, history []Message) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(history)+1)
	if system != "" {
		msgs = append(msgs, schema.SystemMessage(system))
	}
	for _, m := range history {
		switch m.Role {
		case "assistant":
			msgs = append(msgs, schema.AssistantMessage(m.Content, nil))
		case "system":
			msgs = append(msgs, schema.SystemMessage(m.Content))
		default:
			msgs = append(msgs, schema.UserMessage(m.Content))
		}
	}
	return msgs
}
