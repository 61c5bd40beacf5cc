package completion

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/eraywen/lumen-blog/internal/config"
)

// GeminiProvider Google Gemini 后端
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider 创建 Gemini 提供商
// 缺少 API Key 时返回未配置状态的提供商而非失败
func NewGeminiProvider(ctx context.Context, cfg *config.GeminiConfig) *GeminiProvider {
	if cfg.APIKey == "" {
		return &GeminiProvider{}
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		log.Printf("Warning: failed to create Gemini client: %v", err)
		return &GeminiProvider{}
	}
	return &GeminiProvider{client: client}
}

// Name 提供商标识
func (p *GeminiProvider) Name() string { return "gemini" }

// Configured 凭证是否就绪
func (p *GeminiProvider) Configured() bool { return p.client != nil }

// StreamChat 流式对话
func (p *GeminiProvider) StreamChat(ctx context.Context, modelName, system string, history []Message, temperature float32, onToken func(string)) error {
	if p.client == nil {
		return fmt.Errorf("%w: gemini", ErrProviderNotConfigured)
	}
	if len(history) == 0 {
		return fmt.Errorf("gemini: empty history")
	}

	gm := p.model(modelName, system, temperature)
	cs := gm.StartChat()
	cs.History = toGenaiHistory(history[:len(history)-1])

	last := history[len(history)-1]
	iter := cs.SendMessageStream(ctx, genai.Text(last.Content))
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("gemini stream failed: %w", err)
		}
		if text := candidateText(resp); text != "" {
			onToken(text)
		}
	}
	return nil
}

// Complete 一次性生成
func (p *GeminiProvider) Complete(ctx context.Context, modelName, system, prompt string, temperature float32) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("%w: gemini", ErrProviderNotConfigured)
	}

	gm := p.model(modelName, system, temperature)
	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	return candidateText(resp), nil
}

func (p *GeminiProvider) model(name, system string, temperature float32) *genai.GenerativeModel {
	gm := p.client.GenerativeModel(name)
	gm.SetTemperature(temperature)
	if system != "" {
		gm.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	return gm
}

// toGenaiHistory 将通用消息映射为 genai 对话历史
// assistant 在 Gemini 侧的角色名是 model，system 消息由 SystemInstruction 承载
func toGenaiHistory(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return contents
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}
