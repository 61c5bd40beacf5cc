package completion

import (
	"context"
	"fmt"
	"log"

	"github.com/eraywen/lumen-blog/internal/config"
)

// Service 生成服务，按模型键路由到对应提供商
type Service struct {
	providers map[string]Provider
}

// NewService 创建生成服务
func NewService(ctx context.Context, cfg *config.Config) *Service {
	return &Service{
		providers: map[string]Provider{
			"gemini":   NewGeminiProvider(ctx, &cfg.AI.Gemini),
			"deepseek": NewDeepSeekProvider(&cfg.AI.DeepSeek),
		},
	}
}

// NewServiceWithProviders 以自定义提供商创建生成服务，测试用
func NewServiceWithProviders(providers map[string]Provider) *Service {
	return &Service{providers: providers}
}

// Resolve 解析模型键，返回模型信息与就绪的提供商
func (s *Service) Resolve(modelKey string) (ModelInfo, Provider, error) {
	info, ok := Lookup(modelKey)
	if !ok {
		return ModelInfo{}, nil, fmt.Errorf("%w: %s", ErrUnknownModel, modelKey)
	}
	p, ok := s.providers[info.Provider]
	if !ok || !p.Configured() {
		return ModelInfo{}, nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, info.Provider)
	}
	return info, p, nil
}

// StreamReply 以完整对话历史发起流式回复
// onToken 严格按片段到达顺序回调；流结束或失败后才返回，不做内部重试
func (s *Service) StreamReply(ctx context.Context, system string, history []Message, modelKey string, onToken func(string)) error {
	info, p, err := s.Resolve(modelKey)
	if err != nil {
		return err
	}
	return p.StreamChat(ctx, info.Model, system, history, 1.0, onToken)
}

// SummarizeStream 流式生成文章摘要
func (s *Service) SummarizeStream(ctx context.Context, content, modelKey string, onToken func(string)) error {
	info, p, err := s.Resolve(modelKey)
	if err != nil {
		return err
	}
	history := []Message{{Role: "user", Content: content}}
	return p.StreamChat(ctx, info.Model, summarySystemInstruction, history, 1.3, onToken)
}

// SuggestTags 生成文章标签
// 输出格式错误按软失败处理返回空列表，只有配置类错误才返回 error
func (s *Service) SuggestTags(ctx context.Context, title, content string, existing []string, modelKey string) ([]string, error) {
	info, p, err := s.Resolve(modelKey)
	if err != nil {
		return nil, err
	}

	raw, err := p.Complete(ctx, info.Model, tagsSystemInstruction(existing), tagsUserPrompt(title, content), 0.7)
	if err != nil {
		log.Printf("AI tag generation failed: %v", err)
		return []string{}, nil
	}
	return extractJSONArray(raw), nil
}

// RecommendIcon 从给定图标集合中推荐一个图标名
// 清洗后不在集合中的结果返回空串
func (s *Service) RecommendIcon(ctx context.Context, title, description string, available []string, modelKey string) (string, error) {
	info, p, err := s.Resolve(modelKey)
	if err != nil {
		return "", err
	}

	raw, err := p.Complete(ctx, info.Model, iconSystemInstruction(available), iconUserPrompt(title, description), 0.1)
	if err != nil {
		log.Printf("Icon recommendation failed: %v", err)
		return "", nil
	}
	return cleanIconName(raw, available), nil
}

// GenerateIconArt 生成 SVG 图标代码
// 无法分离出格式正确的 SVG 时返回空串
func (s *Service) GenerateIconArt(ctx context.Context, title, description, modelKey string) (string, error) {
	info, p, err := s.Resolve(modelKey)
	if err != nil {
		return "", err
	}

	raw, err := p.Complete(ctx, info.Model, svgSystemInstruction, svgUserPrompt(title, description), 0.7)
	if err != nil {
		log.Printf("SVG generation failed: %v", err)
		return "", nil
	}
	return extractSVG(raw), nil
}
