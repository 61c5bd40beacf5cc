package completion

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockProvider 可编程的测试提供商
type mockProvider struct {
	name       string
	configured bool

	completeReply string
	completeErr   error
	fragments     []string
	streamErr     error

	lastModel       string
	lastSystem      string
	lastTemperature float32
	lastHistory     []Message
	lastPrompt      string
}

func (m *mockProvider) Name() string     { return m.name }
func (m *mockProvider) Configured() bool { return m.configured }

func (m *mockProvider) StreamChat(ctx context.Context, modelName, system string, history []Message, temperature float32, onToken func(string)) error {
	m.lastModel = modelName
	m.lastSystem = system
	m.lastTemperature = temperature
	m.lastHistory = history
	for _, f := range m.fragments {
		onToken(f)
	}
	return m.streamErr
}

func (m *mockProvider) Complete(ctx context.Context, modelName, system, prompt string, temperature float32) (string, error) {
	m.lastModel = modelName
	m.lastSystem = system
	m.lastPrompt = prompt
	m.lastTemperature = temperature
	return m.completeReply, m.completeErr
}

func newTestService(gemini, deepseek *mockProvider) *Service {
	return NewServiceWithProviders(map[string]Provider{
		"gemini":   gemini,
		"deepseek": deepseek,
	})
}

func TestResolve(t *testing.T) {
	gemini := &mockProvider{name: "gemini", configured: true}
	deepseek := &mockProvider{name: "deepseek", configured: false}
	svc := newTestService(gemini, deepseek)

	t.Run("known model with configured provider", func(t *testing.T) {
		info, p, err := svc.Resolve("gemini-3-flash")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != Provider(gemini) {
			t.Error("resolved to wrong provider")
		}
		if info.Model == "" {
			t.Error("model info missing wire model name")
		}
	})

	t.Run("unknown model", func(t *testing.T) {
		_, _, err := svc.Resolve("gpt-99")
		if !errors.Is(err, ErrUnknownModel) {
			t.Errorf("expected ErrUnknownModel, got %v", err)
		}
	})

	t.Run("unconfigured provider", func(t *testing.T) {
		_, _, err := svc.Resolve("deepseek-chat")
		if !errors.Is(err, ErrProviderNotConfigured) {
			t.Errorf("expected ErrProviderNotConfigured, got %v", err)
		}
	})
}

func TestStreamReplyFragmentOrder(t *testing.T) {
	gemini := &mockProvider{name: "gemini", configured: true, fragments: []string{"你", "好", "！"}}
	svc := newTestService(gemini, &mockProvider{name: "deepseek"})

	var got []string
	err := svc.StreamReply(context.Background(), "system", []Message{{Role: "user", Content: "hi"}}, "gemini-3-flash", func(f string) {
		got = append(got, f)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(got, "") != "你好！" {
		t.Errorf("fragments out of order: %v", got)
	}
	if gemini.lastTemperature != 1.0 {
		t.Errorf("chat temperature = %v, want 1.0", gemini.lastTemperature)
	}
}

func TestSummarizeStreamTemperature(t *testing.T) {
	deepseek := &mockProvider{name: "deepseek", configured: true, fragments: []string{"摘要"}}
	svc := newTestService(&mockProvider{name: "gemini"}, deepseek)

	err := svc.SummarizeStream(context.Background(), "正文", "deepseek-chat", func(string) {})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deepseek.lastTemperature != 1.3 {
		t.Errorf("summary temperature = %v, want 1.3", deepseek.lastTemperature)
	}
	if deepseek.lastSystem == "" {
		t.Error("summary system instruction missing")
	}
}

func TestSuggestTags(t *testing.T) {
	t.Run("fenced output cleaned", func(t *testing.T) {
		deepseek := &mockProvider{name: "deepseek", configured: true, completeReply: "```json\n[\"Go\", \"缓存\"]\n```"}
		svc := newTestService(&mockProvider{name: "gemini"}, deepseek)

		tags, err := svc.SuggestTags(context.Background(), "标题", "正文", nil, "deepseek-chat")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tags) != 2 || tags[0] != "Go" || tags[1] != "缓存" {
			t.Errorf("tags = %v", tags)
		}
		if deepseek.lastTemperature != 0.7 {
			t.Errorf("tag temperature = %v, want 0.7", deepseek.lastTemperature)
		}
	})

	t.Run("transport error is a soft failure", func(t *testing.T) {
		deepseek := &mockProvider{name: "deepseek", configured: true, completeErr: errors.New("timeout")}
		svc := newTestService(&mockProvider{name: "gemini"}, deepseek)

		tags, err := svc.SuggestTags(context.Background(), "标题", "正文", nil, "deepseek-chat")
		if err != nil {
			t.Fatalf("transport error must not surface: %v", err)
		}
		if len(tags) != 0 {
			t.Errorf("expected empty tags, got %v", tags)
		}
	})

	t.Run("configuration error surfaces", func(t *testing.T) {
		svc := newTestService(&mockProvider{name: "gemini"}, &mockProvider{name: "deepseek"})
		_, err := svc.SuggestTags(context.Background(), "标题", "正文", nil, "deepseek-chat")
		if !errors.Is(err, ErrProviderNotConfigured) {
			t.Errorf("expected ErrProviderNotConfigured, got %v", err)
		}
	})
}

func TestRecommendIcon(t *testing.T) {
	available := []string{"Code", "Globe"}

	deepseek := &mockProvider{name: "deepseek", configured: true, completeReply: "`code`."}
	svc := newTestService(&mockProvider{name: "gemini"}, deepseek)

	icon, err := svc.RecommendIcon(context.Background(), "工具站", "在线工具集合", available, "deepseek-chat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if icon != "Code" {
		t.Errorf("icon = %q, want Code", icon)
	}
	if deepseek.lastTemperature != 0.1 {
		t.Errorf("icon temperature = %v, want 0.1", deepseek.lastTemperature)
	}
}

func TestGenerateIconArt(t *testing.T) {
	deepseek := &mockProvider{
		name:          "deepseek",
		configured:    true,
		completeReply: "```\n<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 24 24\"><rect x=\"3\" y=\"3\" width=\"18\" height=\"18\"/></svg>\n```",
	}
	svc := newTestService(&mockProvider{name: "gemini"}, deepseek)

	svg, err := svc.GenerateIconArt(context.Background(), "项目", "描述", "deepseek-reasoner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("svg not isolated: %q", svg)
	}
	if deepseek.lastTemperature != 0.7 {
		t.Errorf("svg temperature = %v, want 0.7", deepseek.lastTemperature)
	}
}

func TestCatalogue(t *testing.T) {
	models := Catalogue()
	if len(models) == 0 {
		t.Fatal("catalogue is empty")
	}

	var freeCount int
	for _, m := range models {
		if m.Free {
			freeCount++
		}
	}
	if freeCount == 0 {
		t.Error("catalogue has no free model for guests")
	}

	if _, ok := Lookup(DefaultFreeModel); !ok {
		t.Errorf("default free model %q not in catalogue", DefaultFreeModel)
	}

	// 返回的是副本，调用方改不动目录本身
	models[0].Key = "mutated"
	if fresh := Catalogue(); fresh[0].Key == "mutated" {
		t.Error("Catalogue returned shared backing array")
	}
}
