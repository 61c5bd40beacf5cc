// Package completion 提供模型输出清洗的单元测试
package completion

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain json array",
			input: `["Go", "Web 开发"]`,
			want:  []string{"Go", "Web 开发"},
		},
		{
			name:  "wrapped in code fence",
			input: "```json\n[\"架构\", \"性能优化\"]\n```",
			want:  []string{"架构", "性能优化"},
		},
		{
			name:  "surrounded by prose",
			input: "好的，以下是推荐的标签：[\"数据库\", \"缓存\"]，希望对你有帮助。",
			want:  []string{"数据库", "缓存"},
		},
		{
			name:  "single quotes repaired",
			input: "['前端', '可视化']",
			want:  []string{"前端", "可视化"},
		},
		{
			name:  "trailing comma repaired",
			input: `["工具链", "CI",]`,
			want:  []string{"工具链", "CI"},
		},
		{
			name:  "non-string elements stringified",
			input: `[2024, "年度总结"]`,
			want:  []string{"2024", "年度总结"},
		},
		{
			name:  "not an array at all",
			input: "抱歉，我无法生成标签。",
			want:  []string{},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSONArray(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractJSONArray(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanIconName(t *testing.T) {
	allowed := []string{"Code", "Globe", "Database", "Rocket"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact match", "Code", "Code"},
		{"case insensitive", "globe", "Globe"},
		{"quoted", `"Database"`, "Database"},
		{"backticks and period", "`Rocket`.", "Rocket"},
		{"first word of a sentence", "Code 是最合适的选择", "Code"},
		{"trailing newline", "Globe\n", "Globe"},
		{"not in allowed set", "Star", ""},
		{"empty after cleaning", "```\n```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanIconName(tt.input, allowed); got != tt.want {
				t.Errorf("cleanIconName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractSVG(t *testing.T) {
	full := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><circle cx="12" cy="12" r="10"/></svg>`

	tests := []struct {
		name     string
		input    string
		want     string
		wantHull bool // 期待补上标准外壳
	}{
		{
			name:  "clean svg passes through",
			input: full,
			want:  full,
		},
		{
			name:  "code fence stripped",
			input: "```svg\n" + full + "\n```",
			want:  full,
		},
		{
			name:  "xml declaration and doctype stripped",
			input: `<?xml version="1.0"?><!DOCTYPE svg>` + full,
			want:  full,
		},
		{
			name:  "prose around the svg",
			input: "这是为你生成的图标：\n" + full + "\n希望你喜欢。",
			want:  full,
		},
		{
			name:     "bare path fragment gets a hull",
			input:    `<path d="M3 9l9-7 9 7v11a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2z"/>`,
			wantHull: true,
		},
		{
			name:  "unbalanced markup rejected",
			input: `<svg viewBox="0 0 24 24"><circle cx="12"`,
			want:  "",
		},
		{
			name:  "no drawable content",
			input: "抱歉，我只能输出文字。",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractSVG(tt.input)
			if tt.wantHull {
				if !strings.HasPrefix(got, "<svg") || !strings.HasSuffix(got, "</svg>") {
					t.Fatalf("expected hull-wrapped svg, got %q", got)
				}
				if !strings.Contains(got, "<path") {
					t.Errorf("hull lost the original fragment: %q", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("extractSVG() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	got := stripCodeFences("```json\n[1]\n```")
	if got != "[1]" {
		t.Errorf("stripCodeFences() = %q, want %q", got, "[1]")
	}
}
