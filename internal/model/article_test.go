// Package model 提供数据模型单元测试
package model

import (
	"reflect"
	"testing"
)

func TestTagListValue(t *testing.T) {
	tests := []struct {
		name string
		tags TagList
		want string
	}{
		{"nil list", nil, "[]"},
		{"empty list", TagList{}, "[]"},
		{"ordered tags", TagList{"Go", "缓存", "Web"}, `["Go","缓存","Web"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.tags.Value()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v != tt.want {
				t.Errorf("Value() = %v, want %v", v, tt.want)
			}
		})
	}
}

func TestTagListScan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  TagList
	}{
		{"nil value", nil, TagList{}},
		{"empty bytes", []byte(""), TagList{}},
		{"bytes preserve order", []byte(`["b","a","c"]`), TagList{"b", "a", "c"}},
		{"string input", `["单个"]`, TagList{"单个"}},
		{"unsupported type", 42, TagList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tags TagList
			if err := tags.Scan(tt.value); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(tags, tt.want) {
				t.Errorf("Scan(%v) = %v, want %v", tt.value, tags, tt.want)
			}
		})
	}
}
