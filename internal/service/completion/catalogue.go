package completion

// ModelInfo 目录中的一个模型
// Free 标记供上层按认证状态过滤可选集合，目录本身不关心认证
type ModelInfo struct {
	Key       string `json:"key"`        // 按提供商命名空间化的选择键
	Name      string `json:"name"`       // 展示名
	ShortName string `json:"short_name"` // 选择器里的短名
	Provider  string `json:"provider"`   // gemini / deepseek
	Model     string `json:"-"`          // 上游模型标识
	Free      bool   `json:"free"`
}

// DefaultFreeModel 访客默认偏好的免费模型
const DefaultFreeModel = "gemini-3-flash"

var catalogue = []ModelInfo{
	{Key: "gemini-3-flash", Name: "Gemini 3 Flash", ShortName: "Gemini Flash", Provider: "gemini", Model: "gemini-3-flash-preview", Free: true},
	{Key: "gemini-3-pro", Name: "Gemini 3 Pro", ShortName: "Gemini Pro", Provider: "gemini", Model: "gemini-3-pro-preview"},
	{Key: "deepseek-chat", Name: "DeepSeek V3", ShortName: "DeepSeek", Provider: "deepseek", Model: "deepseek-chat"},
	{Key: "deepseek-reasoner", Name: "DeepSeek R1", ShortName: "DeepSeek R1", Provider: "deepseek", Model: "deepseek-reasoner"},
}

// Catalogue 返回完整模型目录（副本，顺序稳定）
func Catalogue() []ModelInfo {
	out := make([]ModelInfo, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup 按键查找模型
func Lookup(key string) (ModelInfo, bool) {
	for _, m := range catalogue {
		if m.Key == key {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// IsKnown 模型键是否在目录中
func IsKnown(key string) bool {
	_, ok := Lookup(key)
	return ok
}
