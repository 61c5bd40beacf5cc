package model

// Setting 全局键值配置
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey;size:64"`
	Value string `json:"value" gorm:"type:text"`
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}

// 系统设置键
const (
	SettingGeneralAIModel = "general_ai_model" // 摘要/标签/图标推荐使用的模型
	SettingSVGAIModel     = "svg_ai_model"     // SVG 生成使用的模型
)
