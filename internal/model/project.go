package model

// IconType 项目图标类型
type IconType string

const (
	IconTypeAuto      IconType = "auto"      // 根据 URL 自动抓取
	IconTypePreset    IconType = "preset"    // 预设图标名
	IconTypeGenerated IconType = "generated" // AI 生成的 SVG
)

// Project 链接目录条目
// iconType 决定哪一个图标字段有效，其余字段留空
type Project struct {
	ID          string   `json:"id" gorm:"primaryKey;size:36"`
	Title       string   `json:"title" gorm:"size:255"`
	Description string   `json:"description" gorm:"type:text"`
	URL         string   `json:"url" gorm:"size:1024"`
	IconType    IconType `json:"icon_type" gorm:"size:20;default:auto"`
	PresetIcon  string   `json:"preset_icon,omitempty" gorm:"size:64"`
	ImageBase64 string   `json:"image_base64,omitempty" gorm:"type:text"`
	CustomSVG   string   `json:"custom_svg,omitempty" gorm:"type:text"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}
