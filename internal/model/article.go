package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// TagList 有序标签列表，持久化为 JSON 文本
type TagList []string

// Value 实现 driver.Valuer 接口
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner 接口
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = TagList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		*t = TagList{}
		return nil
	}
	if len(b) == 0 {
		*t = TagList{}
		return nil
	}
	return json.Unmarshal(b, (*[]string)(t))
}

// Article 博客文章
type Article struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Title       string    `json:"title" gorm:"size:255"`
	Summary     string    `json:"summary" gorm:"type:text"`
	Content     string    `json:"content" gorm:"type:text"` // Markdown
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	IsPublished bool      `json:"is_published" gorm:"index;default:false"`
	Tags        TagList   `json:"tags" gorm:"type:text"`
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}
