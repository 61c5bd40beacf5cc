package repository

import (
	"context"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eraywen/lumen-blog/internal/model"
)

// SettingRepository 系统设置数据访问
// 首次读取后整表缓存，写入时立即更新缓存
type SettingRepository struct {
	db    *gorm.DB
	cache collectionCache[map[string]string]
}

// NewSettingRepository 创建设置仓库
func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting 读取设置，缺失或存储不可用时返回 defaultValue
// 读取失败不计入缓存，下一次读取重新加载
func (r *SettingRepository) GetSetting(ctx context.Context, key, defaultValue string) (string, error) {
	if r.db == nil {
		return defaultValue, nil
	}

	settings, err := r.cache.getOrLoad(func() (map[string]string, error) {
		var rows []*model.Setting
		if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
			return nil, err
		}
		m := make(map[string]string, len(rows))
		for _, row := range rows {
			m[row.Key] = row.Value
		}
		return m, nil
	})
	if err != nil {
		log.Printf("Error fetching settings: %v", err)
		return defaultValue, nil
	}

	if v, ok := settings[key]; ok && v != "" {
		return v, nil
	}
	return defaultValue, nil
}

// SaveSetting 按键 upsert 设置
func (r *SettingRepository) SaveSetting(ctx context.Context, key, value string) error {
	if r.db == nil {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&model.Setting{Key: key, Value: value}).Error
	if err != nil {
		log.Printf("Error saving setting %s: %v", key, err)
		return nil
	}
	r.cache.invalidate()
	return nil
}
