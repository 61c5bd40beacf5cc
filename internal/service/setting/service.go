// Package setting 提供管理员可配置的系统默认值
package setting

import (
	"context"
	"fmt"

	"github.com/eraywen/lumen-blog/internal/model"
	"github.com/eraywen/lumen-blog/internal/repository"
	"github.com/eraywen/lumen-blog/internal/service/completion"
)

// 模型设置的兜底默认值
const (
	defaultGeneralModel = "deepseek-chat"
	defaultSVGModel     = "deepseek-reasoner" // 推理模型生成 SVG 代码效果更好
)

// Service 设置服务
type Service struct {
	repo *repository.SettingRepository
}

// NewService 创建设置服务
func NewService(repo *repository.SettingRepository) *Service {
	return &Service{repo: repo}
}

// GeneralModel 内容辅助（摘要/标签/图标推荐）使用的模型
// 存储值不在目录中时回退到默认值
func (s *Service) GeneralModel(ctx context.Context) string {
	v, _ := s.repo.GetSetting(ctx, model.SettingGeneralAIModel, defaultGeneralModel)
	if completion.IsKnown(v) {
		return v
	}
	return defaultGeneralModel
}

// SetGeneralModel 更新内容辅助模型
func (s *Service) SetGeneralModel(ctx context.Context, key string) error {
	if !completion.IsKnown(key) {
		return fmt.Errorf("%w: %s", completion.ErrUnknownModel, key)
	}
	return s.repo.SaveSetting(ctx, model.SettingGeneralAIModel, key)
}

// SVGModel SVG 生成使用的模型
func (s *Service) SVGModel(ctx context.Context) string {
	v, _ := s.repo.GetSetting(ctx, model.SettingSVGAIModel, defaultSVGModel)
	if completion.IsKnown(v) {
		return v
	}
	return defaultSVGModel
}

// SetSVGModel 更新 SVG 生成模型
func (s *Service) SetSVGModel(ctx context.Context, key string) error {
	if !completion.IsKnown(key) {
		return fmt.Errorf("%w: %s", completion.ErrUnknownModel, key)
	}
	return s.repo.SaveSetting(ctx, model.SettingSVGAIModel, key)
}
