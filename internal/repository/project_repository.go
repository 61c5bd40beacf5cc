package repository

import (
	"context"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eraywen/lumen-blog/internal/model"
)

// ProjectRepository 项目数据访问
type ProjectRepository struct {
	db    *gorm.DB
	cache collectionCache[[]*model.Project]
}

// NewProjectRepository 创建项目仓库
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// GetProjects 获取全部项目，按 id 倒序
// 读取失败降级为空列表且不计入缓存
func (r *ProjectRepository) GetProjects(ctx context.Context) ([]*model.Project, error) {
	if r.db == nil {
		return []*model.Project{}, nil
	}
	projects, err := r.cache.getOrLoad(func() ([]*model.Project, error) {
		var projects []*model.Project
		if err := r.db.WithContext(ctx).Order("id DESC").Find(&projects).Error; err != nil {
			return nil, err
		}
		return projects, nil
	})
	if err != nil {
		log.Printf("Error fetching projects: %v", err)
		return []*model.Project{}, nil
	}
	return projects, nil
}

// SaveProject 按主键 upsert 项目
func (r *ProjectRepository) SaveProject(ctx context.Context, project *model.Project) error {
	if r.db == nil {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "url", "icon_type", "preset_icon", "image_base64", "custom_svg"}),
	}).Create(project).Error
	if err != nil {
		log.Printf("Error saving project %s: %v", project.ID, err)
		return nil
	}
	r.cache.invalidate()
	return nil
}

// DeleteProject 删除项目
func (r *ProjectRepository) DeleteProject(ctx context.Context, id string) error {
	if r.db == nil {
		return nil
	}
	if err := r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id).Error; err != nil {
		log.Printf("Error deleting project %s: %v", id, err)
		return nil
	}
	r.cache.invalidate()
	return nil
}
