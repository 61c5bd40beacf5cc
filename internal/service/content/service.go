// Package content 提供文章与项目的管理服务
package content

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eraywen/lumen-blog/internal/model"
	"github.com/eraywen/lumen-blog/internal/repository"
)

// Service 内容服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建内容服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// ListArticles 列出文章，非管理员只看到已发布的
func (s *Service) ListArticles(ctx context.Context, includeUnpublished bool) ([]*model.Article, error) {
	articles, err := s.repo.Article.GetArticles(ctx)
	if err != nil {
		return nil, err
	}
	if includeUnpublished {
		return articles, nil
	}
	published := make([]*model.Article, 0, len(articles))
	for _, a := range articles {
		if a.IsPublished {
			published = append(published, a)
		}
	}
	return published, nil
}

// GetArticle 获取单篇文章，未发布的文章对非管理员不可见
func (s *Service) GetArticle(ctx context.Context, id string, includeUnpublished bool) (*model.Article, error) {
	article, err := s.repo.Article.GetArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, nil
	}
	if !article.IsPublished && !includeUnpublished {
		return nil, nil
	}
	return article, nil
}

// SaveArticle 保存文章，新文章分配 id，已有文章按 id 覆盖可变字段
func (s *Service) SaveArticle(ctx context.Context, article *model.Article) error {
	now := time.Now()
	if article.ID == "" {
		article.ID = uuid.New().String()
		article.CreatedAt = now
	}
	article.UpdatedAt = now
	if article.Tags == nil {
		article.Tags = model.TagList{}
	}
	return s.repo.Article.SaveArticle(ctx, article)
}

// DeleteArticle 删除文章
func (s *Service) DeleteArticle(ctx context.Context, id string) error {
	return s.repo.Article.DeleteArticle(ctx, id)
}

// ListProjects 列出项目
func (s *Service) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return s.repo.Project.GetProjects(ctx)
}

// SaveProject 保存项目，图标字段按 iconType 归一化后落库
func (s *Service) SaveProject(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if err := normalizeIcon(project); err != nil {
		return err
	}
	return s.repo.Project.SaveProject(ctx, project)
}

// DeleteProject 删除项目
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return s.repo.Project.DeleteProject(ctx, id)
}

// normalizeIcon 保证有且仅有与 iconType 对应的图标表示被保留
func normalizeIcon(p *model.Project) error {
	switch p.IconType {
	case "", model.IconTypeAuto:
		p.IconType = model.IconTypeAuto
		p.PresetIcon = ""
		p.CustomSVG = ""
	case model.IconTypePreset:
		p.ImageBase64 = ""
		p.CustomSVG = ""
	case model.IconTypeGenerated:
		p.PresetIcon = ""
		p.ImageBase64 = ""
	default:
		return fmt.Errorf("unknown icon type: %s", p.IconType)
	}
	return nil
}
