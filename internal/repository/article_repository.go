package repository

import (
	"context"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eraywen/lumen-blog/internal/model"
)

// ArticleRepository 文章数据访问
// 存储未配置或不可达时读返回空、写静默跳过，保证前台可继续浏览
type ArticleRepository struct {
	db    *gorm.DB
	cache collectionCache[[]*model.Article]
}

// NewArticleRepository 创建文章仓库
func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// GetArticles 获取全部文章，按创建时间倒序
// 读取失败降级为空列表且不计入缓存，存储恢复后下一次读取即重新加载
func (r *ArticleRepository) GetArticles(ctx context.Context) ([]*model.Article, error) {
	if r.db == nil {
		return []*model.Article{}, nil
	}
	articles, err := r.cache.getOrLoad(func() ([]*model.Article, error) {
		var articles []*model.Article
		if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&articles).Error; err != nil {
			return nil, err
		}
		return articles, nil
	})
	if err != nil {
		log.Printf("Error fetching articles: %v", err)
		return []*model.Article{}, nil
	}
	return articles, nil
}

// GetArticleByID 获取单篇文章，未找到返回 nil
func (r *ArticleRepository) GetArticleByID(ctx context.Context, id string) (*model.Article, error) {
	if r.db == nil {
		return nil, nil
	}

	// 缓存命中时避免单行查询
	if cached, ok := r.cache.peek(); ok {
		for _, a := range cached {
			if a.ID == id {
				return a, nil
			}
		}
	}

	var article model.Article
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("Error fetching article %s: %v", id, err)
		}
		return nil, nil
	}
	return &article, nil
}

// SaveArticle 按主键 upsert 文章
func (r *ArticleRepository) SaveArticle(ctx context.Context, article *model.Article) error {
	if r.db == nil {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "summary", "content", "updated_at", "is_published", "tags"}),
	}).Create(article).Error
	if err != nil {
		log.Printf("Error saving article %s: %v", article.ID, err)
		return nil
	}
	r.cache.invalidate()
	return nil
}

// DeleteArticle 删除文章
func (r *ArticleRepository) DeleteArticle(ctx context.Context, id string) error {
	if r.db == nil {
		return nil
	}
	if err := r.db.WithContext(ctx).Delete(&model.Article{}, "id = ?", id).Error; err != nil {
		log.Printf("Error deleting article %s: %v", id, err)
		return nil
	}
	r.cache.invalidate()
	return nil
}

// InvalidateCache 使文章缓存失效
func (r *ArticleRepository) InvalidateCache() {
	r.cache.invalidate()
}
