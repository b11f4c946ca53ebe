package dao

import (
	"context"
	"errors"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/internal/model"
	"github.com/fitkeys/workout-sync-service/pkg/timex"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// categoryRepository 实现 domain.CategoryRepository 接口
type categoryRepository struct {
	dao *Dao
}

// NewCategoryRepository 创建 CategoryRepository 实例
func NewCategoryRepository(dao *Dao) domain.CategoryRepository {
	return &categoryRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *categoryRepository) toDomain(m *model.Category) *domain.Category {
	if m == nil {
		return nil
	}
	return &domain.Category{
		ID:        m.ID,
		Name:      m.Name,
		Order:     m.Order,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *categoryRepository) toModel(c *domain.Category) *model.Category {
	if c == nil {
		return nil
	}
	return &model.Category{
		ID:        c.ID,
		Name:      c.Name,
		Order:     c.Order,
		CreatedAt: timex.Time(c.CreatedAt),
		UpdatedAt: timex.Time(c.UpdatedAt),
	}
}

// ListAll 获取全部分类
func (r *categoryRepository) ListAll(ctx context.Context) ([]*domain.Category, error) {
	var ms []*model.Category
	if err := r.dao.Db.WithContext(ctx).Order("sort_order ASC, created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Category, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// Upsert 按 ID 写入或更新分类
func (r *categoryRepository) Upsert(ctx context.Context, category *domain.Category) error {
	m := r.toModel(category)
	return r.dao.Db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(m).Error
}

// Delete 删除分类，不存在时静默成功
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	err := r.dao.Db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
