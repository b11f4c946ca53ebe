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

// entryRepository 实现 domain.EntryRepository 接口
type entryRepository struct {
	dao *Dao
}

// NewEntryRepository 创建 EntryRepository 实例
func NewEntryRepository(dao *Dao) domain.EntryRepository {
	return &entryRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *entryRepository) toDomain(m *model.Entry) *domain.Entry {
	if m == nil {
		return nil
	}
	return &domain.Entry{
		ID:           m.ID,
		CategoryID:   m.CategoryID,
		Kind:         domain.EntryKind(m.Kind),
		Title:        m.Title,
		SourceURL:    m.SourceURL,
		VideoID:      m.VideoID,
		ThumbnailURL: m.ThumbnailURL,
		Notes:        m.Notes,
		Order:        m.Order,
		CreatedAt:    time.Time(m.CreatedAt),
		UpdatedAt:    time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *entryRepository) toModel(e *domain.Entry) *model.Entry {
	if e == nil {
		return nil
	}
	return &model.Entry{
		ID:           e.ID,
		CategoryID:   e.CategoryID,
		Kind:         string(e.Kind),
		Title:        e.Title,
		SourceURL:    e.SourceURL,
		VideoID:      e.VideoID,
		ThumbnailURL: e.ThumbnailURL,
		Notes:        e.Notes,
		Order:        e.Order,
		CreatedAt:    timex.Time(e.CreatedAt),
		UpdatedAt:    timex.Time(e.UpdatedAt),
	}
}

// ListAll 获取全部条目
func (r *entryRepository) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	var ms []*model.Entry
	if err := r.dao.Db.WithContext(ctx).Order("category_id ASC, sort_order ASC, created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Entry, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// Upsert 按 ID 写入或更新条目
func (r *entryRepository) Upsert(ctx context.Context, entry *domain.Entry) error {
	m := r.toModel(entry)
	return r.dao.Db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(m).Error
}

// Delete 删除条目，不存在时静默成功
func (r *entryRepository) Delete(ctx context.Context, id string) error {
	err := r.dao.Db.WithContext(ctx).Where("id = ?", id).Delete(&model.Entry{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
