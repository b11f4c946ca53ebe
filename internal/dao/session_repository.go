package dao

import (
	"context"
	"errors"
	"time"

	"github.com/fitkeys/workout-sync-service/internal/domain"
	"github.com/fitkeys/workout-sync-service/internal/model"
	"github.com/fitkeys/workout-sync-service/pkg/timex"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sessionRepository 实现 domain.SessionRepository 接口
type sessionRepository struct {
	dao *Dao
}

// NewSessionRepository 创建 SessionRepository 实例
func NewSessionRepository(dao *Dao) domain.SessionRepository {
	return &sessionRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
// CategoryIDs 列损坏时按空集合处理，不让单行坏数据拖垮整张快照
func (r *sessionRepository) toDomain(m *model.WorkoutSession) *domain.WorkoutSession {
	if m == nil {
		return nil
	}
	var categoryIDs []string
	if m.CategoryIDs != "" {
		_ = sonic.UnmarshalString(m.CategoryIDs, &categoryIDs)
	}
	return &domain.WorkoutSession{
		ID:          m.ID,
		Date:        m.Date,
		Time:        m.Time,
		CategoryIDs: categoryIDs,
		Completed:   m.Completed == 1,
		Notes:       m.Notes,
		CreatedAt:   time.Time(m.CreatedAt),
		UpdatedAt:   time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *sessionRepository) toModel(s *domain.WorkoutSession) (*model.WorkoutSession, error) {
	if s == nil {
		return nil, nil
	}
	categoryIDs, err := sonic.MarshalString(s.CategoryIDs)
	if err != nil {
		return nil, err
	}
	completed := int64(0)
	if s.Completed {
		completed = 1
	}
	return &model.WorkoutSession{
		ID:          s.ID,
		Date:        s.Date,
		Time:        s.Time,
		CategoryIDs: categoryIDs,
		Completed:   completed,
		Notes:       s.Notes,
		CreatedAt:   timex.Time(s.CreatedAt),
		UpdatedAt:   timex.Time(s.UpdatedAt),
	}, nil
}

// ListAll 获取全部会话
func (r *sessionRepository) ListAll(ctx context.Context) ([]*domain.WorkoutSession, error) {
	var ms []*model.WorkoutSession
	if err := r.dao.Db.WithContext(ctx).Order("date ASC, created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.WorkoutSession, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

// Upsert 按 ID 写入或更新会话
func (r *sessionRepository) Upsert(ctx context.Context, session *domain.WorkoutSession) error {
	m, err := r.toModel(session)
	if err != nil {
		return err
	}
	return r.dao.Db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(m).Error
}

// Delete 删除会话，不存在时静默成功
func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	err := r.dao.Db.WithContext(ctx).Where("id = ?", id).Delete(&model.WorkoutSession{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
