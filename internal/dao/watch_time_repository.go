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

// watchTimeRepository 实现 domain.WatchTimeRepository 接口
// 整个映射序列化为 JSON 存在固定主键的单行里
type watchTimeRepository struct {
	dao *Dao
}

// NewWatchTimeRepository 创建 WatchTimeRepository 实例
func NewWatchTimeRepository(dao *Dao) domain.WatchTimeRepository {
	return &watchTimeRepository{dao: dao}
}

// Load 读取整个映射，文档不存在时返回空映射
func (r *watchTimeRepository) Load(ctx context.Context) (domain.WatchTimeMap, error) {
	var m model.WatchTimeDoc
	err := r.dao.Db.WithContext(ctx).Where("id = ?", model.WatchTimeDocID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.WatchTimeMap{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := domain.WatchTimeMap{}
	if m.Data != "" {
		if err := sonic.UnmarshalString(m.Data, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Save 原子替换整个映射
func (r *watchTimeRepository) Save(ctx context.Context, wt domain.WatchTimeMap) error {
	data, err := sonic.MarshalString(wt)
	if err != nil {
		return err
	}
	m := &model.WatchTimeDoc{
		ID:        model.WatchTimeDocID,
		Data:      data,
		UpdatedAt: timex.Time(time.Now()),
	}
	return r.dao.Db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(m).Error
}
