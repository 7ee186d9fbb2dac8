package repository

import (
	"time"

	"homepage-go/internal/model"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create 追加一条审计日志
func (r *AuditRepository) Create(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}

// AuditLogFilter 审计日志筛选条件
type AuditLogFilter struct {
	Action     string
	TargetType string
	TargetID   int64
	Skip       int
	Limit      int
}

// List 审计日志列表，最新在前
func (r *AuditRepository) List(filter AuditLogFilter) ([]model.AuditLog, int64, error) {
	query := r.db.Model(&model.AuditLog{})

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	if filter.TargetID > 0 {
		query = query.Where("target_id = ?", filter.TargetID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.AuditLog
	err := query.Order("created_at DESC").
		Offset(filter.Skip).Limit(filter.Limit).Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// PurgeBefore 批量清理保留期之外的日志，返回删除条数。
// 这是审计日志唯一的删除路径。
func (r *AuditRepository) PurgeBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&model.AuditLog{})
	return result.RowsAffected, result.Error
}
