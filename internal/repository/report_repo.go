package repository

import (
	"errors"

	"homepage-go/internal/model"

	"gorm.io/gorm"
)

// ErrDuplicateReport 同一举报人对同一评论重复举报
var ErrDuplicateReport = errors.New("duplicate report")

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Submit 提交举报并返回该评论的总举报数（含已处理的）。
// 去重检查、插入与计数在同一事务内完成；达到阈值时的自动隐藏
// 由服务层基于返回的计数调用 MarkAutoHidden 触发。
func (r *ReportRepository) Submit(report *model.Report) (int64, error) {
	var total int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.Report{}).
			Where("comment_id = ? AND reporter_key = ?", report.CommentID, report.ReporterKey).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateReport
		}

		if err := tx.Create(report).Error; err != nil {
			return err
		}

		// 总数忽略 resolved 状态
		return tx.Model(&model.Report{}).
			Where("comment_id = ?", report.CommentID).
			Count(&total).Error
	})

	return total, err
}

// MarkAutoHidden 达阈值时置为举报隐藏。条件更新保证幂等：
// 已隐藏的评论（无论何种原因）不会被改写。
func (r *ReportRepository) MarkAutoHidden(commentID int64) (bool, error) {
	result := r.db.Model(&model.Comment{}).
		Where("id = ? AND is_hidden = ?", commentID, false).
		Updates(map[string]interface{}{
			"is_hidden":     true,
			"hidden_reason": model.HiddenReasonReported,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetResolved 设置处理标记（只是管理端分流，不影响可见性）
func (r *ReportRepository) SetResolved(id int64, resolved bool) error {
	result := r.db.Model(&model.Report{}).
		Where("id = ?", id).
		Update("resolved", resolved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdminReportFilter 管理端举报筛选条件
type AdminReportFilter struct {
	CommentID int64
	Resolved  *bool
	Skip      int
	Limit     int
}

// ListAdmin 管理端举报列表
func (r *ReportRepository) ListAdmin(filter AdminReportFilter) ([]model.Report, int64, error) {
	query := r.db.Model(&model.Report{})

	if filter.CommentID > 0 {
		query = query.Where("comment_id = ?", filter.CommentID)
	}
	if filter.Resolved != nil {
		query = query.Where("resolved = ?", *filter.Resolved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []model.Report
	err := query.Order("created_at DESC").
		Offset(filter.Skip).Limit(filter.Limit).Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}
