package repository

import (
	"time"

	"homepage-go/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateBody 更新正文与编辑时间（所有权校验在服务层完成）
func (r *CommentRepository) UpdateBody(id int64, body string, hasLinks bool, editedAt time.Time) error {
	result := r.db.Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"body":           body,
			"body_has_links": hasLinks,
			"edited_at":      editedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateModeration 持久化隐藏状态与红心字段（由模型方法变更后整组写入）
func (r *CommentRepository) UpdateModeration(comment *model.Comment) error {
	return r.db.Model(&model.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]interface{}{
			"is_hidden":      comment.IsHidden,
			"hidden_reason":  comment.HiddenReason,
			"admin_heart":    comment.AdminHeart,
			"admin_heart_by": comment.AdminHeartBy,
			"admin_heart_at": comment.AdminHeartAt,
		}).Error
}

// ListVisibleByPage 获取页面的可见顶层评论，最新在前
func (r *CommentRepository) ListVisibleByPage(pageKey string, skip, limit int, withTotal bool) ([]model.Comment, int64, error) {
	query := r.db.Model(&model.Comment{}).
		Where("page_key = ? AND parent_id IS NULL AND is_hidden = ?", pageKey, false)

	var total int64
	if withTotal {
		if err := query.Count(&total).Error; err != nil {
			return nil, 0, err
		}
	}

	var comments []model.Comment
	err := query.Order("created_at DESC").
		Offset(skip).Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// ListVisibleReplies 获取某条评论的可见回复，最早在前
func (r *CommentRepository) ListVisibleReplies(parentID int64, skip, limit int) ([]model.Comment, int64, error) {
	query := r.db.Model(&model.Comment{}).
		Where("parent_id = ? AND is_hidden = ?", parentID, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var replies []model.Comment
	err := query.Order("created_at ASC").
		Offset(skip).Limit(limit).Find(&replies).Error
	if err != nil {
		return nil, 0, err
	}

	return replies, total, nil
}

// CountVisibleReplies 批量统计可见回复数，所有请求的 ID 都出现在结果里
func (r *CommentRepository) CountVisibleReplies(parentIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(parentIDs))
	for _, id := range parentIDs {
		counts[id] = 0
	}
	if len(parentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ParentID int64
		Cnt      int64
	}
	var rows []row
	err := r.db.Model(&model.Comment{}).
		Select("parent_id, count(*) as cnt").
		Where("parent_id IN ? AND is_hidden = ?", parentIDs, false).
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ParentID] = row.Cnt
	}
	return counts, nil
}

// AdminCommentFilter 管理端评论筛选条件
type AdminCommentFilter struct {
	PageKey    string
	Visibility string // visible / admin_hidden / reported / deleted，空为不过滤
	AuthorType string
	Skip       int
	Limit      int
}

// ListAdmin 管理端全量查询，包含隐藏评论
func (r *CommentRepository) ListAdmin(filter AdminCommentFilter) ([]model.Comment, int64, error) {
	query := r.db.Model(&model.Comment{})

	if filter.PageKey != "" {
		query = query.Where("page_key = ?", filter.PageKey)
	}
	if filter.AuthorType != "" {
		query = query.Where("author_type = ?", filter.AuthorType)
	}
	switch filter.Visibility {
	case model.VisibilityVisible:
		query = query.Where("is_hidden = ?", false)
	case model.VisibilityAdminHidden:
		query = query.Where("hidden_reason = ?", model.HiddenReasonAdmin)
	case model.VisibilityReported:
		query = query.Where("hidden_reason = ?", model.HiddenReasonReported)
	case model.VisibilityDeleted:
		query = query.Where("hidden_reason = ?", model.HiddenReasonDeleted)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Order("created_at DESC").
		Offset(filter.Skip).Limit(filter.Limit).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
