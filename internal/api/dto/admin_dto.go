package dto

import "homepage-go/internal/model"

// ModerationActionRequest 管理端评论操作请求
type ModerationActionRequest struct {
	Action string `json:"action" binding:"required,oneof=hide unhide delete"`
}

// AdminCommentInfo 管理端评论视图，附带推导的可见性状态
type AdminCommentInfo struct {
	model.Comment
	Visibility   string `json:"visibility"`
	GoodCount    int64  `json:"good_count"`
	NotGoodCount int64  `json:"not_good_count"`
	ReplyCount   int64  `json:"reply_count"`
}

// AdminCommentListData 管理端评论列表
type AdminCommentListData struct {
	Comments []AdminCommentInfo `json:"comments"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// ModerationResult 管理端操作结果。审计日志写入失败不回滚主操作，
// 以 Warning 形式提示调用方降级成功。
type ModerationResult struct {
	Comment *AdminCommentInfo `json:"comment,omitempty"`
	Warning string            `json:"warning,omitempty"`
}

// AuditListData 审计日志列表
type AuditListData struct {
	Entries  []model.AuditLog `json:"entries"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// AuditPurgeData 审计日志清理结果
type AuditPurgeData struct {
	Deleted int64  `json:"deleted"`
	Warning string `json:"warning,omitempty"`
}
