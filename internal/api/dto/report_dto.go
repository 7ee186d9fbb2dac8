package dto

import "homepage-go/internal/model"

// ReportCreateRequest 举报请求
type ReportCreateRequest struct {
	CommentID   int64  `json:"comment_id" binding:"required"`
	Reason      string `json:"reason" binding:"required,oneof=spam abuse other"`
	Message     string `json:"message" binding:"omitempty,max=500"`
	Fingerprint string `json:"fingerprint"`
}

// ReportCreateData 举报结果
type ReportCreateData struct {
	ReportID   int64 `json:"report_id"`
	AutoHidden bool  `json:"auto_hidden"` // 本次举报是否触发了自动隐藏
}

// ReportResolveRequest 举报处理标记请求
type ReportResolveRequest struct {
	Resolved *bool `json:"resolved" binding:"required"`
}

// ReportListData 管理端举报列表
type ReportListData struct {
	Reports  []model.Report `json:"reports"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}
