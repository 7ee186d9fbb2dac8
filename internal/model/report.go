package model

import "time"

// 举报原因
const (
	ReportReasonSpam  = "spam"
	ReportReasonAbuse = "abuse"
	ReportReasonOther = "other"
)

// ReportReasonValid 校验举报原因取值
func ReportReasonValid(r string) bool {
	return r == ReportReasonSpam || r == ReportReasonAbuse || r == ReportReasonOther
}

// Report 举报记录。同一举报人对同一评论只允许一条，重复提交拒绝而非合并。
// Resolved 只是管理端的处理标记，既不影响可见性，也不从自动隐藏计数中扣除。
type Report struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:举报ID" json:"id"`
	CommentID    int64     `gorm:"not null;uniqueIndex:uq_report_comment_reporter;index:idx_reports_comment_id;comment:被举报评论ID" json:"comment_id"`
	ReporterType string    `gorm:"size:16;not null;comment:举报人类型 user/guest" json:"reporter_type"`
	ReporterKey  string    `gorm:"size:128;not null;uniqueIndex:uq_report_comment_reporter;comment:举报人身份键" json:"-"`
	Reason       string    `gorm:"size:16;not null;comment:举报原因 spam/abuse/other" json:"reason"`
	Message      string    `gorm:"size:500;comment:补充说明" json:"message"`
	Resolved     bool      `gorm:"not null;default:false;index:idx_reports_resolved;comment:是否已处理" json:"resolved"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:举报时间" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}
