package model

import "time"

// 审计动作
const (
	AuditActionHide       = "hide"
	AuditActionUnhide     = "unhide"
	AuditActionDelete     = "delete"
	AuditActionHeart      = "heart"
	AuditActionUnheart    = "unheart"
	AuditActionResolve    = "resolve_report"
	AuditActionAuditPurge = "audit_purge"
)

// AuditLog 审计日志，只追加。除显式的保留期清理外不改不删。
type AuditLog struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:审计日志ID" json:"id"`
	ActorUserID int64     `gorm:"not null;index:idx_audit_actor;comment:操作管理员ID" json:"actor_user_id"`
	Action      string    `gorm:"size:32;not null;index:idx_audit_action;comment:动作" json:"action"`
	TargetType  string    `gorm:"size:32;not null;comment:目标类型" json:"target_type"`
	TargetID    int64     `gorm:"not null;index:idx_audit_target;comment:目标ID" json:"target_id"`
	Meta        string    `gorm:"type:text;comment:附加信息(JSON)" json:"meta"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_audit_created_at;comment:时间" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
