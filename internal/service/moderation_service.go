package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"homepage-go/internal/api/dto"
	"homepage-go/internal/model"
	"homepage-go/internal/repository"
	"homepage-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidModerationAction = errors.New("不支持的操作")

// 审计日志写入失败时附带的降级提示
const auditDegradedWarning = "审计日志写入失败，操作本身已生效"

// ModerationService 管理端控制面：手动隐藏/恢复/软删除/红心，
// 每个动作同步追加一条审计日志。审计失败不回滚主操作，
// 但要作为降级成功信号返回给管理员。
type ModerationService struct {
	comments commentStore
	audits   auditStore
	notifier moderationNotifier
}

func NewModerationService(comments commentStore, audits auditStore, notifier moderationNotifier) *ModerationService {
	return &ModerationService{
		comments: comments,
		audits:   audits,
		notifier: notifier,
	}
}

// Apply 执行管理端评论操作：hide / unhide / delete。
// unhide 不区分隐藏原因，一律清空（包括软删除——沿用既有行为，
// 不作为可逆删除功能对外承诺）。
func (s *ModerationService) Apply(ctx context.Context, adminID, commentID int64, action string) (*dto.ModerationResult, error) {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	var auditAction string
	switch action {
	case "hide":
		comment.Hide(model.HiddenReasonAdmin)
		auditAction = model.AuditActionHide
	case "unhide":
		comment.Unhide()
		auditAction = model.AuditActionUnhide
	case "delete":
		comment.Hide(model.HiddenReasonDeleted)
		auditAction = model.AuditActionDelete
	default:
		return nil, ErrInvalidModerationAction
	}

	if err := s.comments.UpdateModeration(comment); err != nil {
		return nil, err
	}

	warning := s.audit(adminID, auditAction, "comment", commentID, map[string]interface{}{
		"page_key": comment.PageKey,
	})
	notify(s.notifier, ctx, auditAction, commentID, adminID, comment.PageKey)

	info := dto.AdminCommentInfo{Comment: *comment, Visibility: comment.Visibility()}
	return &dto.ModerationResult{Comment: &info, Warning: warning}, nil
}

// ToggleHeart 切换管理员红心，操作者与时间要么一起写入要么一起清空
func (s *ModerationService) ToggleHeart(ctx context.Context, adminID, commentID int64) (*dto.ModerationResult, error) {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	var auditAction string
	if comment.AdminHeart {
		comment.ClearHeart()
		auditAction = model.AuditActionUnheart
	} else {
		comment.SetHeart(adminID, time.Now())
		auditAction = model.AuditActionHeart
	}

	if err := s.comments.UpdateModeration(comment); err != nil {
		return nil, err
	}

	warning := s.audit(adminID, auditAction, "comment", commentID, nil)
	notify(s.notifier, ctx, auditAction, commentID, adminID, comment.PageKey)

	info := dto.AdminCommentInfo{Comment: *comment, Visibility: comment.Visibility()}
	return &dto.ModerationResult{Comment: &info, Warning: warning}, nil
}

// ListAudit 审计日志列表
func (s *ModerationService) ListAudit(filter repository.AuditLogFilter, page, pageSize int) (*dto.AuditListData, error) {
	filter.Skip = (page - 1) * pageSize
	filter.Limit = pageSize

	entries, total, err := s.audits.List(filter)
	if err != nil {
		return nil, err
	}

	return &dto.AuditListData{
		Entries:  entries,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// PurgeAudit 按保留天数批量清理审计日志，这是日志唯一的删除路径
func (s *ModerationService) PurgeAudit(adminID int64, days int) (*dto.AuditPurgeData, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := s.audits.PurgeBefore(cutoff)
	if err != nil {
		return nil, err
	}

	warning := s.audit(adminID, model.AuditActionAuditPurge, "audit_log", 0, map[string]interface{}{
		"days":    days,
		"deleted": deleted,
	})

	return &dto.AuditPurgeData{Deleted: deleted, Warning: warning}, nil
}

// audit 追加审计日志，失败只记日志并返回降级提示
func (s *ModerationService) audit(adminID int64, action, targetType string, targetID int64, meta map[string]interface{}) string {
	entry := &model.AuditLog{
		ActorUserID: adminID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
	}
	if meta != nil {
		if raw, err := json.Marshal(meta); err == nil {
			entry.Meta = string(raw)
		}
	}

	if err := s.audits.Create(entry); err != nil {
		logger.Error("Failed to write audit log",
			zap.String("action", action),
			zap.String("target_type", targetType),
			zap.Int64("target_id", targetID),
			zap.Error(err),
		)
		return auditDegradedWarning
	}
	return ""
}
