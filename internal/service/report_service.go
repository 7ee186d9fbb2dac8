package service

import (
	"context"
	"errors"

	"homepage-go/internal/api/dto"
	"homepage-go/internal/config"
	"homepage-go/internal/identity"
	"homepage-go/internal/model"
	"homepage-go/internal/ratelimit"
	"homepage-go/internal/repository"
	"homepage-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrReportDuplicate     = errors.New("您已经举报过该评论")
	ErrReportReasonInvalid = errors.New("举报原因无效")
	ErrTargetNotReportable = errors.New("回复不支持举报")
	ErrReportNotFound      = errors.New("举报记录不存在")
)

type ReportService struct {
	reports  reportStore
	comments commentStore
	audits   auditStore
	limiter  ratelimit.Limiter
	cfg      *config.CommentConfig
	notifier moderationNotifier
}

func NewReportService(reports reportStore, comments commentStore, audits auditStore, limiter ratelimit.Limiter, cfg *config.CommentConfig, notifier moderationNotifier) *ReportService {
	return &ReportService{
		reports:  reports,
		comments: comments,
		audits:   audits,
		limiter:  limiter,
		cfg:      cfg,
		notifier: notifier,
	}
}

// Submit 提交举报。同一举报人对同一评论只能举报一次，重复提交
// 按冲突拒绝且不改变计数。总举报数（忽略 resolved）达到阈值时
// 自动转为举报隐藏；该转换是单向的，之后处理举报不会自动恢复。
func (s *ReportService) Submit(ctx context.Context, actor identity.Actor, req *dto.ReportCreateRequest) (*dto.ReportCreateData, error) {
	if !model.ReportReasonValid(req.Reason) {
		return nil, ErrReportReasonInvalid
	}

	comment, err := s.comments.GetByID(req.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.IsReply() {
		return nil, ErrTargetNotReportable
	}
	if comment.IsDeleted() {
		return nil, ErrCommentNotFound
	}

	if err := s.allow(ctx, actor); err != nil {
		return nil, err
	}

	report := &model.Report{
		CommentID:    req.CommentID,
		ReporterType: actor.Type,
		ReporterKey:  actor.Key(),
		Reason:       req.Reason,
		Message:      req.Message,
	}

	total, err := s.reports.Submit(report)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateReport) {
			return nil, ErrReportDuplicate
		}
		return nil, err
	}

	autoHidden := false
	if total >= int64(s.cfg.ReportThreshold) {
		// 条件更新幂等：并发越过阈值时只有一次会真正置位
		transitioned, err := s.reports.MarkAutoHidden(req.CommentID)
		if err != nil {
			logger.Error("Failed to auto-hide reported comment",
				zap.Int64("comment_id", req.CommentID),
				zap.Int64("report_total", total),
				zap.Error(err),
			)
		} else if transitioned {
			autoHidden = true
			logger.Info("Comment auto-hidden by report threshold",
				zap.Int64("comment_id", req.CommentID),
				zap.Int64("report_total", total),
			)
			notify(s.notifier, ctx, "auto_hide", req.CommentID, 0, comment.PageKey)
		}
	}

	return &dto.ReportCreateData{ReportID: report.ID, AutoHidden: autoHidden}, nil
}

// Resolve 设置举报的处理标记。只是管理端分流，不影响评论可见性。
func (s *ReportService) Resolve(adminID, reportID int64, resolved bool) (string, error) {
	if err := s.reports.SetResolved(reportID, resolved); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrReportNotFound
		}
		return "", err
	}

	entry := &model.AuditLog{
		ActorUserID: adminID,
		Action:      model.AuditActionResolve,
		TargetType:  "report",
		TargetID:    reportID,
	}
	if err := s.audits.Create(entry); err != nil {
		logger.Error("Failed to write audit log for report resolve",
			zap.Int64("report_id", reportID),
			zap.Error(err),
		)
		return auditDegradedWarning, nil
	}
	return "", nil
}

// ListAdmin 管理端举报列表
func (s *ReportService) ListAdmin(filter repository.AdminReportFilter, page, pageSize int) (*dto.ReportListData, error) {
	filter.Skip = (page - 1) * pageSize
	filter.Limit = pageSize

	reports, total, err := s.reports.ListAdmin(filter)
	if err != nil {
		return nil, err
	}

	return &dto.ReportListData{
		Reports:  reports,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *ReportService) allow(ctx context.Context, actor identity.Actor) error {
	ok, _, err := s.limiter.Allow(ctx, ratelimit.KindReportSubmit, actor.Key(), s.cfg.RateLimit("report_submit", 3))
	if err != nil {
		logger.Warn("Rate limiter unavailable, allowing report", zap.Error(err))
		return nil
	}
	if !ok {
		return ErrRateLimited
	}
	return nil
}
