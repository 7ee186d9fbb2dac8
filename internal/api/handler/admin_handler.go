package handler

import (
	"errors"
	"strconv"

	"homepage-go/internal/api/dto"
	"homepage-go/internal/api/middleware"
	"homepage-go/internal/api/response"
	"homepage-go/internal/repository"
	"homepage-go/internal/service"
	"homepage-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 审计日志默认保留天数
const defaultAuditRetentionDays = 90

type AdminHandler struct {
	commentService    *service.CommentService
	reportService     *service.ReportService
	moderationService *service.ModerationService
}

func NewAdminHandler(
	commentService *service.CommentService,
	reportService *service.ReportService,
	moderationService *service.ModerationService,
) *AdminHandler {
	return &AdminHandler{
		commentService:    commentService,
		reportService:     reportService,
		moderationService: moderationService,
	}
}

// ListComments GET /api/v1/admin/comments
func (h *AdminHandler) ListComments(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.AdminCommentFilter{
		PageKey:    c.Query("page_key"),
		Visibility: c.Query("visibility"),
		AuthorType: c.Query("author_type"),
	}

	data, err := h.commentService.ListAdmin(filter, page, pageSize)
	if err != nil {
		logger.Error("Failed to list comments for admin", zap.Error(err))
		response.InternalError(c, "获取评论列表失败")
		return
	}

	response.OK(c, "获取评论列表成功", data)
}

// Moderate PATCH /api/v1/admin/comments/:id
func (h *AdminHandler) Moderate(c *gin.Context) {
	commentID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	var req dto.ModerationActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	adminID, _ := middleware.GetCurrentUserID(c)

	result, err := h.moderationService.Apply(c.Request.Context(), adminID, commentID, req.Action)
	if err != nil {
		handleModerationError(c, err)
		return
	}

	response.OK(c, "操作成功", result)
}

// ToggleHeart POST /api/v1/admin/comments/:id/heart
func (h *AdminHandler) ToggleHeart(c *gin.Context) {
	commentID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	adminID, _ := middleware.GetCurrentUserID(c)

	result, err := h.moderationService.ToggleHeart(c.Request.Context(), adminID, commentID)
	if err != nil {
		handleModerationError(c, err)
		return
	}

	response.OK(c, "操作成功", result)
}

// ListReports GET /api/v1/admin/reports
func (h *AdminHandler) ListReports(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.AdminReportFilter{}
	if raw := c.Query("comment_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "无效的评论ID")
			return
		}
		filter.CommentID = id
	}
	if raw := c.Query("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "无效的 resolved 参数")
			return
		}
		filter.Resolved = &resolved
	}

	data, err := h.reportService.ListAdmin(filter, page, pageSize)
	if err != nil {
		logger.Error("Failed to list reports for admin", zap.Error(err))
		response.InternalError(c, "获取举报列表失败")
		return
	}

	response.OK(c, "获取举报列表成功", data)
}

// ResolveReport PATCH /api/v1/admin/reports/:id
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	reportID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的举报ID")
		return
	}

	var req dto.ReportResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	adminID, _ := middleware.GetCurrentUserID(c)

	warning, err := h.reportService.Resolve(adminID, reportID, *req.Resolved)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.OK(c, "操作成功", gin.H{"warning": warning})
}

// ListAudit GET /api/v1/admin/audit
func (h *AdminHandler) ListAudit(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.AuditLogFilter{
		Action:     c.Query("action"),
		TargetType: c.Query("target_type"),
	}
	if raw := c.Query("target_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "无效的 target_id 参数")
			return
		}
		filter.TargetID = id
	}

	data, err := h.moderationService.ListAudit(filter, page, pageSize)
	if err != nil {
		logger.Error("Failed to list audit log", zap.Error(err))
		response.InternalError(c, "获取审计日志失败")
		return
	}

	response.OK(c, "获取审计日志成功", data)
}

// PurgeAudit DELETE /api/v1/admin/audit?days=90
func (h *AdminHandler) PurgeAudit(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(defaultAuditRetentionDays)))
	if err != nil || days < 1 {
		response.BadRequest(c, "无效的 days 参数")
		return
	}

	adminID, _ := middleware.GetCurrentUserID(c)

	data, err := h.moderationService.PurgeAudit(adminID, days)
	if err != nil {
		logger.Error("Failed to purge audit log", zap.Error(err))
		response.InternalError(c, "清理审计日志失败")
		return
	}

	response.OK(c, "清理完成", data)
}

func handleModerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidModerationAction):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Moderation operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
