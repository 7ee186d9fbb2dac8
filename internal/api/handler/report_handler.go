package handler

import (
	"errors"

	"homepage-go/internal/api/dto"
	"homepage-go/internal/api/response"
	"homepage-go/internal/service"
	"homepage-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create POST /api/v1/reports
func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.ReportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	actor := resolveActor(c, req.Fingerprint)

	data, err := h.reportService.Submit(c.Request.Context(), actor, &req)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.Created(c, "举报已提交", data)
}

func handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrReportNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrReportDuplicate):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrReportReasonInvalid),
		errors.Is(err, service.ErrTargetNotReportable):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrRateLimited):
		response.TooManyRequests(c, err.Error())
	default:
		logger.Error("Report operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
