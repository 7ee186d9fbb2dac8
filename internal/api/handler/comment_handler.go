package handler

import (
	"errors"
	"strconv"

	"homepage-go/internal/api/dto"
	"homepage-go/internal/api/middleware"
	"homepage-go/internal/api/response"
	"homepage-go/internal/service"
	"homepage-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create POST /api/v1/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	actor := resolveActor(c, req.Fingerprint)

	data, err := h.commentService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "发表评论成功", data)
}

// List GET /api/v1/comments?page_key=&page=&limit=&with_total=&fingerprint=
func (h *CommentHandler) List(c *gin.Context) {
	pageKey := c.Query("page_key")
	if pageKey == "" {
		response.BadRequest(c, "缺少 page_key 参数")
		return
	}

	page, pageSize := parsePagination(c)
	withTotal, _ := strconv.ParseBool(c.DefaultQuery("with_total", "false"))
	actor := resolveActor(c, c.Query("fingerprint"))

	data, err := h.commentService.List(actor, pageKey, page, pageSize, withTotal)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "获取评论列表成功", data)
}

// Edit PATCH /api/v1/comments/:id
func (h *CommentHandler) Edit(c *gin.Context) {
	commentID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	var req dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	actor := resolveActor(c, "")

	info, err := h.commentService.Edit(c.Request.Context(), commentID, actor, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "更新评论成功", info)
}

// CreateReply POST /api/v1/comments/:id/replies
func (h *CommentHandler) CreateReply(c *gin.Context) {
	parentID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	var req dto.ReplyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.CreateReply(c.Request.Context(), userID, parentID, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "发表回复成功", info)
}

// ListReplies GET /api/v1/comments/:id/replies
func (h *CommentHandler) ListReplies(c *gin.Context) {
	parentID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	page, pageSize := parsePagination(c)
	actor := resolveActor(c, c.Query("fingerprint"))

	data, err := h.commentService.ListReplies(actor, parentID, page, pageSize)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "获取回复列表成功", data)
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrParentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrRateLimited):
		response.TooManyRequests(c, err.Error())
	case errors.Is(err, service.ErrPageKeyInvalid),
		errors.Is(err, service.ErrGuestNameRequired),
		errors.Is(err, service.ErrGuestNameLength),
		errors.Is(err, service.ErrParentIsReply),
		errors.Is(err, service.ErrParentDeleted),
		errors.Is(err, service.ErrBodyInvalid),
		errors.Is(err, service.ErrTooManyLinks),
		errors.Is(err, service.ErrLinkScheme):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
