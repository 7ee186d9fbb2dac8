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

type ReactionHandler struct {
	reactionService *service.ReactionService
}

func NewReactionHandler(reactionService *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// Toggle POST /api/v1/comments/:id/reaction
func (h *ReactionHandler) Toggle(c *gin.Context) {
	targetID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	actor := resolveActor(c, req.Fingerprint)

	data, err := h.reactionService.Toggle(c.Request.Context(), targetID, actor, &req)
	if err != nil {
		handleReactionError(c, err)
		return
	}

	response.OK(c, "操作成功", data)
}

func handleReactionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrReactionTypeInvalid):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrRateLimited):
		response.TooManyRequests(c, err.Error())
	default:
		logger.Error("Reaction toggle failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
