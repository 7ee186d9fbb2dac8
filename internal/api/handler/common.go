package handler

import (
	"strconv"

	"homepage-go/internal/api/middleware"
	"homepage-go/internal/identity"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parseIDParam 解析路径中的 :id
func parseIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// parsePagination 解析分页参数
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// resolveActor 解析请求身份。fingerprint 来自请求体或查询参数，
// 兜底指纹从客户端 IP 派生。
func resolveActor(c *gin.Context, fingerprint string) identity.Actor {
	userID, authed := middleware.GetCurrentUserID(c)
	return identity.Resolve(userID, authed, fingerprint, c.ClientIP())
}
