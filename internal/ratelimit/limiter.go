package ratelimit

import (
	"context"
	"time"
)

// 动作类别，限流计数按 kind:actorKey 维度隔离
const (
	KindCommentCreate  = "comment_create"
	KindReactionToggle = "reaction_toggle"
	KindReportSubmit   = "report_submit"
)

// Window 固定窗口长度
const Window = 60 * time.Second

// Limiter 限流服务接口。默认实现是进程内的固定窗口计数器，
// 多进程部署可切换到 Redis 实现，调用方无需改动。
type Limiter interface {
	// Allow 判断 kind:actorKey 在当前窗口内是否还允许一次操作。
	// 返回是否放行与窗口内剩余额度。
	Allow(ctx context.Context, kind, actorKey string, limit int) (ok bool, remaining int, err error)
}
