package service

import (
	"time"

	"homepage-go/internal/model"
	"homepage-go/internal/repository"
)

// 服务层依赖的存储接口，由 repository 包的具体类型实现。
// 收窄成接口是为了让领域逻辑可以脱离数据库测试。

type commentStore interface {
	Create(comment *model.Comment) error
	GetByID(id int64) (*model.Comment, error)
	UpdateBody(id int64, body string, hasLinks bool, editedAt time.Time) error
	UpdateModeration(comment *model.Comment) error
	ListVisibleByPage(pageKey string, skip, limit int, withTotal bool) ([]model.Comment, int64, error)
	ListVisibleReplies(parentID int64, skip, limit int) ([]model.Comment, int64, error)
	CountVisibleReplies(parentIDs []int64) (map[int64]int64, error)
	ListAdmin(filter repository.AdminCommentFilter) ([]model.Comment, int64, error)
}

type reactionStore interface {
	Toggle(targetID int64, reactionType, actorType, actorKey string) (string, error)
	CountsFor(targetIDs []int64) (map[int64]model.ReactionCounts, error)
	ActorReactionFor(targetIDs []int64, actorKey string) (map[int64]string, error)
}

type reportStore interface {
	Submit(report *model.Report) (int64, error)
	MarkAutoHidden(commentID int64) (bool, error)
	SetResolved(id int64, resolved bool) error
	ListAdmin(filter repository.AdminReportFilter) ([]model.Report, int64, error)
}

type auditStore interface {
	Create(entry *model.AuditLog) error
	List(filter repository.AuditLogFilter) ([]model.AuditLog, int64, error)
	PurgeBefore(cutoff time.Time) (int64, error)
}

type userStore interface {
	Create(user *model.User) error
	GetByID(id int64) (*model.User, error)
	GetByUserName(userName string) (*model.User, error)
	ExistsByUserName(userName string) (bool, error)
}
