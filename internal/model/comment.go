package model

import "time"

// 作者类型
const (
	AuthorTypeUser  = "user"
	AuthorTypeGuest = "guest"
)

// 隐藏原因。不变量：IsHidden == (HiddenReason != nil)，
// 只通过 Hide/Unhide 方法变更，避免出现非法组合。
const (
	HiddenReasonAdmin    = "admin"    // 管理员手动隐藏
	HiddenReasonReported = "reported" // 举报数达阈值自动隐藏
	HiddenReasonDeleted  = "deleted"  // 软删除，正文保留不再展示
)

// 管理端可见性筛选状态，由 (IsHidden, HiddenReason) 推导
const (
	VisibilityVisible     = "visible"
	VisibilityAdminHidden = "admin_hidden"
	VisibilityReported    = "reported"
	VisibilityDeleted     = "deleted"
)

// Comment 评论模型。一级回复与评论同表存储：ParentID 为空是评论，
// 非空是回复。回复必须挂在顶层评论上（只允许一层嵌套），且作者必须登录。
type Comment struct {
	ID       int64  `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	PageKey  string `gorm:"size:64;not null;index:idx_comments_page_key;index:idx_composite_page_created,priority:1;comment:所属页面标识" json:"page_key"`
	ParentID *int64 `gorm:"index:idx_comments_parent_id;comment:父评论ID" json:"parent_id"`

	AuthorType   string  `gorm:"size:16;not null;comment:作者类型 user/guest" json:"author_type"`
	AuthorUserID *int64  `gorm:"index:idx_comments_author_user_id;comment:作者用户ID" json:"author_user_id"`
	GuestName    *string `gorm:"size:20;comment:游客昵称" json:"guest_name"`
	AuthorName   string  `gorm:"size:255;not null;comment:发布时的展示名快照" json:"author_name"`
	AuthorAvatar *string `gorm:"size:500;comment:发布时的头像快照" json:"author_avatar"`

	Body         string `gorm:"type:text;not null;comment:评论正文" json:"body"`
	BodyHasLinks bool   `gorm:"not null;default:false;comment:正文是否含链接" json:"body_has_links"`

	IsHidden     bool    `gorm:"not null;default:false;index:idx_comments_is_hidden;comment:是否隐藏" json:"is_hidden"`
	HiddenReason *string `gorm:"size:16;comment:隐藏原因 admin/reported/deleted" json:"hidden_reason"`

	AdminHeart   bool       `gorm:"not null;default:false;comment:管理员红心" json:"admin_heart"`
	AdminHeartBy *int64     `gorm:"comment:红心操作者" json:"admin_heart_by"`
	AdminHeartAt *time.Time `gorm:"comment:红心时间" json:"admin_heart_at"`

	EditTokenHash *string `gorm:"size:64;comment:游客编辑令牌哈希" json:"-"`

	CreatedAt time.Time  `gorm:"autoCreateTime;index:idx_comments_created_at;index:idx_composite_page_created,priority:2;comment:发布时间" json:"created_at"`
	EditedAt  *time.Time `gorm:"comment:最后编辑时间" json:"edited_at"`

	// 关联关系
	Parent  *Comment  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsReply 是否为回复
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// IsDeleted 是否已软删除
func (c *Comment) IsDeleted() bool {
	return c.HiddenReason != nil && *c.HiddenReason == HiddenReasonDeleted
}

// Hide 以指定原因隐藏，保持 IsHidden 与 HiddenReason 同步
func (c *Comment) Hide(reason string) {
	r := reason
	c.IsHidden = true
	c.HiddenReason = &r
}

// Unhide 取消隐藏，两个字段一并清空
func (c *Comment) Unhide() {
	c.IsHidden = false
	c.HiddenReason = nil
}

// SetHeart 设置管理员红心，三个字段一并写入
func (c *Comment) SetHeart(adminID int64, at time.Time) {
	c.AdminHeart = true
	c.AdminHeartBy = &adminID
	c.AdminHeartAt = &at
}

// ClearHeart 清除管理员红心，三个字段一并清空
func (c *Comment) ClearHeart() {
	c.AdminHeart = false
	c.AdminHeartBy = nil
	c.AdminHeartAt = nil
}

// Visibility 推导管理端可见性状态
func (c *Comment) Visibility() string {
	if !c.IsHidden {
		return VisibilityVisible
	}
	if c.HiddenReason == nil {
		// 不应出现：隐藏但无原因时按管理员隐藏处理
		return VisibilityAdminHidden
	}
	switch *c.HiddenReason {
	case HiddenReasonReported:
		return VisibilityReported
	case HiddenReasonDeleted:
		return VisibilityDeleted
	default:
		return VisibilityAdminHidden
	}
}
