package dto

import "time"

// CommentCreateRequest 发表评论请求。登录用户忽略 guest_name，
// 游客必须提供 guest_name，fingerprint 用于游客身份解析。
type CommentCreateRequest struct {
	PageKey     string `json:"page_key" binding:"required"`
	Body        string `json:"body" binding:"required,min=1,max=2000"`
	GuestName   string `json:"guest_name" binding:"omitempty,min=2,max=20"`
	Fingerprint string `json:"fingerprint"`
}

// ReplyCreateRequest 发表回复请求（仅限登录用户）
type ReplyCreateRequest struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}

// CommentUpdateRequest 编辑评论请求。登录作者凭会话，
// 游客作者凭创建时下发的 edit_token。
type CommentUpdateRequest struct {
	Body      string `json:"body" binding:"required,min=1,max=2000"`
	EditToken string `json:"edit_token"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID           int64      `json:"id"`
	PageKey      string     `json:"page_key"`
	ParentID     *int64     `json:"parent_id"`
	AuthorType   string     `json:"author_type"`
	AuthorName   string     `json:"author_name"`
	AuthorAvatar *string    `json:"author_avatar"`
	Body         string     `json:"body"`
	BodyHasLinks bool       `json:"body_has_links"`
	AdminHeart   bool       `json:"admin_heart"`
	CreatedAt    time.Time  `json:"created_at"`
	EditedAt     *time.Time `json:"edited_at"`
	GoodCount    int64      `json:"good_count"`
	NotGoodCount int64      `json:"not_good_count"`
	MyReaction   *string    `json:"my_reaction"`
	ReplyCount   int64      `json:"reply_count"`
	IsMine       bool       `json:"is_mine"`
}

// CommentCreateData 发表评论结果。EditToken 仅游客评论返回且只返回这一次。
type CommentCreateData struct {
	Comment   CommentInfo `json:"comment"`
	EditToken *string     `json:"edit_token,omitempty"`
}

// CommentListData 评论列表数据。Total/TotalPages 仅在请求 with_total 时返回。
type CommentListData struct {
	Comments   []CommentInfo `json:"comments"`
	Total      *int64        `json:"total,omitempty"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages *int64        `json:"total_pages,omitempty"`
}
