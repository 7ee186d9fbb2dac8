package service

import (
	"context"
	"errors"
	"time"

	"homepage-go/internal/api/dto"
	"homepage-go/internal/config"
	"homepage-go/internal/identity"
	"homepage-go/internal/model"
	"homepage-go/internal/ratelimit"
	"homepage-go/internal/repository"
	"homepage-go/pkg/logger"
	"homepage-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrPageKeyInvalid    = errors.New("页面标识无效")
	ErrGuestNameRequired = errors.New("游客评论需要填写昵称")
	ErrGuestNameLength   = errors.New("昵称长度需要在2到20个字符之间")
	ErrNotOwner          = errors.New("没有权限编辑该评论")
	ErrParentNotFound    = errors.New("回复的评论不存在")
	ErrParentIsReply     = errors.New("只支持一级回复")
	ErrParentDeleted     = errors.New("无法回复已删除的评论")
	ErrRateLimited       = errors.New("操作太频繁，请稍后再试")
)

type CommentService struct {
	comments  commentStore
	reactions reactionStore
	users     userStore
	limiter   ratelimit.Limiter
	cfg       *config.CommentConfig
}

func NewCommentService(comments commentStore, reactions reactionStore, users userStore, limiter ratelimit.Limiter, cfg *config.CommentConfig) *CommentService {
	return &CommentService{
		comments:  comments,
		reactions: reactions,
		users:     users,
		limiter:   limiter,
		cfg:       cfg,
	}
}

// Create 发表评论。游客评论额外签发编辑令牌，明文只在响应里出现一次。
func (s *CommentService) Create(ctx context.Context, actor identity.Actor, req *dto.CommentCreateRequest) (*dto.CommentCreateData, error) {
	if !s.cfg.PageKeyAllowed(req.PageKey) {
		return nil, ErrPageKeyInvalid
	}

	check, err := ValidateLinks(req.Body)
	if err != nil {
		return nil, err
	}

	if err := s.allow(ctx, ratelimit.KindCommentCreate, actor.Key(), s.cfg.RateLimit("comment_create", 5)); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PageKey:      req.PageKey,
		Body:         req.Body,
		BodyHasLinks: check.HasLinks,
	}

	var plainToken *string
	if actor.IsUser() {
		user, err := s.users.GetByID(actor.UserID)
		if err != nil {
			return nil, err
		}
		comment.AuthorType = model.AuthorTypeUser
		comment.AuthorUserID = &user.ID
		// 展示名与头像取发布时的快照，之后改资料不回填
		comment.AuthorName = user.Nickname
		comment.AuthorAvatar = user.Avatar
	} else {
		if req.GuestName == "" {
			return nil, ErrGuestNameRequired
		}
		if len([]rune(req.GuestName)) < 2 || len([]rune(req.GuestName)) > 20 {
			return nil, ErrGuestNameLength
		}
		plaintext, hash, err := utils.GenerateEditToken()
		if err != nil {
			return nil, err
		}
		name := req.GuestName
		comment.AuthorType = model.AuthorTypeGuest
		comment.GuestName = &name
		comment.AuthorName = name
		comment.EditTokenHash = &hash
		plainToken = &plaintext
	}

	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}

	info := s.toCommentInfo(comment, model.ReactionCounts{}, nil, 0, actor)
	return &dto.CommentCreateData{Comment: *info, EditToken: plainToken}, nil
}

// CreateReply 发表一级回复，仅限登录用户，父评论必须是未删除的顶层评论
func (s *CommentService) CreateReply(ctx context.Context, userID, parentID int64, req *dto.ReplyCreateRequest) (*dto.CommentInfo, error) {
	parent, err := s.comments.GetByID(parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	if parent.IsReply() {
		return nil, ErrParentIsReply
	}
	if parent.IsDeleted() {
		return nil, ErrParentDeleted
	}

	check, err := ValidateLinks(req.Body)
	if err != nil {
		return nil, err
	}

	actor := identity.Actor{Type: identity.TypeUser, UserID: userID}
	if err := s.allow(ctx, ratelimit.KindCommentCreate, actor.Key(), s.cfg.RateLimit("comment_create", 5)); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	reply := &model.Comment{
		PageKey:      parent.PageKey,
		ParentID:     &parent.ID,
		AuthorType:   model.AuthorTypeUser,
		AuthorUserID: &user.ID,
		AuthorName:   user.Nickname,
		AuthorAvatar: user.Avatar,
		Body:         req.Body,
		BodyHasLinks: check.HasLinks,
	}

	if err := s.comments.Create(reply); err != nil {
		return nil, err
	}

	return s.toCommentInfo(reply, model.ReactionCounts{}, nil, 0, actor), nil
}

// Edit 编辑正文。所有权证明按作者类型区分：登录作者凭会话身份，
// 游客作者凭编辑令牌；证明不符一律按无权限处理，不降级成参数错误。
func (s *CommentService) Edit(ctx context.Context, commentID int64, actor identity.Actor, req *dto.CommentUpdateRequest) (*dto.CommentInfo, error) {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.IsDeleted() {
		return nil, ErrCommentNotFound
	}

	switch comment.AuthorType {
	case model.AuthorTypeUser:
		if !actor.IsUser() || comment.AuthorUserID == nil || *comment.AuthorUserID != actor.UserID {
			return nil, ErrNotOwner
		}
	case model.AuthorTypeGuest:
		if comment.EditTokenHash == nil || !utils.VerifyEditToken(req.EditToken, *comment.EditTokenHash) {
			return nil, ErrNotOwner
		}
	default:
		return nil, ErrNotOwner
	}

	check, err := ValidateLinks(req.Body)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.comments.UpdateBody(commentID, req.Body, check.HasLinks, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	comment.Body = req.Body
	comment.BodyHasLinks = check.HasLinks
	comment.EditedAt = &now

	counts, mine := s.reactionView([]int64{comment.ID}, actor)
	replyCounts := s.replyCountView([]int64{comment.ID})
	return s.toCommentInfo(comment, counts[comment.ID], mine[comment.ID], replyCounts[comment.ID], actor), nil
}

// List 获取页面的可见评论，最新在前。计数与调用者自己的反应
// 每次读取现算，聚合失败时降级为零值而不是让整个列表失败。
func (s *CommentService) List(actor identity.Actor, pageKey string, page, pageSize int, withTotal bool) (*dto.CommentListData, error) {
	if !s.cfg.PageKeyAllowed(pageKey) {
		return nil, ErrPageKeyInvalid
	}

	skip := (page - 1) * pageSize
	comments, total, err := s.comments.ListVisibleByPage(pageKey, skip, pageSize, withTotal)
	if err != nil {
		return nil, err
	}

	data := s.buildListData(comments, actor, page, pageSize)
	if withTotal {
		data.Total = &total
		totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
		data.TotalPages = &totalPages
	}
	return data, nil
}

// ListReplies 获取某条评论的可见回复，最早在前
func (s *CommentService) ListReplies(actor identity.Actor, parentID int64, page, pageSize int) (*dto.CommentListData, error) {
	parent, err := s.comments.GetByID(parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if parent.IsHidden || parent.IsReply() {
		return nil, ErrCommentNotFound
	}

	skip := (page - 1) * pageSize
	replies, total, err := s.comments.ListVisibleReplies(parentID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	data := s.buildListData(replies, actor, page, pageSize)
	data.Total = &total
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	data.TotalPages = &totalPages
	return data, nil
}

// ListAdmin 管理端全量查询，可按页面、可见性状态、作者类型筛选
func (s *CommentService) ListAdmin(filter repository.AdminCommentFilter, page, pageSize int) (*dto.AdminCommentListData, error) {
	filter.Skip = (page - 1) * pageSize
	filter.Limit = pageSize

	comments, total, err := s.comments.ListAdmin(filter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(comments))
	for i := range comments {
		ids = append(ids, comments[i].ID)
	}
	counts, _ := s.reactionView(ids, identity.Actor{})
	replyCounts := s.replyCountView(ids)

	items := make([]dto.AdminCommentInfo, 0, len(comments))
	for i := range comments {
		c := comments[i]
		items = append(items, dto.AdminCommentInfo{
			Comment:      c,
			Visibility:   c.Visibility(),
			GoodCount:    counts[c.ID].Good,
			NotGoodCount: counts[c.ID].NotGood,
			ReplyCount:   replyCounts[c.ID],
		})
	}

	return &dto.AdminCommentListData{
		Comments: items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *CommentService) allow(ctx context.Context, kind, actorKey string, limit int) error {
	ok, _, err := s.limiter.Allow(ctx, kind, actorKey, limit)
	if err != nil {
		// 限流器故障时放行：限流只是滥用抑制，不应阻断正常写入
		logger.Warn("Rate limiter unavailable, allowing request",
			zap.String("kind", kind),
			zap.Error(err),
		)
		return nil
	}
	if !ok {
		return ErrRateLimited
	}
	return nil
}

func (s *CommentService) buildListData(comments []model.Comment, actor identity.Actor, page, pageSize int) *dto.CommentListData {
	ids := make([]int64, 0, len(comments))
	for i := range comments {
		ids = append(ids, comments[i].ID)
	}

	counts, mine := s.reactionView(ids, actor)
	replyCounts := s.replyCountView(ids)

	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		items = append(items, *s.toCommentInfo(c, counts[c.ID], mine[c.ID], replyCounts[c.ID], actor))
	}

	return &dto.CommentListData{
		Comments: items,
		Page:     page,
		PageSize: pageSize,
	}
}

// reactionView 读取反应计数与调用者自己的反应，失败降级为零值
func (s *CommentService) reactionView(ids []int64, actor identity.Actor) (map[int64]model.ReactionCounts, map[int64]*string) {
	counts, err := s.reactions.CountsFor(ids)
	if err != nil {
		logger.Warn("Failed to aggregate reaction counts, falling back to zeros", zap.Error(err))
		counts = make(map[int64]model.ReactionCounts, len(ids))
		for _, id := range ids {
			counts[id] = model.ReactionCounts{}
		}
	}

	mine := make(map[int64]*string, len(ids))
	if actor.Type != "" {
		raw, err := s.reactions.ActorReactionFor(ids, actor.Key())
		if err != nil {
			logger.Warn("Failed to load actor reactions, falling back to none", zap.Error(err))
			raw = map[int64]string{}
		}
		for id, t := range raw {
			t := t
			mine[id] = &t
		}
	}
	return counts, mine
}

// replyCountView 读取回复计数，失败降级为零值
func (s *CommentService) replyCountView(ids []int64) map[int64]int64 {
	counts, err := s.comments.CountVisibleReplies(ids)
	if err != nil {
		logger.Warn("Failed to count replies, falling back to zeros", zap.Error(err))
		counts = make(map[int64]int64, len(ids))
		for _, id := range ids {
			counts[id] = 0
		}
	}
	return counts
}

func (s *CommentService) toCommentInfo(c *model.Comment, counts model.ReactionCounts, myReaction *string, replyCount int64, actor identity.Actor) *dto.CommentInfo {
	isMine := actor.IsUser() &&
		c.AuthorType == model.AuthorTypeUser &&
		c.AuthorUserID != nil &&
		*c.AuthorUserID == actor.UserID

	return &dto.CommentInfo{
		ID:           c.ID,
		PageKey:      c.PageKey,
		ParentID:     c.ParentID,
		AuthorType:   c.AuthorType,
		AuthorName:   c.AuthorName,
		AuthorAvatar: c.AuthorAvatar,
		Body:         c.Body,
		BodyHasLinks: c.BodyHasLinks,
		AdminHeart:   c.AdminHeart,
		CreatedAt:    c.CreatedAt,
		EditedAt:     c.EditedAt,
		GoodCount:    counts.Good,
		NotGoodCount: counts.NotGood,
		MyReaction:   myReaction,
		ReplyCount:   replyCount,
		IsMine:       isMine,
	}
}
