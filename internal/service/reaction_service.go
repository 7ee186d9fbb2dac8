package service

import (
	"context"
	"errors"
	"fmt"

	"homepage-go/internal/api/dto"
	"homepage-go/internal/config"
	"homepage-go/internal/identity"
	"homepage-go/internal/model"
	"homepage-go/internal/ratelimit"
	"homepage-go/internal/repository"
	"homepage-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrReactionTypeInvalid = errors.New("反应类型无效")

type ReactionService struct {
	reactions reactionStore
	comments  commentStore
	limiter   ratelimit.Limiter
	cfg       *config.CommentConfig
}

func NewReactionService(reactions reactionStore, comments commentStore, limiter ratelimit.Limiter, cfg *config.CommentConfig) *ReactionService {
	return &ReactionService{
		reactions: reactions,
		comments:  comments,
		limiter:   limiter,
		cfg:       cfg,
	}
}

// Toggle 幂等切换反应并返回权威计数。隐藏目标对外等同不存在。
func (s *ReactionService) Toggle(ctx context.Context, targetID int64, actor identity.Actor, req *dto.ReactionRequest) (*dto.ReactionData, error) {
	if !model.ReactionTypeValid(req.ReactionType) {
		return nil, ErrReactionTypeInvalid
	}

	target, err := s.comments.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if target.IsHidden {
		return nil, ErrCommentNotFound
	}

	// 限流键带上目标，限的是同一人对同一目标的连点
	limitKey := fmt.Sprintf("%s:%d", actor.Key(), targetID)
	if err := s.allow(ctx, limitKey); err != nil {
		return nil, err
	}

	result, err := s.reactions.Toggle(targetID, req.ReactionType, actor.Type, actor.Key())
	if err != nil {
		return nil, err
	}

	counts, err := s.reactions.CountsFor([]int64{targetID})
	if err != nil {
		// 写入已成功，计数失败降级为零值
		counts = map[int64]model.ReactionCounts{targetID: {}}
	}

	var myReaction *string
	if result == repository.ToggleAdded {
		t := req.ReactionType
		myReaction = &t
	}

	return &dto.ReactionData{
		Result:       result,
		GoodCount:    counts[targetID].Good,
		NotGoodCount: counts[targetID].NotGood,
		MyReaction:   myReaction,
	}, nil
}

func (s *ReactionService) allow(ctx context.Context, limitKey string) error {
	ok, _, err := s.limiter.Allow(ctx, ratelimit.KindReactionToggle, limitKey, s.cfg.RateLimit("reaction_toggle", 10))
	if err != nil {
		// 限流器故障时放行：限流只是滥用抑制，不应阻断正常写入
		logger.Warn("Rate limiter unavailable, allowing reaction",
			zap.String("key", limitKey),
			zap.Error(err),
		)
		return nil
	}
	if !ok {
		return ErrRateLimited
	}
	return nil
}
