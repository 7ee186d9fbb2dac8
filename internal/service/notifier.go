package service

import (
	"context"
	"time"

	infraKafka "homepage-go/internal/infra/kafka"
	"homepage-go/pkg/logger"

	"go.uber.org/zap"
)

// moderationNotifier 审核事件通知，尽力而为：失败只记日志。
type moderationNotifier interface {
	NotifyModeration(ctx context.Context, action string, commentID, actorUserID int64, pageKey string)
}

// KafkaNotifier 把审核事件投递到 Kafka，供下游通知/统计消费
type KafkaNotifier struct {
	topic string
}

// NewKafkaNotifier 创建 Kafka 审核事件通知器
func NewKafkaNotifier(topic string) *KafkaNotifier {
	return &KafkaNotifier{topic: topic}
}

// NotifyModeration 实现 moderationNotifier，nil 接收者直接跳过
func (n *KafkaNotifier) NotifyModeration(ctx context.Context, action string, commentID, actorUserID int64, pageKey string) {
	if n == nil {
		return
	}
	event := &infraKafka.ModerationEvent{
		Action:      action,
		CommentID:   commentID,
		ActorUserID: actorUserID,
		PageKey:     pageKey,
		OccurredAt:  time.Now(),
	}
	if err := infraKafka.SendModerationEvent(ctx, n.topic, event); err != nil {
		logger.Error("Failed to publish moderation event",
			zap.String("action", action),
			zap.Int64("comment_id", commentID),
			zap.Error(err),
		)
	}
}

// notify 空通知器安全调用
func notify(n moderationNotifier, ctx context.Context, action string, commentID, actorUserID int64, pageKey string) {
	if n == nil {
		return
	}
	n.NotifyModeration(ctx, action, commentID, actorUserID, pageKey)
}
