package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homepage-go/internal/config"
	"homepage-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// ModerationEvent 审核事件消息体，供下游通知/统计消费者使用。
// 投递是尽力而为的：失败只记日志，不影响主操作。
type ModerationEvent struct {
	Action      string    `json:"action"` // hide / unhide / delete / heart / unheart / auto_hide
	CommentID   int64     `json:"comment_id"`
	ActorUserID int64     `json:"actor_user_id,omitempty"` // auto_hide 时为 0
	PageKey     string    `json:"page_key,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// InitProducer 初始化 Kafka 生产者。未启用时不建连接，
// 后续的事件发送都直接跳过。
func InitProducer(cfg *config.KafkaConfig) error {
	if !cfg.Enabled {
		return nil
	}

	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendModerationEvent 发送审核事件到 Kafka
func SendModerationEvent(ctx context.Context, topic string, event *ModerationEvent) error {
	if producer == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal moderation event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("comment-%d", event.CommentID)),
		Value: payload,
	}

	// 写入有界超时，不允许阻塞主请求
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send moderation event: %w", err)
	}

	return nil
}

// CloseProducer 关闭 Kafka 生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
