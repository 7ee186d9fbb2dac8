package model

import "time"

// 反应极性，good/not_good 互斥成对
const (
	ReactionGood    = "good"
	ReactionNotGood = "not_good"
)

// ReactionTypeValid 校验反应类型取值
func ReactionTypeValid(t string) bool {
	return t == ReactionGood || t == ReactionNotGood
}

// Reaction 反应记录。同一 actor 对同一目标最多一行：
// 同极性再点是撤销，换极性是先删旧行再插新行，都在一个事务内完成。
type Reaction struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:反应记录ID" json:"id"`
	TargetID  int64     `gorm:"not null;uniqueIndex:uq_reaction_target_actor;index:idx_reactions_target_id;comment:目标评论ID" json:"target_id"`
	Type      string    `gorm:"size:16;not null;comment:反应类型 good/not_good" json:"type"`
	ActorType string    `gorm:"size:16;not null;comment:操作者类型 user/guest" json:"actor_type"`
	ActorKey  string    `gorm:"size:128;not null;uniqueIndex:uq_reaction_target_actor;index:idx_reactions_actor_key;comment:操作者身份键" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:反应时间" json:"created_at"`
}

func (Reaction) TableName() string {
	return "reactions"
}

// ReactionCounts 单个目标的反应计数
type ReactionCounts struct {
	Good    int64 `json:"good"`
	NotGood int64 `json:"not_good"`
}
