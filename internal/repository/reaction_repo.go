package repository

import (
	"homepage-go/internal/model"

	"gorm.io/gorm"
)

// 反应切换结果
const (
	ToggleAdded   = "added"
	ToggleRemoved = "removed"
)

type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Toggle 幂等切换反应。同极性已存在则删除（撤销）；否则先删同
// (target, actor) 的反向行再插入新行。整个序列在一个事务内执行，
// 并发切换由行级原子性兜底。
func (r *ReactionRepository) Toggle(targetID int64, reactionType, actorType, actorKey string) (string, error) {
	var result string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Reaction
		err := tx.Where("target_id = ? AND actor_key = ?", targetID, actorKey).
			First(&existing).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		if err == nil {
			if existing.Type == reactionType {
				// 同极性再点：撤销
				if err := tx.Delete(&existing).Error; err != nil {
					return err
				}
				result = ToggleRemoved
				return nil
			}
			// 反向行先删
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		}

		reaction := &model.Reaction{
			TargetID:  targetID,
			Type:      reactionType,
			ActorType: actorType,
			ActorKey:  actorKey,
		}
		if err := tx.Create(reaction).Error; err != nil {
			return err
		}
		result = ToggleAdded
		return nil
	})

	return result, err
}

// CountsFor 批量统计反应数，所有请求的目标都出现在结果里（零初始化）
func (r *ReactionRepository) CountsFor(targetIDs []int64) (map[int64]model.ReactionCounts, error) {
	counts := make(map[int64]model.ReactionCounts, len(targetIDs))
	for _, id := range targetIDs {
		counts[id] = model.ReactionCounts{}
	}
	if len(targetIDs) == 0 {
		return counts, nil
	}

	type row struct {
		TargetID int64
		Type     string
		Cnt      int64
	}
	var rows []row
	err := r.db.Model(&model.Reaction{}).
		Select("target_id, type, count(*) as cnt").
		Where("target_id IN ?", targetIDs).
		Group("target_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		c := counts[row.TargetID]
		switch row.Type {
		case model.ReactionGood:
			c.Good = row.Cnt
		case model.ReactionNotGood:
			c.NotGood = row.Cnt
		}
		counts[row.TargetID] = c
	}
	return counts, nil
}

// ActorReactionFor 批量查询操作者自己的反应，没有反应的目标不在结果里
func (r *ReactionRepository) ActorReactionFor(targetIDs []int64, actorKey string) (map[int64]string, error) {
	reactions := make(map[int64]string)
	if len(targetIDs) == 0 || actorKey == "" {
		return reactions, nil
	}

	var rows []model.Reaction
	err := r.db.Where("target_id IN ? AND actor_key = ?", targetIDs, actorKey).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		reactions[row.TargetID] = row.Type
	}
	return reactions, nil
}
