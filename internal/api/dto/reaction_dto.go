package dto

// ReactionRequest 反应切换请求
type ReactionRequest struct {
	ReactionType string `json:"reaction_type" binding:"required,oneof=good not_good"`
	Fingerprint  string `json:"fingerprint"`
}

// ReactionData 反应切换结果，返回权威计数供客户端校准乐观状态
type ReactionData struct {
	Result       string  `json:"result"` // added / removed
	GoodCount    int64   `json:"good_count"`
	NotGoodCount int64   `json:"not_good_count"`
	MyReaction   *string `json:"my_reaction"`
}
