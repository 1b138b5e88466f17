package grpc

import "time"

type SignupRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type SessionReply struct {
	Token        string `json:"token"`
	ShardBalance int64  `json:"shardBalance"`
}

type BalanceRequest struct{}

type BalanceReply struct {
	ShardBalance int64 `json:"shardBalance"`
}

type RedeemRequest struct {
	Code string `json:"code"`
}

type ClaimQuestRequest struct {
	QuestID string `json:"questId"`
	Reward  int64  `json:"reward"`
}

type GrantReply struct {
	Message      string `json:"message"`
	ShardBalance int64  `json:"shardBalance"`
}

type AddCodeRequest struct {
	AdminSecret string     `json:"adminSecret"`
	Code        string     `json:"code"`
	Amount      int64      `json:"amount"`
	Mode        string     `json:"mode,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

type MessageReply struct {
	Message string `json:"message"`
}

type PingRequest struct{}

type PingReply struct {
	Status string `json:"status"`
}
