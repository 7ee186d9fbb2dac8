package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// 身份解析：一次请求的操作者要么是登录用户，要么是携带浏览器指纹的游客。
// 没有错误路径——任何请求都能解析出两种身份之一。

const (
	TypeUser  = "user"
	TypeGuest = "guest"
)

// Actor 请求操作者身份
type Actor struct {
	Type        string
	UserID      int64  // Type == user 时有效
	Fingerprint string // Type == guest 时有效
}

// Resolve 解析请求身份。已认证请求得到 user 身份；
// 未认证请求得到 guest 身份，指纹缺失时从客户端 IP 派生兜底指纹，
// 保证限流与举报去重至少有粗粒度的依据。
func Resolve(userID int64, authenticated bool, fingerprint, clientIP string) Actor {
	if authenticated {
		return Actor{Type: TypeUser, UserID: userID}
	}
	if fingerprint == "" {
		fingerprint = fallbackFingerprint(clientIP)
	}
	return Actor{Type: TypeGuest, Fingerprint: fingerprint}
}

// Key 返回身份的稳定键，用于限流计数、反应去重与举报去重
func (a Actor) Key() string {
	if a.Type == TypeUser {
		return fmt.Sprintf("user:%d", a.UserID)
	}
	return "guest:" + a.Fingerprint
}

// IsUser 是否为登录用户
func (a Actor) IsUser() bool {
	return a.Type == TypeUser
}

// fallbackFingerprint 从客户端 IP 派生兜底指纹
func fallbackFingerprint(clientIP string) string {
	sum := sha256.Sum256([]byte("ip:" + clientIP))
	return "ip-" + hex.EncodeToString(sum[:8])
}
