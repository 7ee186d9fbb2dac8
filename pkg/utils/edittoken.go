package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// 游客编辑令牌：发布游客评论时生成一次，明文只返回给客户端，
// 服务端仅保存 SHA-256 哈希。明文丢失即丢失编辑权，没有找回路径。

// GenerateEditToken 生成编辑令牌，返回 (明文, 哈希)
func GenerateEditToken() (string, string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate edit token: %w", err)
	}
	plaintext := hex.EncodeToString(buf)
	return plaintext, HashEditToken(plaintext), nil
}

// HashEditToken 计算令牌明文的 SHA-256 哈希（hex 编码）
func HashEditToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// VerifyEditToken 校验令牌明文与存储哈希是否匹配（恒定时间比较）
func VerifyEditToken(plaintext, storedHash string) bool {
	if plaintext == "" || storedHash == "" {
		return false
	}
	computed := HashEditToken(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
