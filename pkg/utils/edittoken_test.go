package utils

import "testing"

func TestGenerateEditToken(t *testing.T) {
	plaintext, hash, err := GenerateEditToken()
	if err != nil {
		t.Fatalf("GenerateEditToken() error = %v", err)
	}
	if len(plaintext) != 64 {
		t.Errorf("plaintext length = %d, want 64", len(plaintext))
	}
	if len(hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(hash))
	}
	if plaintext == hash {
		t.Error("plaintext should not equal its hash")
	}

	// 两次生成的令牌不应相同
	plaintext2, _, err := GenerateEditToken()
	if err != nil {
		t.Fatalf("GenerateEditToken() error = %v", err)
	}
	if plaintext == plaintext2 {
		t.Error("two generated tokens should differ")
	}
}

func TestVerifyEditToken(t *testing.T) {
	plaintext, hash, err := GenerateEditToken()
	if err != nil {
		t.Fatalf("GenerateEditToken() error = %v", err)
	}

	tests := []struct {
		name      string
		plaintext string
		hash      string
		want      bool
	}{
		{"正确令牌", plaintext, hash, true},
		{"错误令牌", "deadbeef", hash, false},
		{"空明文", "", hash, false},
		{"空哈希", plaintext, "", false},
		{"哈希当明文", hash, hash, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyEditToken(tt.plaintext, tt.hash); got != tt.want {
				t.Errorf("VerifyEditToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashEditTokenDeterministic(t *testing.T) {
	if HashEditToken("abc") != HashEditToken("abc") {
		t.Error("HashEditToken should be deterministic")
	}
	if HashEditToken("abc") == HashEditToken("abd") {
		t.Error("different inputs should hash differently")
	}
}
