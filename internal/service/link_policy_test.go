package service

import (
	"errors"
	"testing"
)

func TestValidateLinks(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  error
		hasLinks bool
		count    int
	}{
		{
			name: "no links",
			body: "这是一条普通评论",
		},
		{
			name:     "one http link",
			body:     "看看这个 http://example.com 不错",
			hasLinks: true,
			count:    1,
		},
		{
			name:     "two links allowed",
			body:     "http://a.com 和 https://b.com",
			hasLinks: true,
			count:    2,
		},
		{
			name:    "three links rejected",
			body:    "http://a.com http://b.com http://c.com",
			wantErr: ErrTooManyLinks,
		},
		{
			name: "bare domain is not a link",
			body: "example.com 不算链接 ftp://x.com 也不算",
		},
		{
			name:     "link glued to punctuation still counts",
			body:     "地址是 https://example.com/path?q=1 这个",
			hasLinks: true,
			count:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := ValidateLinks(tt.body)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateLinks() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateLinks() unexpected error: %v", err)
			}
			if check.HasLinks != tt.hasLinks {
				t.Errorf("HasLinks = %v, want %v", check.HasLinks, tt.hasLinks)
			}
			if check.Count != tt.count {
				t.Errorf("Count = %d, want %d", check.Count, tt.count)
			}
		})
	}
}
