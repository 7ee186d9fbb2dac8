package ratelimit

import (
	"context"
	"testing"
	"time"
)

func newTestMemory(now *time.Time) *Memory {
	m := NewMemory()
	m.now = func() time.Time { return *now }
	return m
}

func TestMemoryAllowWithinLimit(t *testing.T) {
	now := time.Now()
	m := newTestMemory(&now)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, remaining, err := m.Allow(ctx, KindCommentCreate, "user:1", 5)
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if remaining != 5-(i+1) {
			t.Errorf("request %d remaining = %d, want %d", i+1, remaining, 5-(i+1))
		}
	}

	ok, remaining, err := m.Allow(ctx, KindCommentCreate, "user:1", 5)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if ok {
		t.Error("6th request should be throttled")
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
}

func TestMemoryWindowReset(t *testing.T) {
	now := time.Now()
	m := newTestMemory(&now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		m.Allow(ctx, KindReportSubmit, "guest:fp", 3)
	}
	if ok, _, _ := m.Allow(ctx, KindReportSubmit, "guest:fp", 3); ok {
		t.Fatal("should be throttled before window elapses")
	}

	// 窗口过期后计数重置
	now = now.Add(Window)
	ok, remaining, _ := m.Allow(ctx, KindReportSubmit, "guest:fp", 3)
	if !ok {
		t.Fatal("should be allowed after window reset")
	}
	if remaining != 2 {
		t.Errorf("remaining = %d, want 2", remaining)
	}
}

func TestMemoryKeysIsolated(t *testing.T) {
	now := time.Now()
	m := newTestMemory(&now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		m.Allow(ctx, KindReportSubmit, "guest:a", 3)
	}
	if ok, _, _ := m.Allow(ctx, KindReportSubmit, "guest:a", 3); ok {
		t.Fatal("guest:a should be throttled")
	}

	// 不同 actor 互不影响
	if ok, _, _ := m.Allow(ctx, KindReportSubmit, "guest:b", 3); !ok {
		t.Error("guest:b should not be throttled")
	}
	// 不同 kind 互不影响
	if ok, _, _ := m.Allow(ctx, KindCommentCreate, "guest:a", 5); !ok {
		t.Error("different kind should not be throttled")
	}
}
