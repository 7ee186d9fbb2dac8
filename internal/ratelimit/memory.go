package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory 进程内固定窗口限流器。计数不跨进程、不跨重启，
// 只用于抑制滥用，不提供严格配额保证。
type Memory struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

type windowEntry struct {
	windowStart time.Time
	count       int
}

// NewMemory 创建进程内限流器
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

// Allow 实现 Limiter 接口
func (m *Memory) Allow(_ context.Context, kind, actorKey string, limit int) (bool, int, error) {
	key := kind + ":" + actorKey
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.entries[key]
	if !exists || now.Sub(entry.windowStart) >= Window {
		// 新窗口
		m.entries[key] = &windowEntry{windowStart: now, count: 1}
		return true, limit - 1, nil
	}

	if entry.count >= limit {
		return false, 0, nil
	}

	entry.count++
	return true, limit - entry.count, nil
}
