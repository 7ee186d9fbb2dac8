package model

import (
	"testing"
	"time"
)

func checkHiddenInvariant(t *testing.T, c *Comment) {
	t.Helper()
	if c.IsHidden != (c.HiddenReason != nil) {
		t.Errorf("invariant violated: IsHidden=%v HiddenReason=%v", c.IsHidden, c.HiddenReason)
	}
}

func TestCommentHideUnhide(t *testing.T) {
	c := &Comment{}
	checkHiddenInvariant(t, c)

	c.Hide(HiddenReasonAdmin)
	checkHiddenInvariant(t, c)
	if !c.IsHidden || *c.HiddenReason != HiddenReasonAdmin {
		t.Errorf("after Hide: IsHidden=%v reason=%v", c.IsHidden, c.HiddenReason)
	}

	// unhide 不管隐藏原因如何都一并清空
	c.Hide(HiddenReasonReported)
	c.Unhide()
	checkHiddenInvariant(t, c)
	if c.IsHidden || c.HiddenReason != nil {
		t.Errorf("after Unhide: IsHidden=%v reason=%v", c.IsHidden, c.HiddenReason)
	}
}

func TestCommentVisibility(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Comment)
		want   string
	}{
		{"未隐藏", func(c *Comment) {}, VisibilityVisible},
		{"管理员隐藏", func(c *Comment) { c.Hide(HiddenReasonAdmin) }, VisibilityAdminHidden},
		{"举报自动隐藏", func(c *Comment) { c.Hide(HiddenReasonReported) }, VisibilityReported},
		{"软删除", func(c *Comment) { c.Hide(HiddenReasonDeleted) }, VisibilityDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Comment{}
			tt.mutate(c)
			if got := c.Visibility(); got != tt.want {
				t.Errorf("Visibility() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommentHeart(t *testing.T) {
	c := &Comment{}
	now := time.Now()

	c.SetHeart(7, now)
	if !c.AdminHeart || c.AdminHeartBy == nil || c.AdminHeartAt == nil {
		t.Error("SetHeart should set all three fields together")
	}
	if *c.AdminHeartBy != 7 {
		t.Errorf("AdminHeartBy = %d, want 7", *c.AdminHeartBy)
	}

	c.ClearHeart()
	if c.AdminHeart || c.AdminHeartBy != nil || c.AdminHeartAt != nil {
		t.Error("ClearHeart should clear all three fields together")
	}
}
