package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"homepage-go/internal/model"
)

func TestModerationApplyTransitions(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		wantHidden bool
		wantReason string
	}{
		{name: "hide", action: "hide", wantHidden: true, wantReason: model.HiddenReasonAdmin},
		{name: "delete", action: "delete", wantHidden: true, wantReason: model.HiddenReasonDeleted},
		{name: "unhide", action: "unhide", wantHidden: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := newFakeCommentStore()
			target := comments.seed(&model.Comment{PageKey: "profile", AuthorType: model.AuthorTypeGuest, Body: "x"})
			if tt.action == "unhide" {
				target.Hide(model.HiddenReasonReported)
			}
			audits := &fakeAuditStore{}
			notifier := &fakeNotifier{}
			svc := NewModerationService(comments, audits, notifier)

			result, err := svc.Apply(context.Background(), 1, target.ID, tt.action)
			if err != nil {
				t.Fatalf("Apply(%s) error: %v", tt.action, err)
			}
			if result.Warning != "" {
				t.Errorf("Warning = %q, want empty", result.Warning)
			}

			stored := comments.comments[target.ID]
			if stored.IsHidden != tt.wantHidden {
				t.Errorf("IsHidden = %v, want %v", stored.IsHidden, tt.wantHidden)
			}
			if tt.wantHidden {
				if stored.HiddenReason == nil || *stored.HiddenReason != tt.wantReason {
					t.Errorf("HiddenReason = %v, want %q", stored.HiddenReason, tt.wantReason)
				}
			} else if stored.HiddenReason != nil {
				t.Errorf("HiddenReason after unhide = %v, want nil", stored.HiddenReason)
			}

			if len(audits.entries) != 1 || audits.entries[0].ActorUserID != 1 {
				t.Errorf("audit entries = %+v, want one entry by admin 1", audits.entries)
			}
			if len(notifier.actions) != 1 {
				t.Errorf("notifier actions = %v, want one event", notifier.actions)
			}
		})
	}
}

func TestModerationApplyInvalidAction(t *testing.T) {
	comments := newFakeCommentStore()
	target := comments.seed(&model.Comment{PageKey: "profile", AuthorType: model.AuthorTypeGuest, Body: "x"})
	svc := NewModerationService(comments, &fakeAuditStore{}, nil)

	_, err := svc.Apply(context.Background(), 1, target.ID, "vanish")
	if !errors.Is(err, ErrInvalidModerationAction) {
		t.Errorf("Apply() error = %v, want ErrInvalidModerationAction", err)
	}

	_, err = svc.Apply(context.Background(), 1, 999, "hide")
	if !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("Apply() on missing comment error = %v, want ErrCommentNotFound", err)
	}
}

func TestModerationAuditFailureReturnsWarning(t *testing.T) {
	comments := newFakeCommentStore()
	target := comments.seed(&model.Comment{PageKey: "profile", AuthorType: model.AuthorTypeGuest, Body: "x"})
	audits := &fakeAuditStore{createErr: errors.New("db down")}
	svc := NewModerationService(comments, audits, nil)

	result, err := svc.Apply(context.Background(), 1, target.ID, "hide")
	if err != nil {
		t.Fatalf("Apply() should succeed despite audit failure, got: %v", err)
	}
	if result.Warning != auditDegradedWarning {
		t.Errorf("Warning = %q, want degraded warning", result.Warning)
	}
	if !comments.comments[target.ID].IsHidden {
		t.Error("hide must take effect even when the audit write fails")
	}
}

func TestModerationToggleHeart(t *testing.T) {
	comments := newFakeCommentStore()
	target := comments.seed(&model.Comment{PageKey: "profile", AuthorType: model.AuthorTypeGuest, Body: "x"})
	audits := &fakeAuditStore{}
	svc := NewModerationService(comments, audits, nil)
	ctx := context.Background()

	if _, err := svc.ToggleHeart(ctx, 9, target.ID); err != nil {
		t.Fatalf("ToggleHeart() error: %v", err)
	}
	stored := comments.comments[target.ID]
	if !stored.AdminHeart || stored.AdminHeartBy == nil || *stored.AdminHeartBy != 9 || stored.AdminHeartAt == nil {
		t.Errorf("heart set incompletely: %+v", stored)
	}

	if _, err := svc.ToggleHeart(ctx, 9, target.ID); err != nil {
		t.Fatalf("ToggleHeart() error: %v", err)
	}
	stored = comments.comments[target.ID]
	if stored.AdminHeart || stored.AdminHeartBy != nil || stored.AdminHeartAt != nil {
		t.Errorf("heart cleared incompletely: %+v", stored)
	}

	if len(audits.entries) != 2 ||
		audits.entries[0].Action != model.AuditActionHeart ||
		audits.entries[1].Action != model.AuditActionUnheart {
		t.Errorf("audit actions = %+v, want [heart unheart]", audits.entries)
	}
}

func TestModerationPurgeAudit(t *testing.T) {
	comments := newFakeCommentStore()
	audits := &fakeAuditStore{}
	svc := NewModerationService(comments, audits, nil)

	old := &model.AuditLog{ActorUserID: 1, Action: model.AuditActionHide, TargetType: "comment", TargetID: 1}
	if err := audits.Create(old); err != nil {
		t.Fatalf("seed audit entry: %v", err)
	}
	old.CreatedAt = time.Now().AddDate(0, 0, -120)

	data, err := svc.PurgeAudit(1, 90)
	if err != nil {
		t.Fatalf("PurgeAudit() error: %v", err)
	}
	if data.Deleted != 1 {
		t.Errorf("Deleted = %d, want 1", data.Deleted)
	}

	// 清理动作本身要留痕
	if len(audits.entries) != 1 || audits.entries[0].Action != model.AuditActionAuditPurge {
		t.Errorf("audit entries after purge = %+v, want one audit_purge entry", audits.entries)
	}
}
