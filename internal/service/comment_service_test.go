package service

import (
	"context"
	"errors"
	"testing"

	"homepage-go/internal/api/dto"
	"homepage-go/internal/model"
	"homepage-go/pkg/utils"
)

func newTestCommentService(comments *fakeCommentStore, users *fakeUserStore, limiter *fakeLimiter) *CommentService {
	return NewCommentService(comments, newFakeReactionStore(), users, limiter, testCommentConfig())
}

func TestCommentCreateGuestIssuesEditToken(t *testing.T) {
	comments := newFakeCommentStore()
	svc := newTestCommentService(comments, newFakeUserStore(), allowAll())

	data, err := svc.Create(context.Background(), guestActor("fp-1"), &dto.CommentCreateRequest{
		PageKey:   "profile",
		Body:      "第一条评论",
		GuestName: "路人甲",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if data.EditToken == nil || len(*data.EditToken) != 64 {
		t.Fatalf("guest create should return a 64-char edit token, got %v", data.EditToken)
	}

	stored := comments.comments[data.Comment.ID]
	if stored.EditTokenHash == nil {
		t.Fatal("edit token hash not persisted")
	}
	if *stored.EditTokenHash == *data.EditToken {
		t.Error("plaintext token must not be stored")
	}
	if !utils.VerifyEditToken(*data.EditToken, *stored.EditTokenHash) {
		t.Error("returned token does not verify against stored hash")
	}
	if stored.AuthorType != model.AuthorTypeGuest || stored.AuthorName != "路人甲" {
		t.Errorf("guest authorship not recorded: %+v", stored)
	}
}

func TestCommentCreateUserSnapshotsProfile(t *testing.T) {
	avatar := "https://cdn.example.com/a.png"
	users := newFakeUserStore(&model.User{ID: 7, UserName: "alice", Nickname: "爱丽丝", Avatar: &avatar})
	comments := newFakeCommentStore()
	svc := newTestCommentService(comments, users, allowAll())

	data, err := svc.Create(context.Background(), userActor(7), &dto.CommentCreateRequest{
		PageKey: "dev",
		Body:    "用户评论",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if data.EditToken != nil {
		t.Error("user create must not issue an edit token")
	}

	stored := comments.comments[data.Comment.ID]
	if stored.AuthorUserID == nil || *stored.AuthorUserID != 7 {
		t.Errorf("author user id = %v, want 7", stored.AuthorUserID)
	}
	if stored.AuthorName != "爱丽丝" || stored.AuthorAvatar == nil || *stored.AuthorAvatar != avatar {
		t.Errorf("profile snapshot not taken: %+v", stored)
	}
}

func TestCommentCreateValidation(t *testing.T) {
	svc := newTestCommentService(newFakeCommentStore(), newFakeUserStore(), allowAll())
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   string
		req     dto.CommentCreateRequest
		wantErr error
	}{
		{
			name:    "unknown page key",
			req:     dto.CommentCreateRequest{PageKey: "shop", Body: "x", GuestName: "路人"},
			wantErr: ErrPageKeyInvalid,
		},
		{
			name:    "guest name required",
			req:     dto.CommentCreateRequest{PageKey: "profile", Body: "x"},
			wantErr: ErrGuestNameRequired,
		},
		{
			name:    "guest name too short",
			req:     dto.CommentCreateRequest{PageKey: "profile", Body: "x", GuestName: "甲"},
			wantErr: ErrGuestNameLength,
		},
		{
			name:    "too many links",
			req:     dto.CommentCreateRequest{PageKey: "profile", Body: "http://a.com http://b.com http://c.com", GuestName: "路人"},
			wantErr: ErrTooManyLinks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, guestActor("fp"), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommentCreateRateLimited(t *testing.T) {
	limiter := &fakeLimiter{allowed: false}
	svc := newTestCommentService(newFakeCommentStore(), newFakeUserStore(), limiter)

	_, err := svc.Create(context.Background(), guestActor("fp"), &dto.CommentCreateRequest{
		PageKey:   "profile",
		Body:      "x",
		GuestName: "路人",
	})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("Create() error = %v, want ErrRateLimited", err)
	}
}

func TestCommentCreateAllowsWhenLimiterFails(t *testing.T) {
	limiter := &fakeLimiter{allowed: false, err: errors.New("redis down")}
	svc := newTestCommentService(newFakeCommentStore(), newFakeUserStore(), limiter)

	_, err := svc.Create(context.Background(), guestActor("fp"), &dto.CommentCreateRequest{
		PageKey:   "profile",
		Body:      "限流后端挂了也要能发",
		GuestName: "路人",
	})
	if err != nil {
		t.Fatalf("Create() should degrade open on limiter failure, got: %v", err)
	}
}

func TestGuestEditOwnership(t *testing.T) {
	comments := newFakeCommentStore()
	svc := newTestCommentService(comments, newFakeUserStore(), allowAll())

	data, err := svc.Create(context.Background(), guestActor("fp-1"), &dto.CommentCreateRequest{
		PageKey:   "profile",
		Body:      "原始内容",
		GuestName: "路人甲",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	id := data.Comment.ID

	// 正确令牌可以编辑
	info, err := svc.Edit(context.Background(), id, guestActor("fp-1"), &dto.CommentUpdateRequest{
		Body:      "改过的内容",
		EditToken: *data.EditToken,
	})
	if err != nil {
		t.Fatalf("Edit() with valid token error: %v", err)
	}
	if info.Body != "改过的内容" || info.EditedAt == nil {
		t.Errorf("edit not applied: %+v", info)
	}

	// 错误或缺失令牌一律按无权限处理
	for _, token := range []string{"", "deadbeef"} {
		_, err := svc.Edit(context.Background(), id, guestActor("fp-1"), &dto.CommentUpdateRequest{
			Body:      "再改",
			EditToken: token,
		})
		if !errors.Is(err, ErrNotOwner) {
			t.Errorf("Edit() with token %q error = %v, want ErrNotOwner", token, err)
		}
	}

	// 登录身份不能接管游客评论
	_, err = svc.Edit(context.Background(), id, userActor(1), &dto.CommentUpdateRequest{Body: "接管"})
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("Edit() by user on guest comment error = %v, want ErrNotOwner", err)
	}
}

func TestUserEditOwnership(t *testing.T) {
	users := newFakeUserStore(
		&model.User{ID: 1, UserName: "alice", Nickname: "爱丽丝"},
		&model.User{ID: 2, UserName: "bob", Nickname: "鲍勃", UserRole: "admin"},
	)
	comments := newFakeCommentStore()
	svc := newTestCommentService(comments, users, allowAll())

	data, err := svc.Create(context.Background(), userActor(1), &dto.CommentCreateRequest{
		PageKey: "dev",
		Body:    "我的评论",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	id := data.Comment.ID

	if _, err := svc.Edit(context.Background(), id, userActor(1), &dto.CommentUpdateRequest{Body: "改一下"}); err != nil {
		t.Fatalf("owner edit error: %v", err)
	}

	// 其他用户（包括管理员）不能走编辑通道
	_, err = svc.Edit(context.Background(), id, userActor(2), &dto.CommentUpdateRequest{Body: "不行"})
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("Edit() by other user error = %v, want ErrNotOwner", err)
	}

	// 游客身份也不行
	_, err = svc.Edit(context.Background(), id, guestActor("fp"), &dto.CommentUpdateRequest{Body: "不行", EditToken: "x"})
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("Edit() by guest on user comment error = %v, want ErrNotOwner", err)
	}
}

func TestEditDeletedCommentNotFound(t *testing.T) {
	comments := newFakeCommentStore()
	c := comments.seed(&model.Comment{PageKey: "profile", AuthorType: model.AuthorTypeGuest, Body: "x"})
	c.Hide(model.HiddenReasonDeleted)

	svc := newTestCommentService(comments, newFakeUserStore(), allowAll())
	_, err := svc.Edit(context.Background(), c.ID, guestActor("fp"), &dto.CommentUpdateRequest{Body: "y", EditToken: "z"})
	if !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("Edit() on deleted comment error = %v, want ErrCommentNotFound", err)
	}
}

func TestCreateReplyRules(t *testing.T) {
	users := newFakeUserStore(&model.User{ID: 1, UserName: "alice", Nickname: "爱丽丝"})
	comments := newFakeCommentStore()
	svc := newTestCommentService(comments, users, allowAll())

	parent := comments.seed(&model.Comment{PageKey: "profile", AuthorType: model.AuthorTypeGuest, Body: "顶层"})

	reply, err := svc.CreateReply(context.Background(), 1, parent.ID, &dto.ReplyCreateRequest{Body: "回复"})
	if err != nil {
		t.Fatalf("CreateReply() error: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != parent.ID {
		t.Errorf("reply parent = %v, want %d", reply.ParentID, parent.ID)
	}
	if reply.PageKey != parent.PageKey {
		t.Errorf("reply page key = %q, want %q", reply.PageKey, parent.PageKey)
	}

	// 不允许回复回复
	_, err = svc.CreateReply(context.Background(), 1, reply.ID, &dto.ReplyCreateRequest{Body: "二级"})
	if !errors.Is(err, ErrParentIsReply) {
		t.Errorf("CreateReply() on reply error = %v, want ErrParentIsReply", err)
	}

	// 不允许回复已删除评论
	deleted := comments.seed(&model.Comment{PageKey: "profile", AuthorType: model.AuthorTypeGuest, Body: "x"})
	deleted.Hide(model.HiddenReasonDeleted)
	_, err = svc.CreateReply(context.Background(), 1, deleted.ID, &dto.ReplyCreateRequest{Body: "y"})
	if !errors.Is(err, ErrParentDeleted) {
		t.Errorf("CreateReply() on deleted parent error = %v, want ErrParentDeleted", err)
	}

	// 父评论不存在
	_, err = svc.CreateReply(context.Background(), 1, 999, &dto.ReplyCreateRequest{Body: "y"})
	if !errors.Is(err, ErrParentNotFound) {
		t.Errorf("CreateReply() on missing parent error = %v, want ErrParentNotFound", err)
	}
}

func TestListHidesModeratedComments(t *testing.T) {
	comments := newFakeCommentStore()
	visible := comments.seed(&model.Comment{PageKey: "profile", AuthorType: model.AuthorTypeGuest, Body: "可见"})
	hidden := comments.seed(&model.Comment{PageKey: "profile", AuthorType: model.AuthorTypeGuest, Body: "被隐藏"})
	hidden.Hide(model.HiddenReasonAdmin)

	svc := newTestCommentService(comments, newFakeUserStore(), allowAll())

	data, err := svc.List(guestActor("fp"), "profile", 1, 20, true)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(data.Comments) != 1 || data.Comments[0].ID != visible.ID {
		t.Fatalf("List() = %d comments, want only the visible one", len(data.Comments))
	}
	if data.Total == nil || *data.Total != 1 {
		t.Errorf("Total = %v, want 1", data.Total)
	}

	_, err = svc.List(guestActor("fp"), "unknown", 1, 20, false)
	if !errors.Is(err, ErrPageKeyInvalid) {
		t.Errorf("List() with bad page key error = %v, want ErrPageKeyInvalid", err)
	}
}

func TestListRepliesOfHiddenParentNotFound(t *testing.T) {
	comments := newFakeCommentStore()
	parent := comments.seed(&model.Comment{PageKey: "profile", AuthorType: model.AuthorTypeGuest, Body: "x"})
	parent.Hide(model.HiddenReasonReported)

	svc := newTestCommentService(comments, newFakeUserStore(), allowAll())
	_, err := svc.ListReplies(guestActor("fp"), parent.ID, 1, 20)
	if !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("ListReplies() on hidden parent error = %v, want ErrCommentNotFound", err)
	}
}

func TestListMarksOwnComments(t *testing.T) {
	users := newFakeUserStore(&model.User{ID: 5, UserName: "alice", Nickname: "爱丽丝"})
	comments := newFakeCommentStore()
	svc := newTestCommentService(comments, users, allowAll())

	if _, err := svc.Create(context.Background(), userActor(5), &dto.CommentCreateRequest{PageKey: "profile", Body: "我的"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	data, err := svc.List(userActor(5), "profile", 1, 20, false)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(data.Comments) != 1 || !data.Comments[0].IsMine {
		t.Errorf("own comment should be marked IsMine, got %+v", data.Comments)
	}

	other, err := svc.List(userActor(6), "profile", 1, 20, false)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if other.Comments[0].IsMine {
		t.Error("foreign comment must not be marked IsMine")
	}
}
