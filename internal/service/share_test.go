package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/services"
)

type shareFixture struct {
	shareRepo   *fakeShareRepo
	chatRepo    *fakeChatRepo
	messageRepo *fakeMessageRepo
	svc         services.ShareService
}

func newShareFixture() *shareFixture {
	f := &shareFixture{
		shareRepo:   newFakeShareRepo(),
		chatRepo:    newFakeChatRepo(),
		messageRepo: &fakeMessageRepo{},
	}
	f.svc = NewShareService(f.shareRepo, f.chatRepo, f.messageRepo, testLogger)
	return f
}

func (f *shareFixture) seedChat(t *testing.T, userID string) *models.Chat {
	t.Helper()
	chat := &models.Chat{UserID: userID, Title: "Konvèsasyon"}
	if err := f.chatRepo.CreateChat(context.Background(), chat); err != nil {
		t.Fatalf("CreateChat: %v", err)
	}
	return chat
}

func TestCreateShareMintsToken(t *testing.T) {
	f := newShareFixture()
	chat := f.seedChat(t, "owner")

	share, err := f.svc.CreateShare(context.Background(), "owner", &services.CreateShareRequest{ChatID: chat.ID})
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}
	if share.ShareToken == "" {
		t.Error("token is empty")
	}
	if !share.IsPublic {
		t.Error("share not public")
	}
	if share.ExpiresAt != nil {
		t.Errorf("expires_at = %v, want nil for a permanent link", share.ExpiresAt)
	}
}

func TestCreateShareWithExpiry(t *testing.T) {
	f := newShareFixture()
	chat := f.seedChat(t, "owner")

	share, err := f.svc.CreateShare(context.Background(), "owner", &services.CreateShareRequest{
		ChatID:        chat.ID,
		ExpiresInDays: 7,
	})
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}
	if share.ExpiresAt == nil {
		t.Fatal("expires_at is nil")
	}
	if until := time.Until(*share.ExpiresAt); until < 6*24*time.Hour || until > 8*24*time.Hour {
		t.Errorf("expires in %v, want about 7 days", until)
	}
}

func TestCreateShareRejectsForeignChat(t *testing.T) {
	f := newShareFixture()
	chat := f.seedChat(t, "owner")

	_, err := f.svc.CreateShare(context.Background(), "intruder", &services.CreateShareRequest{ChatID: chat.ID})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if len(f.shareRepo.shares) != 0 {
		t.Errorf("shares = %d, want 0", len(f.shareRepo.shares))
	}
}

func TestGetSharedViewHidesOwner(t *testing.T) {
	f := newShareFixture()
	chat := f.seedChat(t, "owner")
	f.messageRepo.AppendMessage(context.Background(), &models.Message{ChatID: chat.ID, Role: models.RoleUser, Content: "alo"})
	f.messageRepo.AppendMessage(context.Background(), &models.Message{ChatID: chat.ID, Role: models.RoleAssistant, Content: "bonjou"})

	share, err := f.svc.CreateShare(context.Background(), "owner", &services.CreateShareRequest{ChatID: chat.ID})
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}

	view, err := f.svc.GetSharedView(context.Background(), share.ShareToken)
	if err != nil {
		t.Fatalf("GetSharedView: %v", err)
	}
	if view.Chat.UserID != "" {
		t.Errorf("user_id = %q, must be blanked on the public page", view.Chat.UserID)
	}
	if len(view.Messages) != 2 {
		t.Errorf("messages = %d, want 2", len(view.Messages))
	}
}

func TestGetSharedViewUnknownToken(t *testing.T) {
	f := newShareFixture()

	if _, err := f.svc.GetSharedView(context.Background(), "no-such-token"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetSharedViewExpiredLink(t *testing.T) {
	f := newShareFixture()
	chat := f.seedChat(t, "owner")

	past := time.Now().Add(-time.Hour)
	share := &models.SharedConversation{
		ChatID:     chat.ID,
		ShareToken: "expired-token",
		IsPublic:   true,
		CreatedAt:  time.Now().Add(-48 * time.Hour),
		ExpiresAt:  &past,
	}
	f.shareRepo.Create(context.Background(), share)

	if _, err := f.svc.GetSharedView(context.Background(), "expired-token"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for an expired link", err)
	}
}

func TestRevokeSharesKillsLinks(t *testing.T) {
	f := newShareFixture()
	chat := f.seedChat(t, "owner")

	share, err := f.svc.CreateShare(context.Background(), "owner", &services.CreateShareRequest{ChatID: chat.ID})
	if err != nil {
		t.Fatalf("CreateShare: %v", err)
	}

	if err := f.svc.RevokeShares(context.Background(), chat.ID, "owner"); err != nil {
		t.Fatalf("RevokeShares: %v", err)
	}
	if _, err := f.svc.GetSharedView(context.Background(), share.ShareToken); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after revocation", err)
	}
}
