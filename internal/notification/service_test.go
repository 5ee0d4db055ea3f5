package notification

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/sandeshj07/event-management-backend/middleware"
)

type fakeRepo struct {
	nextID uint
	inApp  map[uint]*InAppNotification
	logs   []*NotificationLog
	tokens map[uint][]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID: 1,
		inApp:  make(map[uint]*InAppNotification),
		tokens: make(map[uint][]string),
	}
}

func (f *fakeRepo) CreateInApp(_ context.Context, notifications []InAppNotification) error {
	for i := range notifications {
		n := notifications[i]
		n.ID = f.nextID
		f.inApp[n.ID] = &n
		f.nextID++
	}
	return nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uint, limit int) ([]InAppNotification, error) {
	var out []InAppNotification
	for _, n := range f.inApp {
		if n.UserID == userID {
			out = append(out, *n)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uint) (*InAppNotification, error) {
	n, ok := f.inApp[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (f *fakeRepo) MarkRead(_ context.Context, id uint) error {
	if n, ok := f.inApp[id]; ok {
		n.IsRead = true
	}
	return nil
}

func (f *fakeRepo) MarkAllRead(_ context.Context, userID uint) error {
	for _, n := range f.inApp {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeRepo) UnreadCount(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, n := range f.inApp {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) CreateLog(_ context.Context, entry *NotificationLog) error {
	f.logs = append(f.logs, entry)
	return nil
}

func (f *fakeRepo) UpdateLogStatus(_ context.Context, _ uint, _ string, _ *string) error {
	return nil
}

func (f *fakeRepo) ListLogs(_ context.Context, _ int) ([]NotificationLog, error) {
	var out []NotificationLog
	for _, l := range f.logs {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeRepo) UpsertDeviceToken(_ context.Context, token *FCMDeviceToken) error {
	f.tokens[token.UserID] = append(f.tokens[token.UserID], token.DeviceToken)
	return nil
}

func (f *fakeRepo) DeactivateDeviceToken(_ context.Context, userID uint, deviceToken string) error {
	kept := f.tokens[userID][:0]
	for _, t := range f.tokens[userID] {
		if t != deviceToken {
			kept = append(kept, t)
		}
	}
	f.tokens[userID] = kept
	return nil
}

func (f *fakeRepo) ActiveTokensForUsers(_ context.Context, userIDs []uint) ([]string, error) {
	var out []string
	for _, id := range userIDs {
		out = append(out, f.tokens[id]...)
	}
	return out, nil
}

type fakeChannel struct {
	sent [][]string
}

func (f *fakeChannel) Send(recipients []string, _, _ string) error {
	f.sent = append(f.sent, recipients)
	return nil
}

func member(id uint) middleware.Actor {
	return middleware.Actor{UserID: id, Authenticated: true}
}

func TestNotifyUsersWritesPerRecipient(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeChannel{})

	eventID := uint(5)
	if err := svc.NotifyUsers(context.Background(), []uint{10, 11, 12}, "New event", "come along", CategoryEvent, &eventID); err != nil {
		t.Fatalf("NotifyUsers: %v", err)
	}

	if len(repo.inApp) != 3 {
		t.Errorf("in-app rows = %d, want 3", len(repo.inApp))
	}
	count, _ := repo.UnreadCount(context.Background(), 11)
	if count != 1 {
		t.Errorf("unread for user 11 = %d, want 1", count)
	}
	if len(repo.logs) == 0 || repo.logs[0].Channel != "in_app" {
		t.Error("delivery was not logged")
	}
}

func TestNotifyUsersEmptyListIsNoop(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeChannel{})

	if err := svc.NotifyUsers(context.Background(), nil, "t", "m", CategorySystem, nil); err != nil {
		t.Fatalf("NotifyUsers: %v", err)
	}
	if len(repo.inApp) != 0 || len(repo.logs) != 0 {
		t.Error("empty recipient list still produced writes")
	}
}

func TestMarkReadScoping(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeChannel{})

	svc.NotifyUsers(context.Background(), []uint{10}, "t", "m", CategorySystem, nil)
	var id uint
	for nid := range repo.inApp {
		id = nid
	}

	if err := svc.MarkRead(context.Background(), id, member(11)); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger mark read err = %v, want permission denied", err)
	}
	if err := svc.MarkRead(context.Background(), id, member(10)); err != nil {
		t.Errorf("owner mark read err = %v, want nil", err)
	}
	if !repo.inApp[id].IsRead {
		t.Error("notification still unread")
	}
}

func TestMarkAllRead(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeChannel{})

	svc.NotifyUsers(context.Background(), []uint{10, 10, 11}, "t", "m", CategorySystem, nil)

	if err := svc.MarkAllRead(context.Background(), member(10)); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}

	mine, _ := repo.UnreadCount(context.Background(), 10)
	theirs, _ := repo.UnreadCount(context.Background(), 11)
	if mine != 0 {
		t.Errorf("unread for user 10 = %d, want 0", mine)
	}
	if theirs != 1 {
		t.Errorf("unread for user 11 = %d, want 1", theirs)
	}
}

func TestRegisterAndUnregisterDevice(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeChannel{})

	if err := svc.RegisterDevice(context.Background(), &RegisterDeviceRequest{DeviceToken: "tok-1", DeviceType: "android"}, member(10)); err != nil {
		t.Fatalf("RegisterDevice: %v", err)
	}

	tokens, _ := repo.ActiveTokensForUsers(context.Background(), []uint{10})
	if len(tokens) != 1 || tokens[0] != "tok-1" {
		t.Errorf("tokens = %v, want [tok-1]", tokens)
	}

	if err := svc.UnregisterDevice(context.Background(), "tok-1", member(10)); err != nil {
		t.Fatalf("UnregisterDevice: %v", err)
	}
	tokens, _ = repo.ActiveTokensForUsers(context.Background(), []uint{10})
	if len(tokens) != 0 {
		t.Errorf("tokens = %v, want none", tokens)
	}
}
