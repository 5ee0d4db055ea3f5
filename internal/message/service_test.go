package message

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/middleware"
)

type nopAudit struct{}

func (nopAudit) LogAction(context.Context, *uint, *uint, string, map[string]interface{}, string, string) error {
	return nil
}
func (nopAudit) GetAuditLogs(context.Context, auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}
func (nopAudit) GetAuditLogByID(context.Context, uint) (*auditlog.AuditLogResponse, error) {
	return nil, nil
}

type fakeRepo struct {
	mu     sync.Mutex
	nextID uint
	msgs   map[uint]*AdminMessage
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, msgs: make(map[uint]*AdminMessage)}
}

func (f *fakeRepo) Create(_ context.Context, msg *AdminMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = f.nextID
	f.msgs[msg.ID] = msg
	f.nextID++
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uint) (*AdminMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.msgs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeRepo) List(_ context.Context, status string) ([]AdminMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []AdminMessage
	for _, m := range f.msgs {
		if status == "" || m.Status == status {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBySender(_ context.Context, senderID uint) ([]AdminMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []AdminMessage
	for _, m := range f.msgs {
		if m.SenderID != nil && *m.SenderID == senderID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) Respond(_ context.Context, id uint, response string, staffID uint) (*AdminMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.msgs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if m.Status == StatusResponded {
		return nil, ErrAlreadyResponded
	}
	now := time.Now()
	m.Status = StatusResponded
	m.IsRead = true
	m.Response = response
	m.RespondedBy = &staffID
	m.RespondedAt = &now
	return m, nil
}

func member(id uint) middleware.Actor {
	return middleware.Actor{UserID: id, Email: "member@example.com", Authenticated: true}
}

func staff(id uint) middleware.Actor {
	return middleware.Actor{UserID: id, IsStaff: true, Authenticated: true}
}

func TestSendRecordsSender(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopAudit{})

	msg, err := svc.Send(context.Background(), &SendMessageRequest{Subject: "venue", Body: "is parking available?"}, member(10), "127.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.SenderID == nil || *msg.SenderID != 10 {
		t.Errorf("sender = %v, want 10", msg.SenderID)
	}
	if msg.IPAddress != "127.0.0.1" || msg.UserAgent != "test-agent" {
		t.Errorf("metadata = %q/%q, want request IP and agent", msg.IPAddress, msg.UserAgent)
	}
	if msg.Status != StatusPending {
		t.Errorf("status = %q, want pending", msg.Status)
	}
}

func TestContactHasNoSenderAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopAudit{})

	msg, err := svc.Contact(context.Background(), &ContactRequest{
		Name: "Visitor", Email: "visitor@example.com", Subject: "question", Body: "when is the next event?",
	}, "10.0.0.1", "browser")
	if err != nil {
		t.Fatalf("Contact: %v", err)
	}
	if msg.SenderID != nil {
		t.Errorf("sender = %v, want nil for anonymous contact", msg.SenderID)
	}
	if msg.SenderEmail != "visitor@example.com" {
		t.Errorf("sender email = %q, want form address", msg.SenderEmail)
	}
}

func TestRespondOnce(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopAudit{})

	msg, _ := svc.Send(context.Background(), &SendMessageRequest{Subject: "s", Body: "b"}, member(10), "", "")

	responded, err := svc.Respond(context.Background(), msg.ID, "yes, lot B", staff(2), "")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if responded.Status != StatusResponded || responded.Response != "yes, lot B" {
		t.Errorf("message = %+v, want responded with text", responded)
	}
	if responded.RespondedBy == nil || *responded.RespondedBy != 2 {
		t.Errorf("responded by = %v, want 2", responded.RespondedBy)
	}

	_, err = svc.Respond(context.Background(), msg.ID, "second answer", staff(3), "")
	if !errors.Is(err, ErrAlreadyResponded) {
		t.Errorf("second respond err = %v, want already responded", err)
	}
}

func TestRespondConcurrentExactlyOnce(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopAudit{})

	msg, _ := svc.Send(context.Background(), &SendMessageRequest{Subject: "s", Body: "b"}, member(10), "", "")

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Respond(context.Background(), msg.ID, "answer", staff(uint(2+i)), "")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrAlreadyResponded) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("%d responses landed, want exactly 1", succeeded)
	}
}

func TestGetByIDScoping(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopAudit{})

	msg, _ := svc.Send(context.Background(), &SendMessageRequest{Subject: "s", Body: "b"}, member(10), "", "")

	if _, err := svc.GetByID(context.Background(), msg.ID, member(10)); err != nil {
		t.Errorf("sender read err = %v, want nil", err)
	}
	if _, err := svc.GetByID(context.Background(), msg.ID, member(11)); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger read err = %v, want permission denied", err)
	}
	if _, err := svc.GetByID(context.Background(), msg.ID, staff(2)); err != nil {
		t.Errorf("staff read err = %v, want nil", err)
	}
}

func TestAnonymousMessageOnlyStaffReadable(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopAudit{})

	msg, _ := svc.Contact(context.Background(), &ContactRequest{
		Name: "Visitor", Email: "v@example.com", Subject: "s", Body: "b",
	}, "", "")

	if _, err := svc.GetByID(context.Background(), msg.ID, member(10)); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("member read err = %v, want permission denied", err)
	}
	if _, err := svc.GetByID(context.Background(), msg.ID, staff(2)); err != nil {
		t.Errorf("staff read err = %v, want nil", err)
	}
}
