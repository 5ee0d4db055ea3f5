package comment

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/internal/event"
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

type fakeEvents struct {
	events map[uint]*event.Event
}

func (f *fakeEvents) Create(context.Context, *event.Event, *event.EventImage, *event.EventAgenda) error {
	return nil
}
func (f *fakeEvents) GetByID(_ context.Context, id uint) (*event.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}
func (f *fakeEvents) GetActiveByID(ctx context.Context, id uint) (*event.Event, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeEvents) ListAll(context.Context, string) ([]event.Event, error) { return nil, nil }
func (f *fakeEvents) ListActive(context.Context, string, int, int) ([]event.Event, int64, error) {
	return nil, 0, nil
}
func (f *fakeEvents) ListByStatus(context.Context, string) ([]event.Event, error) { return nil, nil }
func (f *fakeEvents) Update(context.Context, *event.Event) error                  { return nil }
func (f *fakeEvents) Delete(context.Context, uint) error                          { return nil }
func (f *fakeEvents) GetImages(context.Context, uint) ([]event.EventImage, error) { return nil, nil }
func (f *fakeEvents) GetAgendas(context.Context, uint) ([]event.EventAgenda, error) {
	return nil, nil
}
func (f *fakeEvents) RegistrationCount(context.Context, uint) (int, error) { return 0, nil }

type fakeComments struct {
	nextID   uint
	comments map[uint]*EventComment
}

func newFakeComments() *fakeComments {
	return &fakeComments{nextID: 1, comments: make(map[uint]*EventComment)}
}

func (f *fakeComments) Create(_ context.Context, c *EventComment) error {
	c.ID = f.nextID
	if c.Status == "" {
		c.Status = StatusActive
	}
	f.comments[c.ID] = c
	f.nextID++
	return nil
}

func (f *fakeComments) GetByID(_ context.Context, id uint) (*EventComment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeComments) ListByEvent(_ context.Context, eventID uint) ([]EventComment, error) {
	var out []EventComment
	for _, c := range f.comments {
		if c.EventID == eventID && c.ParentID == nil && c.Status == StatusActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComments) Deactivate(_ context.Context, id uint) error {
	for _, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == id {
			c.Status = StatusInactive
		}
	}
	f.comments[id].Status = StatusInactive
	return nil
}

func newTestService() (Service, *fakeComments) {
	events := &fakeEvents{events: map[uint]*event.Event{
		1: {ID: 1, Name: "Spring Meetup"},
		2: {ID: 2, Name: "Summer Gala"},
	}}
	comments := newFakeComments()
	return NewService(comments, events, nopAudit{}), comments
}

func member(id uint) middleware.Actor {
	return middleware.Actor{UserID: id, Authenticated: true}
}

func TestAddTopLevelComment(t *testing.T) {
	svc, _ := newTestService()

	c, err := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "looking forward to this"}, member(10), "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c.EventID != 1 || c.ParentID != nil {
		t.Errorf("comment = %+v, want top-level on event 1", c)
	}
}

func TestAddReply(t *testing.T) {
	svc, _ := newTestService()

	parent, err := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "anyone carpooling?"}, member(10), "")
	if err != nil {
		t.Fatalf("Add parent: %v", err)
	}

	reply, err := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "I am", ParentID: &parent.ID}, member(11), "")
	if err != nil {
		t.Fatalf("Add reply: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != parent.ID {
		t.Errorf("reply parent = %v, want %d", reply.ParentID, parent.ID)
	}
}

func TestReplyParentOnDifferentEventRejected(t *testing.T) {
	svc, _ := newTestService()

	parent, err := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "hello"}, member(10), "")
	if err != nil {
		t.Fatalf("Add parent: %v", err)
	}

	_, err = svc.Add(context.Background(), 2, &CreateCommentRequest{Body: "cross-post", ParentID: &parent.ID}, member(11), "")
	if !errors.Is(err, ErrParentMismatch) {
		t.Errorf("err = %v, want parent mismatch", err)
	}
}

func TestReplyToReplyRejected(t *testing.T) {
	svc, _ := newTestService()

	parent, _ := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "a"}, member(10), "")
	reply, _ := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "b", ParentID: &parent.ID}, member(11), "")

	_, err := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "c", ParentID: &reply.ID}, member(12), "")
	if !errors.Is(err, ErrNestedReply) {
		t.Errorf("err = %v, want nested reply rejection", err)
	}
}

func TestAddEmptyBodyRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "   "}, member(10), "")
	if !errors.Is(err, ErrEmptyBody) {
		t.Errorf("err = %v, want empty body rejection", err)
	}
}

func TestDeleteScoping(t *testing.T) {
	svc, repo := newTestService()

	c, _ := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "mine"}, member(10), "")

	if err := svc.Delete(context.Background(), c.ID, member(11), ""); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger delete err = %v, want permission denied", err)
	}
	if err := svc.Delete(context.Background(), c.ID, member(10), ""); err != nil {
		t.Errorf("author delete err = %v, want nil", err)
	}
	if repo.comments[c.ID].Status != StatusInactive {
		t.Error("comment not deactivated after delete")
	}
}

func TestDeletedCommentHiddenButRetained(t *testing.T) {
	svc, repo := newTestService()

	kept, _ := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "keep me"}, member(10), "")
	c, _ := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "remove me"}, member(10), "")
	reply, _ := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "me too", ParentID: &c.ID}, member(11), "")

	if err := svc.Delete(context.Background(), c.ID, member(10), ""); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	list, err := svc.ListByEvent(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(list) != 1 || list[0].ID != kept.ID {
		t.Errorf("list = %+v, want only comment %d", list, kept.ID)
	}

	// Rows survive with inactive status instead of being removed.
	if repo.comments[c.ID] == nil || repo.comments[c.ID].Status != StatusInactive {
		t.Error("deleted comment missing or not inactive in storage")
	}
	if repo.comments[reply.ID] == nil || repo.comments[reply.ID].Status != StatusInactive {
		t.Error("reply missing or not inactive in storage")
	}

	// A deactivated comment no longer accepts replies or repeat deletes.
	if _, err := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "late", ParentID: &c.ID}, member(12), ""); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("reply to inactive err = %v, want record not found", err)
	}
	if err := svc.Delete(context.Background(), c.ID, member(10), ""); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("repeat delete err = %v, want record not found", err)
	}
}

func TestStaffDeletesAnyComment(t *testing.T) {
	svc, _ := newTestService()

	c, _ := svc.Add(context.Background(), 1, &CreateCommentRequest{Body: "spam"}, member(10), "")

	staff := middleware.Actor{UserID: 2, IsStaff: true, Authenticated: true}
	if err := svc.Delete(context.Background(), c.ID, staff, ""); err != nil {
		t.Errorf("staff delete err = %v, want nil", err)
	}
}
