package event

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/internal/auth"
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

type fakeUsers struct{}

func (fakeUsers) Create(*auth.User) error                 { return nil }
func (fakeUsers) FindByEmail(string) (*auth.User, error)  { return nil, gorm.ErrRecordNotFound }
func (fakeUsers) FindByID(uint) (auth.User, error)        { return auth.User{}, gorm.ErrRecordNotFound }
func (fakeUsers) Update(*auth.User) error                 { return nil }
func (fakeUsers) ListActiveEmails() ([]string, error)     { return nil, nil }
func (fakeUsers) ListActiveIDs() ([]uint, error)          { return nil, nil }

type fakeRepo struct {
	nextID uint
	events map[uint]*Event
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, events: make(map[uint]*Event)}
}

func (f *fakeRepo) Create(_ context.Context, e *Event, _ *EventImage, _ *EventAgenda) error {
	e.ID = f.nextID
	f.events[e.ID] = e
	f.nextID++
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uint) (*Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeRepo) GetActiveByID(_ context.Context, id uint) (*Event, error) {
	e, ok := f.events[id]
	if !ok || e.Status != StatusActive {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeRepo) ListAll(_ context.Context, _ string) ([]Event, error) { return nil, nil }

func (f *fakeRepo) ListActive(_ context.Context, _ string, _, _ int) ([]Event, int64, error) {
	var out []Event
	for _, e := range f.events {
		if e.Status == StatusActive {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) ListByStatus(_ context.Context, status string) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if e.Status == status {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, e *Event) error {
	f.events[e.ID] = e
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeRepo) GetImages(context.Context, uint) ([]EventImage, error)   { return nil, nil }
func (f *fakeRepo) GetAgendas(context.Context, uint) ([]EventAgenda, error) { return nil, nil }
func (f *fakeRepo) RegistrationCount(context.Context, uint) (int, error)    { return 0, nil }

func staff(id uint) middleware.Actor {
	return middleware.Actor{UserID: id, IsStaff: true, Authenticated: true}
}

func validCreateRequest() *CreateEventRequest {
	return &CreateEventRequest{
		CategoryID:     1,
		Name:           "Autumn Hike",
		StartDate:      "2026-10-03",
		EndDate:        "2026-10-04",
		MaximumAttende: 25,
	}
}

func TestCreateEvent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeUsers{}, nopAudit{})

	e, err := svc.CreateEvent(context.Background(), validCreateRequest(), "", staff(2), "")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if e.Status != StatusActive {
		t.Errorf("status = %q, want active default", e.Status)
	}
	if e.MaximumAttende != 25 {
		t.Errorf("capacity = %d, want 25", e.MaximumAttende)
	}
}

func TestCreateEventBadDates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeUsers{}, nopAudit{})

	req := validCreateRequest()
	req.StartDate = "03-10-2026"
	if _, err := svc.CreateEvent(context.Background(), req, "", staff(2), ""); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("err = %v, want invalid date", err)
	}

	req = validCreateRequest()
	req.EndDate = "2026-10-01"
	if _, err := svc.CreateEvent(context.Background(), req, "", staff(2), ""); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("err = %v, want invalid date range", err)
	}
}

func TestCreateEventBadStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeUsers{}, nopAudit{})

	req := validCreateRequest()
	req.Status = "draft"
	if _, err := svc.CreateEvent(context.Background(), req, "", staff(2), ""); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("err = %v, want invalid status", err)
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeUsers{}, nopAudit{})

	e, _ := svc.CreateEvent(context.Background(), validCreateRequest(), "", staff(2), "")

	if _, err := svc.UpdateEventStatus(context.Background(), e.ID, StatusCompleted, staff(2), ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.UpdateEventStatus(context.Background(), e.ID, StatusActive, staff(2), ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want invalid transition", err)
	}
}

func TestPublicDetailHidesInactive(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeUsers{}, nopAudit{})

	e, _ := svc.CreateEvent(context.Background(), validCreateRequest(), "", staff(2), "")
	if _, err := svc.UpdateEventStatus(context.Background(), e.ID, StatusInactive, staff(2), ""); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := svc.GetPublicEvent(context.Background(), e.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("public read err = %v, want record not found", err)
	}
	if _, err := svc.GetEventByID(context.Background(), e.ID); err != nil {
		t.Errorf("staff read err = %v, want nil", err)
	}
}

func TestIsFull(t *testing.T) {
	e := &Event{MaximumAttende: 2}

	e.RegistrationCount = 1
	if e.IsFull() {
		t.Error("1/2 should not be full")
	}
	e.RegistrationCount = 2
	if !e.IsFull() {
		t.Error("2/2 should be full")
	}
}
