package wishlist

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
	active map[uint]bool
}

func (f *fakeEvents) Create(context.Context, *event.Event, *event.EventImage, *event.EventAgenda) error {
	return nil
}
func (f *fakeEvents) GetByID(_ context.Context, id uint) (*event.Event, error) {
	if _, ok := f.active[id]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &event.Event{ID: id}, nil
}
func (f *fakeEvents) GetActiveByID(_ context.Context, id uint) (*event.Event, error) {
	if !f.active[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &event.Event{ID: id, Status: event.StatusActive}, nil
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

type fakeRepo struct {
	nextID uint
	items  map[uint]*WishListItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, items: make(map[uint]*WishListItem)}
}

func (f *fakeRepo) Create(_ context.Context, item *WishListItem) error {
	item.ID = f.nextID
	f.items[item.ID] = item
	f.nextID++
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uint) (*WishListItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeRepo) GetByEventAndUser(_ context.Context, eventID, userID uint) (*WishListItem, error) {
	for _, item := range f.items {
		if item.EventID == eventID && item.UserID == userID {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uint) ([]WishListItem, error) {
	var out []WishListItem
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]WishListItem, error) {
	var out []WishListItem
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	delete(f.items, id)
	return nil
}

func member(id uint) middleware.Actor {
	return middleware.Actor{UserID: id, Authenticated: true}
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	events := &fakeEvents{active: map[uint]bool{1: true, 2: false}}
	return NewService(repo, events, nopAudit{}), repo
}

func TestAddToWishlist(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.Add(context.Background(), 1, member(10), "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.EventID != 1 || item.UserID != 10 || item.Status != "active" {
		t.Errorf("item = %+v, want active entry for event 1 user 10", item)
	}
}

func TestAddDuplicateRejected(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Add(context.Background(), 1, member(10), ""); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.Add(context.Background(), 1, member(10), ""); !errors.Is(err, ErrAlreadyWishlisted) {
		t.Errorf("err = %v, want already wishlisted", err)
	}
}

func TestAddInactiveEventRejected(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Add(context.Background(), 2, member(10), ""); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want record not found for inactive event", err)
	}
}

func TestRemoveScoping(t *testing.T) {
	svc, repo := newTestService()

	item, _ := svc.Add(context.Background(), 1, member(10), "")

	if err := svc.Remove(context.Background(), item.ID, member(11), ""); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger remove err = %v, want permission denied", err)
	}

	staff := middleware.Actor{UserID: 2, IsStaff: true, Authenticated: true}
	if err := svc.Remove(context.Background(), item.ID, staff, ""); err != nil {
		t.Errorf("staff remove err = %v, want nil", err)
	}
	if len(repo.items) != 0 {
		t.Errorf("%d items left after remove, want 0", len(repo.items))
	}
}
