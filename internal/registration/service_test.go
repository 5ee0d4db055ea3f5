package registration

import (
	"context"
	"errors"
	"sync"
	"testing"

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

// fakeRepo keeps the ledger in memory behind a mutex, mirroring the
// serialization the row lock provides in Postgres.
type fakeRepo struct {
	mu       sync.Mutex
	nextID   uint
	capacity map[uint]int
	active   map[uint]bool
	members  map[uint]*EventMember
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID:   1,
		capacity: make(map[uint]int),
		active:   make(map[uint]bool),
		members:  make(map[uint]*EventMember),
	}
}

func (f *fakeRepo) addEvent(id uint, capacity int) {
	f.capacity[id] = capacity
	f.active[id] = true
}

func (f *fakeRepo) Join(_ context.Context, eventID, userID uint) (*JoinResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.active[eventID] {
		return nil, gorm.ErrRecordNotFound
	}
	capacity := f.capacity[eventID]

	count := 0
	exists := false
	for _, m := range f.members {
		if m.EventID == eventID {
			count++
			if m.UserID == userID {
				exists = true
			}
		}
	}

	if exists {
		return &JoinResult{Outcome: OutcomeAlreadyRegistered, Count: count, Capacity: capacity}, nil
	}
	if count >= capacity {
		return &JoinResult{Outcome: OutcomeCapacityExceeded, Count: count, Capacity: capacity}, nil
	}

	f.members[f.nextID] = &EventMember{ID: f.nextID, EventID: eventID, UserID: userID, AttendStatus: AttendWaiting, Status: "active", CreatedBy: userID, UpdatedBy: userID}
	f.nextID++
	return &JoinResult{Outcome: OutcomeRegistered, Count: count + 1, Capacity: capacity}, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uint) (*EventMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeRepo) GetByEventAndUser(_ context.Context, eventID, userID uint) (*EventMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members {
		if m.EventID == eventID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListByEvent(_ context.Context, eventID uint) ([]EventMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []EventMember
	for _, m := range f.members {
		if m.EventID == eventID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByEventAndStatus(_ context.Context, eventID uint, status string) ([]EventMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []EventMember
	for _, m := range f.members {
		if m.EventID == eventID && m.AttendStatus == status {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uint) ([]EventMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []EventMember
	for _, m := range f.members {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.AttendStatus = status
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, id)
	return nil
}

func (f *fakeRepo) CountByEvent(_ context.Context, eventID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, m := range f.members {
		if m.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func member(id uint) middleware.Actor {
	return middleware.Actor{UserID: id, Authenticated: true}
}

func staff(id uint) middleware.Actor {
	return middleware.Actor{UserID: id, IsStaff: true, Authenticated: true}
}

func TestJoinRegisters(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1, 5)
	svc := NewService(repo, nopAudit{})

	result, err := svc.Join(context.Background(), 1, member(10), "127.0.0.1")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if result.Outcome != OutcomeRegistered {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeRegistered)
	}
	if result.Count != 1 || result.Capacity != 5 {
		t.Errorf("occupancy = %d/%d, want 1/5", result.Count, result.Capacity)
	}

	m := repo.members[1]
	if m == nil || m.Status != "active" || m.CreatedBy != 10 || m.UpdatedBy != 10 {
		t.Errorf("member = %+v, want active row stamped with joining user", m)
	}
}

func TestJoinDuplicateIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1, 5)
	svc := NewService(repo, nopAudit{})

	if _, err := svc.Join(context.Background(), 1, member(10), ""); err != nil {
		t.Fatalf("first join: %v", err)
	}
	result, err := svc.Join(context.Background(), 1, member(10), "")
	if err != nil {
		t.Fatalf("second join: %v", err)
	}
	if result.Outcome != OutcomeAlreadyRegistered {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeAlreadyRegistered)
	}
	if result.Count != 1 {
		t.Errorf("count = %d, want 1 after duplicate join", result.Count)
	}
}

func TestJoinCapacityOne(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1, 1)
	svc := NewService(repo, nopAudit{})

	if _, err := svc.Join(context.Background(), 1, member(10), ""); err != nil {
		t.Fatalf("first join: %v", err)
	}
	result, err := svc.Join(context.Background(), 1, member(11), "")
	if err != nil {
		t.Fatalf("second join: %v", err)
	}
	if result.Outcome != OutcomeCapacityExceeded {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeCapacityExceeded)
	}
	if result.Count != 1 || result.Capacity != 1 {
		t.Errorf("occupancy = %d/%d, want 1/1", result.Count, result.Capacity)
	}
}

func TestJoinConcurrentLastSeat(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1, 1)
	svc := NewService(repo, nopAudit{})

	const attempts = 20
	var wg sync.WaitGroup
	outcomes := make([]string, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.Join(context.Background(), 1, member(uint(100+i)), "")
			if err != nil {
				t.Errorf("join %d: %v", i, err)
				return
			}
			outcomes[i] = result.Outcome
		}(i)
	}
	wg.Wait()

	registered := 0
	for _, o := range outcomes {
		if o == OutcomeRegistered {
			registered++
		}
	}
	if registered != 1 {
		t.Errorf("%d joins won the last seat, want exactly 1", registered)
	}

	count, _ := repo.CountByEvent(context.Background(), 1)
	if count != 1 {
		t.Errorf("ledger holds %d rows, want 1", count)
	}
}

func TestJoinMissingEvent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopAudit{})

	if _, err := svc.Join(context.Background(), 99, member(10), ""); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want record not found", err)
	}
}

func TestCancelScoping(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1, 5)
	svc := NewService(repo, nopAudit{})

	result, _ := svc.Join(context.Background(), 1, member(10), "")
	if result.Outcome != OutcomeRegistered {
		t.Fatalf("setup join failed: %v", result)
	}

	var memberID uint
	for id := range repo.members {
		memberID = id
	}

	if err := svc.Cancel(context.Background(), memberID, member(11), ""); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger cancel err = %v, want permission denied", err)
	}
	if err := svc.Cancel(context.Background(), memberID, staff(2), ""); err != nil {
		t.Errorf("staff cancel err = %v, want nil", err)
	}

	count, _ := repo.CountByEvent(context.Background(), 1)
	if count != 0 {
		t.Errorf("ledger holds %d rows after cancel, want 0", count)
	}
}

func TestCancelOwnRegistration(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1, 5)
	svc := NewService(repo, nopAudit{})

	svc.Join(context.Background(), 1, member(10), "")
	var memberID uint
	for id := range repo.members {
		memberID = id
	}

	if err := svc.Cancel(context.Background(), memberID, member(10), ""); err != nil {
		t.Errorf("owner cancel err = %v, want nil", err)
	}
}

func TestUpdateAttendanceValidation(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1, 5)
	svc := NewService(repo, nopAudit{})

	svc.Join(context.Background(), 1, member(10), "")
	var memberID uint
	for id := range repo.members {
		memberID = id
	}

	if _, err := svc.UpdateAttendance(context.Background(), memberID, "vanished", staff(2), ""); !errors.Is(err, ErrInvalidAttendStatus) {
		t.Errorf("err = %v, want invalid attend status", err)
	}

	m, err := svc.UpdateAttendance(context.Background(), memberID, AttendAttending, staff(2), "")
	if err != nil {
		t.Fatalf("UpdateAttendance: %v", err)
	}
	if m.AttendStatus != AttendAttending {
		t.Errorf("attend status = %q, want %q", m.AttendStatus, AttendAttending)
	}
}
