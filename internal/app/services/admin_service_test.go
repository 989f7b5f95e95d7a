package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStudents struct {
	students map[int64]*models.Student
}

func (f *fakeStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if s, ok := f.students[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrContestantNotFound
}

func (f *fakeStudents) GetRequirements(_ context.Context, id int64) (*models.Requirements, error) {
	return &models.Requirements{StudentID: id, PhotoURL: "https://cdn.test/p.jpg"}, nil
}

func (f *fakeStudents) GetHealth(_ context.Context, id int64) (*models.HealthFitness, error) {
	return &models.HealthFitness{StudentID: id, FitToPerform: true}, nil
}

func (f *fakeStudents) GetConsent(_ context.Context, id int64) (*models.Consent, error) {
	return &models.Consent{StudentID: id, Agreed: true}, nil
}

type fakeEntries struct {
	singles      map[int64]*models.Single // by student
	members      map[int64]*models.GroupMember
	groups       map[int64]*models.Group
	performances map[int64]*models.Performance
	statuses     map[string]models.Status
	lastPage     *models.Page
}

func (f *fakeEntries) GetPerformance(_ context.Context, id int64) (*models.Performance, error) {
	return f.performances[id], nil
}

func (f *fakeEntries) GetSingle(_ context.Context, id int64) (*models.Single, error) {
	for _, s := range f.singles {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrSingleEntryNotFound
}

func (f *fakeEntries) GetSingleByStudent(_ context.Context, studentID int64) (*models.Single, error) {
	return f.singles[studentID], nil
}

func (f *fakeEntries) GetMembershipByStudent(_ context.Context, studentID int64) (*models.GroupMember, error) {
	return f.members[studentID], nil
}

func (f *fakeEntries) GetEndorsement(_ context.Context, singleID, groupID *int64) (*models.Endorsement, error) {
	return &models.Endorsement{SingleID: singleID, GroupID: groupID, EndorserName: "Ana Reyes"}, nil
}

func (f *fakeEntries) ListGroups(_ context.Context, _ models.GroupFilter, page *models.Page) ([]*models.Group, int64, error) {
	f.lastPage = page
	out := make([]*models.Group, 0, len(f.groups))
	for _, g := range f.groups {
		out = append(out, g)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEntries) GetGroup(_ context.Context, id int64) (*models.Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	copied := *g
	return &copied, nil
}

func (f *fakeEntries) UpdateSingleStatus(_ context.Context, id int64, status models.Status) error {
	if _, err := f.GetSingle(context.Background(), id); err != nil {
		return err
	}
	f.statuses["single"] = status
	return nil
}

func (f *fakeEntries) UpdateGroupStatus(_ context.Context, id int64, status models.Status) error {
	if _, ok := f.groups[id]; !ok {
		return apperrors.ErrGroupNotFound
	}
	f.statuses["group"] = status
	return nil
}

type fakeGuests struct {
	guests map[int64]*models.Guest
	status models.Status
}

func (f *fakeGuests) GetByID(_ context.Context, id int64) (*models.Guest, error) {
	if g, ok := f.guests[id]; ok {
		return g, nil
	}
	return nil, apperrors.ErrGuestNotFound
}

func (f *fakeGuests) List(context.Context, models.GuestFilter, *models.Page) ([]*models.Guest, int64, error) {
	out := make([]*models.Guest, 0, len(f.guests))
	for _, g := range f.guests {
		out = append(out, g)
	}
	return out, int64(len(out)), nil
}

func (f *fakeGuests) UpdateStatus(_ context.Context, id int64, status models.Status) error {
	if _, ok := f.guests[id]; !ok {
		return apperrors.ErrGuestNotFound
	}
	f.status = status
	return nil
}

type fakeContestants struct {
	rows     []*models.ContestantEntry
	total    int64
	lastPage *models.Page
	filter   models.ContestantFilter
}

func (f *fakeContestants) List(_ context.Context, filter models.ContestantFilter, page *models.Page) ([]*models.ContestantEntry, int64, error) {
	f.filter = filter
	f.lastPage = page
	return f.rows, f.total, nil
}

type adminFixture struct {
	entries       *fakeEntries
	guests        *fakeGuests
	contestants   *fakeContestants
	registrations *fakeRegistrations
	storage       *fakeStorage
	events        *fakePublisher
	svc           AdminService
}

func newAdminFixture() *adminFixture {
	perf := &models.Performance{ID: 100, Title: "Sailor's Ballad", Category: models.CategorySinging}
	group := &models.Group{ID: 20, Name: "Harbor Voices", PerformanceID: 101,
		Performance: &models.Performance{ID: 101, Title: "Sea Shanty", Category: models.CategoryDancing},
		Members:     []*models.GroupMember{{ID: 1, GroupID: 20, StudentID: 2, Role: models.MemberLeader}},
		MemberCount: 1}

	f := &adminFixture{
		entries: &fakeEntries{
			singles:      map[int64]*models.Single{1: {ID: 10, StudentID: 1, PerformanceID: 100, Status: models.StatusPending}},
			members:      map[int64]*models.GroupMember{2: {ID: 1, GroupID: 20, StudentID: 2, Role: models.MemberLeader}},
			groups:       map[int64]*models.Group{20: group},
			performances: map[int64]*models.Performance{100: perf},
			statuses:     map[string]models.Status{},
		},
		guests:        &fakeGuests{guests: map[int64]*models.Guest{30: {ID: 30, FirstName: "Rosa", LastName: "Santos"}}},
		contestants:   &fakeContestants{},
		registrations: &fakeRegistrations{imageURL: []string{"https://cdn.test/qr-codes/a.png", "https://cdn.test/qr-codes/b.png"}},
		storage:       newFakeStorage(),
		events:        &fakePublisher{},
	}
	students := &fakeStudents{students: map[int64]*models.Student{
		1: {ID: 1, FirstName: "Juan", LastName: "Dela Cruz"},
		2: {ID: 2, FirstName: "Pedro", LastName: "Cruz"},
		3: {ID: 3, FirstName: "Orphan", LastName: "Row"},
	}}
	f.svc = NewAdminService(AdminStores{
		Contestants:   f.contestants,
		Students:      students,
		Entries:       f.entries,
		Guests:        f.guests,
		Passes:        newFakePasses(),
		Registrations: f.registrations,
	}, f.storage, f.events, testLogger)
	return f
}

func TestListContestants_Pagination(t *testing.T) {
	f := newAdminFixture()
	f.contestants.rows = []*models.ContestantEntry{{StudentID: 1, FirstName: "Juan", CreatedAt: time.Now()}}
	f.contestants.total = 45

	filter := models.ContestantFilter{EntryType: "single", Search: "juan"}
	resp, err := f.svc.ListContestants(context.Background(), filter, models.Page{Number: 2, Size: 20})
	require.NoError(t, err)

	assert.Equal(t, filter, f.contestants.filter)
	assert.Equal(t, &models.Page{Number: 2, Size: 20}, f.contestants.lastPage)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, int64(45), resp.Pagination.TotalItems)
	assert.Len(t, resp.Contestants, 1)
}

func TestGetContestant_Single(t *testing.T) {
	f := newAdminFixture()

	resp, err := f.svc.GetContestant(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.EntrySingle, resp.EntryType)
	assert.Equal(t, int64(10), resp.Single.ID)
	assert.Equal(t, "Sailor's Ballad", resp.Performance.Title)
	require.NotNil(t, resp.Endorsement)
	assert.Equal(t, int64(10), *resp.Endorsement.SingleID)
	assert.Nil(t, resp.Group)
}

func TestGetContestant_GroupMember(t *testing.T) {
	f := newAdminFixture()

	resp, err := f.svc.GetContestant(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, models.EntryGroup, resp.EntryType)
	assert.Equal(t, models.MemberLeader, resp.MemberRole)
	assert.Equal(t, "Harbor Voices", resp.Group.Name)
	assert.Nil(t, resp.Group.Members)
	assert.Equal(t, "Sea Shanty", resp.Performance.Title)
}

func TestGetContestant_NotFound(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.GetContestant(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrContestantNotFound)

	_, err = f.svc.GetContestant(context.Background(), 3)
	assert.ErrorIs(t, err, apperrors.ErrContestantNotFound)
}

func TestUpdateStatus(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.UpdateStatus(ctx, KindSingle, 10, models.StatusApproved))
	require.NoError(t, f.svc.UpdateStatus(ctx, KindGroup, 20, models.StatusRejected))
	require.NoError(t, f.svc.UpdateStatus(ctx, KindGuest, 30, models.StatusApproved))

	assert.Equal(t, models.StatusApproved, f.entries.statuses["single"])
	assert.Equal(t, models.StatusRejected, f.entries.statuses["group"])
	assert.Equal(t, models.StatusApproved, f.guests.status)
	assert.Len(t, f.events.types(), 3)

	assert.ErrorIs(t, f.svc.UpdateStatus(ctx, KindSingle, 10, "archived"), apperrors.ErrInvalidStatus)
	assert.ErrorIs(t, f.svc.UpdateStatus(ctx, KindGroup, 404, models.StatusApproved), apperrors.ErrGroupNotFound)
}

func TestDelete_RemovesImagesBestEffort(t *testing.T) {
	f := newAdminFixture()
	f.storage.delErr = errBoom

	require.NoError(t, f.svc.Delete(context.Background(), KindGroup, 20))

	assert.Equal(t, []string{"group"}, f.registrations.deleted)
	if diff := cmp.Diff(f.registrations.imageURL, f.storage.deleted); diff != "" {
		t.Errorf("deleted images mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []websocket.EventType{websocket.EventRegistrantDeleted}, f.events.types())
}

func TestDelete_NotFound(t *testing.T) {
	f := newAdminFixture()
	f.registrations.err = apperrors.ErrGuestNotFound

	err := f.svc.Delete(context.Background(), KindGuest, 404)
	assert.ErrorIs(t, err, apperrors.ErrGuestNotFound)
	assert.Empty(t, f.storage.deleted)
	assert.Empty(t, f.events.types())
}

func TestParseRegistrantKind(t *testing.T) {
	for segment, want := range map[string]RegistrantKind{"singles": KindSingle, "groups": KindGroup, "guests": KindGuest} {
		got, err := ParseRegistrantKind(segment)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseRegistrantKind("students")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
