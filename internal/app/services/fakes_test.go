package services

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"time"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/repositories"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/email"
	"github.com/maritimetq/talentquest/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

var testLogger = zerolog.Nop()

var testEvent = EventInfo{Name: "Maritime Talent Quest", Venue: "Port Area Gym", Date: "2026-11-20"}

// fakeRegistrations assigns IDs the way the database would.
type fakeRegistrations struct {
	nextID   int64
	singles  []*models.SingleRegistration
	groups   []*models.GroupRegistration
	guests   []*models.GuestRegistration
	err      error
	deleted  []string
	imageURL []string
}

func (f *fakeRegistrations) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRegistrations) CreateSingle(_ context.Context, reg *models.SingleRegistration) error {
	if f.err != nil {
		return f.err
	}
	reg.Student.ID = f.id()
	reg.Performance.ID = f.id()
	reg.Single.ID = f.id()
	reg.Single.StudentID = reg.Student.ID
	reg.Pass.ID = f.id()
	reg.Pass.StudentID = &reg.Student.ID
	reg.Pass.CreatedAt = time.Now()
	f.singles = append(f.singles, reg)
	return nil
}

func (f *fakeRegistrations) CreateGroup(_ context.Context, reg *models.GroupRegistration) error {
	if f.err != nil {
		return f.err
	}
	reg.Performance.ID = f.id()
	reg.Group.ID = f.id()
	for _, m := range reg.Members {
		m.Student.ID = f.id()
		m.Pass.ID = f.id()
		m.Pass.StudentID = &m.Student.ID
	}
	f.groups = append(f.groups, reg)
	return nil
}

func (f *fakeRegistrations) CreateGuest(_ context.Context, reg *models.GuestRegistration) error {
	if f.err != nil {
		return f.err
	}
	reg.Guest.ID = f.id()
	reg.Pass.ID = f.id()
	reg.Pass.GuestID = &reg.Guest.ID
	f.guests = append(f.guests, reg)
	return nil
}

func (f *fakeRegistrations) del(kind string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, kind)
	return f.imageURL, nil
}

func (f *fakeRegistrations) DeleteSingle(context.Context, int64) ([]string, error) { return f.del("single") }
func (f *fakeRegistrations) DeleteGroup(context.Context, int64) ([]string, error)  { return f.del("group") }
func (f *fakeRegistrations) DeleteGuest(context.Context, int64) ([]string, error)  { return f.del("guest") }

// fakePasses is an in-memory qr_codes table.
type fakePasses struct {
	mu        sync.Mutex
	byCode    map[string]*models.PassHolder
	emailed   []int64
	images    map[int64]string
	markErr   error
	checkedBy map[string]int64
}

func newFakePasses(holders ...*models.PassHolder) *fakePasses {
	f := &fakePasses{
		byCode:    make(map[string]*models.PassHolder),
		images:    make(map[int64]string),
		checkedBy: make(map[string]int64),
	}
	for _, h := range holders {
		f.byCode[h.Pass.Code] = h
	}
	return f
}

func (f *fakePasses) GetByCode(_ context.Context, code string) (*models.QRCode, error) {
	h, ok := f.byCode[code]
	if !ok {
		return nil, apperrors.ErrPassNotFound
	}
	return h.Pass, nil
}

func (f *fakePasses) GetByStudent(_ context.Context, studentID int64) (*models.QRCode, error) {
	for _, h := range f.byCode {
		if h.Pass.StudentID != nil && *h.Pass.StudentID == studentID {
			return h.Pass, nil
		}
	}
	return nil, nil
}

func (f *fakePasses) GetByGuest(_ context.Context, guestID int64) (*models.QRCode, error) {
	for _, h := range f.byCode {
		if h.Pass.GuestID != nil && *h.Pass.GuestID == guestID {
			return h.Pass, nil
		}
	}
	return nil, nil
}

func (f *fakePasses) GetHolder(_ context.Context, code string) (*models.PassHolder, error) {
	h, ok := f.byCode[code]
	if !ok {
		return nil, apperrors.ErrPassNotFound
	}
	return h, nil
}

func (f *fakePasses) ListUnsentHolders(context.Context) ([]*models.PassHolder, error) {
	var out []*models.PassHolder
	for _, h := range f.byCode {
		if h.Pass.EmailedAt == nil {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakePasses) SetImageURL(_ context.Context, id int64, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images[id] = url
	return nil
}

func (f *fakePasses) MarkEmailed(_ context.Context, ids []int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emailed = append(f.emailed, ids...)
	now := time.Now()
	for _, h := range f.byCode {
		for _, id := range ids {
			if h.Pass.ID == id {
				h.Pass.EmailedAt = &now
			}
		}
	}
	return nil
}

func (f *fakePasses) CheckIn(_ context.Context, code string, userID int64) (*models.QRCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.byCode[code]
	if !ok {
		return nil, apperrors.ErrPassNotFound
	}
	if h.Pass.CheckedInAt != nil {
		return nil, apperrors.ErrPassAlreadyCheckedIn
	}
	now := time.Now()
	h.Pass.CheckedInAt = &now
	h.Pass.CheckedInBy = &userID
	f.checkedBy[code] = userID
	return h.Pass, nil
}

// fakeStorage records saved keys and deleted URLs.
type fakeStorage struct {
	mu      sync.Mutex
	saved   map[string][]byte
	deleted []string
	saveErr error
	delErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string][]byte)}
}

func (s *fakeStorage) SaveBytes(_ context.Context, key string, data []byte, _ string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[key] = data
	return "https://cdn.test/" + key, nil
}

func (s *fakeStorage) SaveFileWithPath(_ context.Context, fh *multipart.FileHeader, subPath string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := subPath + "/" + fh.Filename
	s.saved[key] = nil
	return "https://cdn.test/" + key, nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, url)
	return s.delErr
}

type sentMail struct {
	to          string
	cc          []string
	data        email.PassEmailData
	attachments []email.Attachment
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendPassEmail(_ context.Context, to string, cc []string, data email.PassEmailData, attachments []email.Attachment) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, cc: cc, data: data, attachments: attachments})
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []websocket.Event
}

func (p *fakePublisher) Publish(e websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *fakePublisher) types() []websocket.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]websocket.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeStats struct {
	entries  repositories.EntryTotals
	passes   repositories.PassTotals
	status   map[string]int64
	category map[string]int64
	guest    map[string]int64
	err      error
}

func (s *fakeStats) EntryTotals(context.Context) (repositories.EntryTotals, error) {
	return s.entries, s.err
}

func (s *fakeStats) PassTotals(context.Context) (repositories.PassTotals, error) {
	return s.passes, nil
}

func (s *fakeStats) CountByStatus(context.Context) (map[string]int64, error)    { return s.status, nil }
func (s *fakeStats) CountByCategory(context.Context) (map[string]int64, error)  { return s.category, nil }
func (s *fakeStats) CountByGuestType(context.Context) (map[string]int64, error) { return s.guest, nil }

type fakeUsers struct {
	byEmail map[string]*models.User
	nextID  int64
	admins  int64
	logins  []int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]*models.User)}
}

func (u *fakeUsers) Create(_ context.Context, user *models.User) error {
	if _, ok := u.byEmail[user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	u.nextID++
	user.ID = u.nextID
	u.byEmail[user.Email] = user
	if user.Role == models.RoleAdmin {
		u.admins++
	}
	return nil
}

func (u *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := u.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (u *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, user := range u.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (u *fakeUsers) UpdateLastLogin(_ context.Context, id int64) error {
	u.logins = append(u.logins, id)
	return nil
}

func (u *fakeUsers) CountAdmins(context.Context) (int64, error) { return u.admins, nil }

var errBoom = errors.New("boom")
