package services

import (
	"context"
	"time"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/repositories"
	"github.com/maritimetq/talentquest/internal/pkg/websocket"
)

// Services defined in this package:
// - RegistrationService: public single, group and guest registration
// - PassService: pass verification, check-in and email resends
// - AdminService: dashboard listings, details, status changes and deletes
// - StatsService: dashboard summary counters
// - ExportService: CSV and PDF exports of the listings
// - UploadService: requirement document uploads
// - AuthService: dashboard login and account management

// EventInfo describes the event printed on passes and in emails.
type EventInfo struct {
	Name  string
	Venue string
	Date  string
}

// RegistrationStore writes and removes whole registrations atomically.
type RegistrationStore interface {
	CreateSingle(ctx context.Context, reg *models.SingleRegistration) error
	CreateGroup(ctx context.Context, reg *models.GroupRegistration) error
	CreateGuest(ctx context.Context, reg *models.GuestRegistration) error
	DeleteSingle(ctx context.Context, id int64) ([]string, error)
	DeleteGroup(ctx context.Context, id int64) ([]string, error)
	DeleteGuest(ctx context.Context, id int64) ([]string, error)
}

// PassStore reads and updates issued passes.
type PassStore interface {
	GetByCode(ctx context.Context, code string) (*models.QRCode, error)
	GetByStudent(ctx context.Context, studentID int64) (*models.QRCode, error)
	GetByGuest(ctx context.Context, guestID int64) (*models.QRCode, error)
	GetHolder(ctx context.Context, code string) (*models.PassHolder, error)
	ListUnsentHolders(ctx context.Context) ([]*models.PassHolder, error)
	SetImageURL(ctx context.Context, id int64, url string) error
	MarkEmailed(ctx context.Context, ids []int64) error
	CheckIn(ctx context.Context, code string, userID int64) (*models.QRCode, error)
}

// StudentStore reads students and their per-student records.
type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetRequirements(ctx context.Context, studentID int64) (*models.Requirements, error)
	GetHealth(ctx context.Context, studentID int64) (*models.HealthFitness, error)
	GetConsent(ctx context.Context, studentID int64) (*models.Consent, error)
}

// EntryStore reads and updates singles and groups.
type EntryStore interface {
	GetPerformance(ctx context.Context, id int64) (*models.Performance, error)
	GetSingle(ctx context.Context, id int64) (*models.Single, error)
	GetSingleByStudent(ctx context.Context, studentID int64) (*models.Single, error)
	GetMembershipByStudent(ctx context.Context, studentID int64) (*models.GroupMember, error)
	GetEndorsement(ctx context.Context, singleID, groupID *int64) (*models.Endorsement, error)
	ListGroups(ctx context.Context, f models.GroupFilter, page *models.Page) ([]*models.Group, int64, error)
	GetGroup(ctx context.Context, id int64) (*models.Group, error)
	UpdateSingleStatus(ctx context.Context, id int64, status models.Status) error
	UpdateGroupStatus(ctx context.Context, id int64, status models.Status) error
}

// GuestStore reads and updates guests.
type GuestStore interface {
	GetByID(ctx context.Context, id int64) (*models.Guest, error)
	List(ctx context.Context, f models.GuestFilter, page *models.Page) ([]*models.Guest, int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.Status) error
}

// ContestantStore lists the contestant_entries view.
type ContestantStore interface {
	List(ctx context.Context, f models.ContestantFilter, page *models.Page) ([]*models.ContestantEntry, int64, error)
}

// StatsStore runs the dashboard aggregate queries.
type StatsStore interface {
	EntryTotals(ctx context.Context) (repositories.EntryTotals, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	CountByGuestType(ctx context.Context) (map[string]int64, error)
	PassTotals(ctx context.Context) (repositories.PassTotals, error)
}

// UserStore persists dashboard accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
	CountAdmins(ctx context.Context) (int64, error)
}

// EventPublisher pushes dashboard notifications. *websocket.Hub satisfies it.
type EventPublisher interface {
	Publish(event websocket.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(websocket.Event) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func newEvent(t websocket.EventType, entity string, id int64, data interface{}) websocket.Event {
	return websocket.Event{Type: t, Entity: entity, ID: id, Data: data, Timestamp: time.Now().UTC()}
}
