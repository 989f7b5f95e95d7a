package services

import (
	"context"
	"fmt"
	"time"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/filestorage"
	"github.com/maritimetq/talentquest/internal/pkg/helpers"
	"github.com/maritimetq/talentquest/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// RegistrantKind names the entries an admin can review or delete.
type RegistrantKind string

const (
	KindSingle RegistrantKind = "single"
	KindGroup  RegistrantKind = "group"
	KindGuest  RegistrantKind = "guest"
)

// ParseRegistrantKind maps a route segment ("singles", "groups", "guests")
// onto a kind.
func ParseRegistrantKind(segment string) (RegistrantKind, error) {
	switch segment {
	case "singles":
		return KindSingle, nil
	case "groups":
		return KindGroup, nil
	case "guests":
		return KindGuest, nil
	}
	return "", apperrors.NewResourceNotFoundError(fmt.Sprintf("unknown registrant type %q", segment))
}

// AdminService defines the dashboard operations
type AdminService interface {
	ListContestants(ctx context.Context, f models.ContestantFilter, page models.Page) (*dto.ContestantListResponse, error)
	GetContestant(ctx context.Context, studentID int64) (*dto.ContestantDetailResponse, error)
	ListGroups(ctx context.Context, f models.GroupFilter, page models.Page) (*dto.GroupListResponse, error)
	GetGroup(ctx context.Context, id int64) (*dto.GroupDetailResponse, error)
	ListGuests(ctx context.Context, f models.GuestFilter, page models.Page) (*dto.GuestListResponse, error)
	GetGuest(ctx context.Context, id int64) (*dto.GuestDetailResponse, error)
	UpdateStatus(ctx context.Context, kind RegistrantKind, id int64, status models.Status) error
	Delete(ctx context.Context, kind RegistrantKind, id int64) error
}

type adminServiceImpl struct {
	contestants   ContestantStore
	students      StudentStore
	entries       EntryStore
	guests        GuestStore
	passes        PassStore
	registrations RegistrationStore
	storage       filestorage.FileStorage
	events        EventPublisher
	logger        zerolog.Logger
}

// AdminStores groups the stores the dashboard reads and writes.
type AdminStores struct {
	Contestants   ContestantStore
	Students      StudentStore
	Entries       EntryStore
	Guests        GuestStore
	Passes        PassStore
	Registrations RegistrationStore
}

// NewAdminService creates a new admin service instance
func NewAdminService(stores AdminStores, storage filestorage.FileStorage, events EventPublisher, logger zerolog.Logger) AdminService {
	return &adminServiceImpl{
		contestants:   stores.Contestants,
		students:      stores.Students,
		entries:       stores.Entries,
		guests:        stores.Guests,
		passes:        stores.Passes,
		registrations: stores.Registrations,
		storage:       storage,
		events:        publisherOrNoop(events),
		logger:        logger,
	}
}

func (s *adminServiceImpl) ListContestants(ctx context.Context, f models.ContestantFilter, page models.Page) (*dto.ContestantListResponse, error) {
	rows, total, err := s.contestants.List(ctx, f, &page)
	if err != nil {
		return nil, err
	}
	return &dto.ContestantListResponse{
		Contestants: rows,
		Pagination:  helpers.NewPaginationInfo(total, page.Number, page.Size),
	}, nil
}

// GetContestant assembles the full record of a student, whichever way they
// entered.
func (s *adminServiceImpl) GetContestant(ctx context.Context, studentID int64) (*dto.ContestantDetailResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ContestantDetailResponse{Student: student}

	if resp.Requirements, err = s.students.GetRequirements(ctx, studentID); err != nil {
		return nil, err
	}
	if resp.Health, err = s.students.GetHealth(ctx, studentID); err != nil {
		return nil, err
	}
	if resp.Consent, err = s.students.GetConsent(ctx, studentID); err != nil {
		return nil, err
	}
	if resp.Pass, err = s.passes.GetByStudent(ctx, studentID); err != nil {
		return nil, err
	}

	single, err := s.entries.GetSingleByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if single != nil {
		resp.EntryType = models.EntrySingle
		resp.Single = single
		if resp.Performance, err = s.entries.GetPerformance(ctx, single.PerformanceID); err != nil {
			return nil, err
		}
		if resp.Endorsement, err = s.entries.GetEndorsement(ctx, &single.ID, nil); err != nil {
			return nil, err
		}
		return resp, nil
	}

	member, err := s.entries.GetMembershipByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		// orphaned student rows are not contestants
		return nil, apperrors.ErrContestantNotFound
	}
	group, err := s.entries.GetGroup(ctx, member.GroupID)
	if err != nil {
		return nil, err
	}
	group.Members = nil
	resp.EntryType = models.EntryGroup
	resp.Group = group
	resp.MemberRole = member.Role
	resp.Performance = group.Performance
	if resp.Endorsement, err = s.entries.GetEndorsement(ctx, nil, &group.ID); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *adminServiceImpl) ListGroups(ctx context.Context, f models.GroupFilter, page models.Page) (*dto.GroupListResponse, error) {
	groups, total, err := s.entries.ListGroups(ctx, f, &page)
	if err != nil {
		return nil, err
	}
	return &dto.GroupListResponse{
		Groups:     groups,
		Pagination: helpers.NewPaginationInfo(total, page.Number, page.Size),
	}, nil
}

func (s *adminServiceImpl) GetGroup(ctx context.Context, id int64) (*dto.GroupDetailResponse, error) {
	group, err := s.entries.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	endorsement, err := s.entries.GetEndorsement(ctx, nil, &group.ID)
	if err != nil {
		return nil, err
	}
	return &dto.GroupDetailResponse{Group: group, Endorsement: endorsement}, nil
}

func (s *adminServiceImpl) ListGuests(ctx context.Context, f models.GuestFilter, page models.Page) (*dto.GuestListResponse, error) {
	guests, total, err := s.guests.List(ctx, f, &page)
	if err != nil {
		return nil, err
	}
	return &dto.GuestListResponse{
		Guests:     guests,
		Pagination: helpers.NewPaginationInfo(total, page.Number, page.Size),
	}, nil
}

func (s *adminServiceImpl) GetGuest(ctx context.Context, id int64) (*dto.GuestDetailResponse, error) {
	guest, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pass, err := s.passes.GetByGuest(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.GuestDetailResponse{Guest: guest, Pass: pass}, nil
}

// UpdateStatus changes the review status of a single, group or guest.
func (s *adminServiceImpl) UpdateStatus(ctx context.Context, kind RegistrantKind, id int64, status models.Status) error {
	if !status.Valid() {
		return apperrors.ErrInvalidStatus
	}

	var err error
	switch kind {
	case KindSingle:
		err = s.entries.UpdateSingleStatus(ctx, id, status)
	case KindGroup:
		err = s.entries.UpdateGroupStatus(ctx, id, status)
	case KindGuest:
		err = s.guests.UpdateStatus(ctx, id, status)
	default:
		return apperrors.NewBadRequestError(fmt.Sprintf("unknown registrant type %q", kind))
	}
	if err != nil {
		return err
	}

	s.logger.Info().Str("kind", string(kind)).Int64("id", id).Str("status", string(status)).Msg("Registrant status updated")
	s.events.Publish(newEvent(websocket.EventRegistrantUpdated, string(kind), id, map[string]interface{}{"status": status}))
	return nil
}

// Delete removes a registrant with everything that depends on it. Stored
// pass images are removed afterwards on a best-effort basis.
func (s *adminServiceImpl) Delete(ctx context.Context, kind RegistrantKind, id int64) error {
	var (
		urls []string
		err  error
	)
	switch kind {
	case KindSingle:
		urls, err = s.registrations.DeleteSingle(ctx, id)
	case KindGroup:
		urls, err = s.registrations.DeleteGroup(ctx, id)
	case KindGuest:
		urls, err = s.registrations.DeleteGuest(ctx, id)
	default:
		return apperrors.NewBadRequestError(fmt.Sprintf("unknown registrant type %q", kind))
	}
	if err != nil {
		return err
	}

	s.removeImages(ctx, urls)
	s.logger.Info().Str("kind", string(kind)).Int64("id", id).Msg("Registrant deleted")
	s.events.Publish(newEvent(websocket.EventRegistrantDeleted, string(kind), id, nil))
	return nil
}

func (s *adminServiceImpl) removeImages(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	for _, u := range urls {
		if err := s.storage.DeleteFile(ctx, u); err != nil {
			s.logger.Warn().Err(err).Str("url", u).Msg("Failed to delete pass image")
		}
	}
}
