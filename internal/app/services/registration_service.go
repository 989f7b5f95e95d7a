package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/email"
	"github.com/maritimetq/talentquest/internal/pkg/filestorage"
	"github.com/maritimetq/talentquest/internal/pkg/qrpass"
	"github.com/maritimetq/talentquest/internal/pkg/validation"
	"github.com/maritimetq/talentquest/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// RegistrationService defines the public registration operations
type RegistrationService interface {
	RegisterSingle(ctx context.Context, req *dto.SingleRegistrationRequest) (*dto.RegistrationResponse, error)
	RegisterGroup(ctx context.Context, req *dto.GroupRegistrationRequest) (*dto.RegistrationResponse, error)
	RegisterGuest(ctx context.Context, req *dto.GuestRegistrationRequest) (*dto.RegistrationResponse, error)
}

// RegistrationOptions configures a RegistrationService
type RegistrationOptions struct {
	Open          bool
	Event         EventInfo
	PublicBaseURL string
}

type registrationServiceImpl struct {
	store    RegistrationStore
	delivery *passDelivery
	events   EventPublisher
	open     bool
	now      func() time.Time
	logger   zerolog.Logger
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(
	store RegistrationStore,
	passes PassStore,
	storage filestorage.FileStorage,
	mailer email.EmailService,
	events EventPublisher,
	opts RegistrationOptions,
	logger zerolog.Logger,
) RegistrationService {
	return &registrationServiceImpl{
		store: store,
		delivery: &passDelivery{
			passes:  passes,
			storage: storage,
			mailer:  mailer,
			event:   opts.Event,
			baseURL: opts.PublicBaseURL,
			logger:  logger,
		},
		events: publisherOrNoop(events),
		open:   opts.Open,
		now:    time.Now,
		logger: logger,
	}
}

// RegisterSingle registers one solo contestant and emails their pass to
// them, with the guardian in copy.
func (s *registrationServiceImpl) RegisterSingle(ctx context.Context, req *dto.SingleRegistrationRequest) (*dto.RegistrationResponse, error) {
	if !s.open {
		return nil, apperrors.ErrRegistrationClosed
	}

	student, err := toStudent(req.Student, "student")
	if err != nil {
		return nil, err
	}
	pass, err := s.newPass(models.HolderStudent, student.FullName())
	if err != nil {
		return nil, err
	}

	reg := &models.SingleRegistration{
		Student:      student,
		Performance:  toPerformance(req.Performance),
		Single:       &models.Single{Status: models.StatusPending},
		Requirements: toRequirements(req.Requirements),
		Health:       toHealth(req.Health),
		Consent:      toConsent(req.Consent),
		Endorsement:  toEndorsement(req.Endorsement),
		Pass:         pass,
	}
	if err := s.store.CreateSingle(ctx, reg); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("singleID", reg.Single.ID).Str("email", student.Email).Msg("Single registration created")

	m := mailing{
		to:            student.Email,
		recipientName: student.FullName(),
		passes:        []issuedPass{{pass: pass, holderName: student.FullName()}},
	}
	if g := reg.Consent.GuardianEmail; g != "" && !strings.EqualFold(g, student.Email) {
		m.cc = []string{g}
	}

	resp := &dto.RegistrationResponse{
		EntryType: string(models.EntrySingle),
		EntryID:   reg.Single.ID,
		Passes:    s.delivery.deliver(ctx, m),
	}
	s.events.Publish(newEvent(websocket.EventRegistrationCreated, string(models.EntrySingle), reg.Single.ID, map[string]interface{}{
		"name":     student.FullName(),
		"school":   student.School,
		"category": reg.Performance.Category,
	}))
	return resp, nil
}

// RegisterGroup registers a group and sends one email with every member's
// pass to the group contact.
func (s *registrationServiceImpl) RegisterGroup(ctx context.Context, req *dto.GroupRegistrationRequest) (*dto.RegistrationResponse, error) {
	if !s.open {
		return nil, apperrors.ErrRegistrationClosed
	}

	leaders := 0
	for _, m := range req.Members {
		if models.MemberRole(m.Role) == models.MemberLeader {
			leaders++
		}
	}
	if leaders != 1 {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrInvalidGroupLeadership,
			Message: fmt.Sprintf("a group must have exactly one leader, got %d", leaders),
			Details: map[string]interface{}{"field": "members"},
		}
	}

	reg := &models.GroupRegistration{
		Group: &models.Group{
			Name:          validation.PlainText(req.Group.Name),
			School:        validation.PlainText(req.Group.School),
			ContactPerson: validation.PlainText(req.Group.ContactPerson),
			ContactEmail:  normalizeEmail(req.Group.ContactEmail),
			ContactNumber: validation.NormalizeMobile(req.Group.ContactNumber),
			Status:        models.StatusPending,
		},
		Performance: toPerformance(req.Performance),
		Endorsement: toEndorsement(req.Endorsement),
		Members:     make([]*models.GroupMemberRegistration, 0, len(req.Members)),
	}

	issued := make([]issuedPass, 0, len(req.Members))
	for i, in := range req.Members {
		student, err := toStudent(in.Student, fmt.Sprintf("members[%d].student", i))
		if err != nil {
			return nil, err
		}
		pass, err := s.newPass(models.HolderStudent, student.FullName())
		if err != nil {
			return nil, err
		}
		reg.Members = append(reg.Members, &models.GroupMemberRegistration{
			Student:      student,
			Role:         models.MemberRole(in.Role),
			Requirements: toRequirements(in.Requirements),
			Health:       toHealth(in.Health),
			Consent:      toConsent(in.Consent),
			Pass:         pass,
		})
		issued = append(issued, issuedPass{pass: pass, holderName: student.FullName()})
	}

	if err := s.store.CreateGroup(ctx, reg); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("groupID", reg.Group.ID).Int("members", len(reg.Members)).Msg("Group registration created")

	resp := &dto.RegistrationResponse{
		EntryType: string(models.EntryGroup),
		EntryID:   reg.Group.ID,
		Passes: s.delivery.deliver(ctx, mailing{
			to:            reg.Group.ContactEmail,
			recipientName: reg.Group.ContactPerson,
			groupName:     reg.Group.Name,
			passes:        issued,
		}),
	}
	s.events.Publish(newEvent(websocket.EventRegistrationCreated, string(models.EntryGroup), reg.Group.ID, map[string]interface{}{
		"name":     reg.Group.Name,
		"school":   reg.Group.School,
		"members":  len(reg.Members),
		"category": reg.Performance.Category,
	}))
	return resp, nil
}

// RegisterGuest registers a guest and emails their pass.
func (s *registrationServiceImpl) RegisterGuest(ctx context.Context, req *dto.GuestRegistrationRequest) (*dto.RegistrationResponse, error) {
	if !s.open {
		return nil, apperrors.ErrRegistrationClosed
	}

	guest := &models.Guest{
		FirstName:     validation.PlainText(req.FirstName),
		LastName:      validation.PlainText(req.LastName),
		Email:         normalizeEmail(req.Email),
		ContactNumber: validation.NormalizeMobile(req.ContactNumber),
		Affiliation:   validation.PlainText(req.Affiliation),
		GuestType:     models.GuestType(req.GuestType),
		Status:        models.StatusPending,
	}
	pass, err := s.newPass(models.HolderGuest, guest.FullName())
	if err != nil {
		return nil, err
	}

	reg := &models.GuestRegistration{Guest: guest, Pass: pass}
	if err := s.store.CreateGuest(ctx, reg); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("guestID", guest.ID).Str("email", guest.Email).Msg("Guest registration created")

	resp := &dto.RegistrationResponse{
		EntryType: "guest",
		EntryID:   guest.ID,
		Passes: s.delivery.deliver(ctx, mailing{
			to:            guest.Email,
			recipientName: guest.FullName(),
			passes:        []issuedPass{{pass: pass, holderName: guest.FullName()}},
		}),
	}
	s.events.Publish(newEvent(websocket.EventRegistrationCreated, "guest", guest.ID, map[string]interface{}{
		"name":      guest.FullName(),
		"guestType": guest.GuestType,
	}))
	return resp, nil
}

func (s *registrationServiceImpl) newPass(holder models.HolderType, name string) (*models.QRCode, error) {
	code := qrpass.NewCode()
	payload, err := qrpass.NewPayload(code, string(holder), name, s.delivery.event.Name, s.now()).Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to build pass payload: %w", err)
	}
	return &models.QRCode{Code: code, HolderType: holder, Payload: payload}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func canonicalGrade(s string) string {
	for _, g := range validation.GradeLevels {
		if strings.EqualFold(strings.TrimSpace(s), g) {
			return g
		}
	}
	return strings.TrimSpace(s)
}

func toStudent(in dto.StudentInput, path string) (*models.Student, error) {
	birth, err := validation.ParseDate(in.BirthDate)
	if err != nil {
		return nil, apperrors.NewValidationError(path+".birthDate", "must be a date in YYYY-MM-DD format")
	}
	return &models.Student{
		FirstName:     validation.PlainText(in.FirstName),
		MiddleName:    validation.PlainText(in.MiddleName),
		LastName:      validation.PlainText(in.LastName),
		BirthDate:     birth,
		Gender:        strings.ToLower(strings.TrimSpace(in.Gender)),
		School:        validation.PlainText(in.School),
		GradeLevel:    canonicalGrade(in.GradeLevel),
		Email:         normalizeEmail(in.Email),
		ContactNumber: validation.NormalizeMobile(in.ContactNumber),
		Address:       validation.PlainText(in.Address),
	}, nil
}

func toPerformance(in dto.PerformanceInput) *models.Performance {
	return &models.Performance{
		Title:           validation.PlainText(in.Title),
		Category:        models.Category(in.Category),
		Description:     validation.PlainText(in.Description),
		DurationMinutes: in.DurationMinutes,
	}
}

func toRequirements(in dto.RequirementsInput) *models.Requirements {
	return &models.Requirements{
		BirthCertificateURL: strings.TrimSpace(in.BirthCertificateURL),
		SchoolIDURL:         strings.TrimSpace(in.SchoolIDURL),
		PhotoURL:            strings.TrimSpace(in.PhotoURL),
	}
}

func toHealth(in dto.HealthInput) *models.HealthFitness {
	h := &models.HealthFitness{
		HasMedicalCondition:    in.HasMedicalCondition,
		Allergies:              validation.PlainText(in.Allergies),
		Medications:            validation.PlainText(in.Medications),
		FitToPerform:           in.FitToPerform,
		EmergencyContactName:   validation.PlainText(in.EmergencyContactName),
		EmergencyContactNumber: validation.NormalizeMobile(in.EmergencyContactNumber),
	}
	if in.HasMedicalCondition {
		h.MedicalConditions = validation.PlainText(in.MedicalConditions)
	}
	return h
}

func toConsent(in dto.ConsentInput) *models.Consent {
	return &models.Consent{
		GuardianName:         validation.PlainText(in.GuardianName),
		GuardianRelationship: validation.PlainText(in.GuardianRelationship),
		GuardianContact:      validation.NormalizeMobile(in.GuardianContact),
		GuardianEmail:        normalizeEmail(in.GuardianEmail),
		Agreed:               in.Agreed,
		PhotoRelease:         in.PhotoRelease,
	}
}

func toEndorsement(in dto.EndorsementInput) *models.Endorsement {
	return &models.Endorsement{
		EndorserName:     validation.PlainText(in.EndorserName),
		EndorserPosition: validation.PlainText(in.EndorserPosition),
		Organization:     validation.PlainText(in.Organization),
		ContactNumber:    validation.NormalizeMobile(in.ContactNumber),
	}
}
