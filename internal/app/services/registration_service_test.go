package services

import (
	"context"
	"testing"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/qrpass"
	"github.com/maritimetq/talentquest/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationFixture struct {
	store   *fakeRegistrations
	passes  *fakePasses
	storage *fakeStorage
	mailer  *fakeMailer
	events  *fakePublisher
	svc     RegistrationService
}

func newRegistrationFixture(open bool) *registrationFixture {
	f := &registrationFixture{
		store:   &fakeRegistrations{},
		passes:  newFakePasses(),
		storage: newFakeStorage(),
		mailer:  &fakeMailer{},
		events:  &fakePublisher{},
	}
	f.svc = NewRegistrationService(f.store, f.passes, f.storage, f.mailer, f.events, RegistrationOptions{
		Open:          open,
		Event:         testEvent,
		PublicBaseURL: "https://mtq.test",
	}, testLogger)
	return f
}

func studentInput(first, email string) dto.StudentInput {
	return dto.StudentInput{
		FirstName:     first,
		LastName:      "Dela Cruz",
		BirthDate:     "2010-06-15",
		Gender:        "Male",
		School:        "Batangas Maritime High School",
		GradeLevel:    "grade 10",
		Email:         email,
		ContactNumber: "0917 123 4567",
	}
}

func performanceInput() dto.PerformanceInput {
	return dto.PerformanceInput{Title: "Sailor's Ballad", Category: "singing", DurationMinutes: 5}
}

func singleRequest() *dto.SingleRegistrationRequest {
	return &dto.SingleRegistrationRequest{
		Student:     studentInput("<b>Juan</b>", " Juan@Example.com "),
		Performance: performanceInput(),
		Requirements: dto.RequirementsInput{
			BirthCertificateURL: "https://cdn.test/bc.pdf",
			SchoolIDURL:         "https://cdn.test/id.png",
			PhotoURL:            "https://cdn.test/photo.jpg",
		},
		Health: dto.HealthInput{FitToPerform: true, EmergencyContactName: "Maria", EmergencyContactNumber: "09171234567"},
		Consent: dto.ConsentInput{
			GuardianName:         "Maria Dela Cruz",
			GuardianRelationship: "mother",
			GuardianContact:      "09171234567",
			GuardianEmail:        "maria@example.com",
			Agreed:               true,
		},
		Endorsement: dto.EndorsementInput{EndorserName: "Ana Reyes", EndorserPosition: "Principal", Organization: "BMHS"},
	}
}

func groupRequest(leaders int) *dto.GroupRegistrationRequest {
	req := &dto.GroupRegistrationRequest{
		Group: dto.GroupInfoInput{
			Name:          "Harbor Voices",
			School:        "Batangas Maritime High School",
			ContactPerson: "Ana Reyes",
			ContactEmail:  "coach@example.com",
			ContactNumber: "09171234567",
		},
		Performance: performanceInput(),
		Endorsement: dto.EndorsementInput{EndorserName: "Ana Reyes", EndorserPosition: "Principal", Organization: "BMHS"},
	}
	for i, name := range []string{"Pedro", "Jose", "Luis"} {
		role := "member"
		if i < leaders {
			role = "leader"
		}
		req.Members = append(req.Members, dto.GroupMemberInput{
			Role:    role,
			Student: studentInput(name, name+"@example.com"),
			Health:  dto.HealthInput{FitToPerform: true, EmergencyContactName: "Maria", EmergencyContactNumber: "09171234567"},
			Consent: dto.ConsentInput{GuardianName: "Maria", GuardianRelationship: "mother", GuardianContact: "09171234567", Agreed: true},
		})
	}
	return req
}

func TestRegisterSingle_PersistsRendersAndEmails(t *testing.T) {
	f := newRegistrationFixture(true)

	resp, err := f.svc.RegisterSingle(context.Background(), singleRequest())
	require.NoError(t, err)

	require.Len(t, f.store.singles, 1)
	reg := f.store.singles[0]
	assert.Equal(t, "Juan", reg.Student.FirstName)
	assert.Equal(t, "juan@example.com", reg.Student.Email)
	assert.Equal(t, "Grade 10", reg.Student.GradeLevel)
	assert.Equal(t, "09171234567", reg.Student.ContactNumber)
	assert.Equal(t, "male", reg.Student.Gender)
	assert.Equal(t, models.StatusPending, reg.Single.Status)

	payload, err := qrpass.ParsePayload(reg.Pass.Payload)
	require.NoError(t, err)
	assert.Equal(t, reg.Pass.Code, payload.Code)
	assert.Equal(t, "Juan Dela Cruz", payload.Name)
	assert.Equal(t, testEvent.Name, payload.Event)

	assert.Equal(t, "single", resp.EntryType)
	assert.Equal(t, reg.Single.ID, resp.EntryID)
	require.Len(t, resp.Passes, 1)
	assert.True(t, resp.Passes[0].EmailSent)
	assert.Equal(t, "https://cdn.test/"+qrpass.ObjectKey(reg.Pass.Code), resp.Passes[0].ImageURL)
	assert.Contains(t, f.storage.saved, qrpass.ObjectKey(reg.Pass.Code))

	require.Len(t, f.mailer.sent, 1)
	mail := f.mailer.sent[0]
	assert.Equal(t, "juan@example.com", mail.to)
	assert.Equal(t, []string{"maria@example.com"}, mail.cc)
	require.Len(t, mail.attachments, 1)
	assert.Equal(t, "image/png", mail.attachments[0].ContentType)
	assert.Equal(t, "https://mtq.test/api/v1/passes/"+reg.Pass.Code, mail.data.Passes[0].VerifyURL)

	assert.Equal(t, []int64{reg.Pass.ID}, f.passes.emailed)
	assert.Equal(t, []websocket.EventType{websocket.EventRegistrationCreated}, f.events.types())
}

func TestRegisterSingle_Closed(t *testing.T) {
	f := newRegistrationFixture(false)

	_, err := f.svc.RegisterSingle(context.Background(), singleRequest())
	assert.ErrorIs(t, err, apperrors.ErrRegistrationClosed)
	assert.Empty(t, f.store.singles)
}

func TestRegisterSingle_DuplicateIsReturned(t *testing.T) {
	f := newRegistrationFixture(true)
	f.store.err = apperrors.ErrDuplicateContestant

	_, err := f.svc.RegisterSingle(context.Background(), singleRequest())
	assert.ErrorIs(t, err, apperrors.ErrDuplicateContestant)
	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.events.types())
}

func TestRegisterSingle_BadBirthDate(t *testing.T) {
	f := newRegistrationFixture(true)
	req := singleRequest()
	req.Student.BirthDate = "15/06/2010"

	_, err := f.svc.RegisterSingle(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterSingle_EmailFailureStillSucceeds(t *testing.T) {
	f := newRegistrationFixture(true)
	f.mailer.err = errBoom

	resp, err := f.svc.RegisterSingle(context.Background(), singleRequest())
	require.NoError(t, err)
	require.Len(t, resp.Passes, 1)
	assert.False(t, resp.Passes[0].EmailSent)
	assert.Empty(t, f.passes.emailed)
}

func TestRegisterSingle_StorageFailureStillEmails(t *testing.T) {
	f := newRegistrationFixture(true)
	f.storage.saveErr = errBoom

	resp, err := f.svc.RegisterSingle(context.Background(), singleRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Passes[0].ImageURL)
	assert.True(t, resp.Passes[0].EmailSent)
	require.Len(t, f.mailer.sent, 1)
	assert.Len(t, f.mailer.sent[0].attachments, 1)
}

func TestRegisterGroup_OneEmailWithEveryPass(t *testing.T) {
	f := newRegistrationFixture(true)

	resp, err := f.svc.RegisterGroup(context.Background(), groupRequest(1))
	require.NoError(t, err)

	require.Len(t, f.store.groups, 1)
	reg := f.store.groups[0]
	assert.Equal(t, models.MemberLeader, reg.Members[0].Role)
	assert.Equal(t, "coach@example.com", reg.Group.ContactEmail)

	assert.Equal(t, "group", resp.EntryType)
	require.Len(t, resp.Passes, 3)
	for _, p := range resp.Passes {
		assert.True(t, p.EmailSent)
		assert.Equal(t, "student", p.HolderType)
	}

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "coach@example.com", f.mailer.sent[0].to)
	assert.Equal(t, "Harbor Voices", f.mailer.sent[0].data.GroupName)
	assert.Len(t, f.mailer.sent[0].attachments, 3)
	assert.Len(t, f.passes.emailed, 3)
}

func TestRegisterGroup_RequiresExactlyOneLeader(t *testing.T) {
	for _, leaders := range []int{0, 2} {
		f := newRegistrationFixture(true)
		_, err := f.svc.RegisterGroup(context.Background(), groupRequest(leaders))
		assert.ErrorIs(t, err, apperrors.ErrInvalidGroupLeadership, "leaders=%d", leaders)
		assert.Empty(t, f.store.groups)
	}
}

func TestRegisterGuest(t *testing.T) {
	f := newRegistrationFixture(true)

	resp, err := f.svc.RegisterGuest(context.Background(), &dto.GuestRegistrationRequest{
		FirstName:     "Rosa",
		LastName:      "Santos",
		Email:         "Rosa@Example.com",
		ContactNumber: "+639171234567",
		GuestType:     "parent",
	})
	require.NoError(t, err)

	require.Len(t, f.store.guests, 1)
	reg := f.store.guests[0]
	assert.Equal(t, models.HolderGuest, reg.Pass.HolderType)
	assert.Equal(t, "guest", resp.EntryType)
	assert.Equal(t, reg.Guest.ID, resp.EntryID)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "rosa@example.com", f.mailer.sent[0].to)
	assert.Empty(t, f.mailer.sent[0].cc)
}
