package services

import (
	"context"
	"testing"
	"time"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/qrpass"
	"github.com/maritimetq/talentquest/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holder(id int64, name, mail, cc, contact string) *models.PassHolder {
	code := qrpass.NewCode()
	payload, _ := qrpass.NewPayload(code, "student", name, testEvent.Name, time.Now()).Marshal()
	studentID := id * 10
	return &models.PassHolder{
		Pass: &models.QRCode{
			ID:         id,
			Code:       code,
			HolderType: models.HolderStudent,
			StudentID:  &studentID,
			Payload:    payload,
			CreatedAt:  time.Now(),
		},
		Name:         name,
		Email:        mail,
		CCEmail:      cc,
		ContactEmail: contact,
	}
}

type passFixture struct {
	passes  *fakePasses
	storage *fakeStorage
	mailer  *fakeMailer
	events  *fakePublisher
	svc     PassService
}

func newPassFixture(holders ...*models.PassHolder) *passFixture {
	f := &passFixture{
		passes:  newFakePasses(holders...),
		storage: newFakeStorage(),
		mailer:  &fakeMailer{},
		events:  &fakePublisher{},
	}
	f.svc = NewPassService(f.passes, f.storage, f.mailer, f.events, testEvent, "https://mtq.test", testLogger)
	return f
}

func TestVerify(t *testing.T) {
	h := holder(1, "Juan Dela Cruz", "juan@example.com", "maria@example.com", "")
	f := newPassFixture(h)

	resp, err := f.svc.Verify(context.Background(), h.Pass.Code)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.False(t, resp.CheckedIn)
	assert.Equal(t, "Juan Dela Cruz", resp.HolderName)
	assert.Equal(t, testEvent.Name, resp.Event)

	_, err = f.svc.Verify(context.Background(), "not-a-code")
	assert.ErrorIs(t, err, apperrors.ErrPassNotFound)

	_, err = f.svc.Verify(context.Background(), qrpass.NewCode())
	assert.ErrorIs(t, err, apperrors.ErrPassNotFound)
}

func TestCheckIn_OnceThenConflict(t *testing.T) {
	h := holder(1, "Juan Dela Cruz", "juan@example.com", "", "")
	f := newPassFixture(h)

	resp, err := f.svc.CheckIn(context.Background(), h.Pass.Code, 7)
	require.NoError(t, err)
	assert.Equal(t, "Juan Dela Cruz", resp.HolderName)
	assert.False(t, resp.CheckedInAt.IsZero())
	assert.Equal(t, int64(7), f.passes.checkedBy[h.Pass.Code])
	assert.Equal(t, []websocket.EventType{websocket.EventPassCheckedIn}, f.events.types())

	_, err = f.svc.CheckIn(context.Background(), h.Pass.Code, 7)
	assert.ErrorIs(t, err, apperrors.ErrPassAlreadyCheckedIn)

	_, err = f.svc.CheckIn(context.Background(), qrpass.NewCode(), 7)
	assert.ErrorIs(t, err, apperrors.ErrPassNotFound)
}

func TestResend_Recipients(t *testing.T) {
	single := holder(1, "Juan Dela Cruz", "juan@example.com", "maria@example.com", "")
	member := holder(2, "Pedro Cruz", "pedro@example.com", "rosa@example.com", "coach@example.com")
	f := newPassFixture(single, member)

	resp, err := f.svc.Resend(context.Background(), single.Pass.Code)
	require.NoError(t, err)
	assert.True(t, resp.EmailSent)
	assert.Equal(t, "juan@example.com", resp.Recipient)

	resp, err = f.svc.Resend(context.Background(), member.Pass.Code)
	require.NoError(t, err)
	assert.Equal(t, "coach@example.com", resp.Recipient)

	require.Len(t, f.mailer.sent, 2)
	assert.Equal(t, []string{"maria@example.com"}, f.mailer.sent[0].cc)
	assert.Empty(t, f.mailer.sent[1].cc, "group passes go to the contact only, like the registration mail")
	assert.ElementsMatch(t, []int64{1, 2}, f.passes.emailed)
}

func TestResend_MailFailure(t *testing.T) {
	h := holder(1, "Juan Dela Cruz", "juan@example.com", "", "")
	f := newPassFixture(h)
	f.mailer.err = errBoom

	resp, err := f.svc.Resend(context.Background(), h.Pass.Code)
	require.NoError(t, err)
	assert.False(t, resp.EmailSent)
	assert.Empty(t, f.passes.emailed)
}

func TestResendPending(t *testing.T) {
	sentAt := time.Now()
	done := holder(1, "Done Already", "done@example.com", "", "")
	done.Pass.EmailedAt = &sentAt
	f := newPassFixture(done,
		holder(2, "Pedro Cruz", "pedro@example.com", "", ""),
		holder(3, "Jose Cruz", "jose@example.com", "", ""))

	sent, failed, err := f.svc.ResendPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 0, failed)
	assert.ElementsMatch(t, []int64{2, 3}, f.passes.emailed)
}
