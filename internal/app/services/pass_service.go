package services

import (
	"context"
	"errors"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/email"
	"github.com/maritimetq/talentquest/internal/pkg/filestorage"
	"github.com/maritimetq/talentquest/internal/pkg/qrpass"
	"github.com/maritimetq/talentquest/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// PassService defines pass verification, check-in and resend operations
type PassService interface {
	Verify(ctx context.Context, code string) (*dto.PassVerificationResponse, error)
	CheckIn(ctx context.Context, code string, userID int64) (*dto.CheckInResponse, error)
	Resend(ctx context.Context, code string) (*dto.ResendResponse, error)
	// ResendPending emails every pass whose email never went out.
	ResendPending(ctx context.Context) (sent, failed int, err error)
}

type passServiceImpl struct {
	passes   PassStore
	delivery *passDelivery
	events   EventPublisher
	logger   zerolog.Logger
}

// NewPassService creates a new pass service instance
func NewPassService(
	passes PassStore,
	storage filestorage.FileStorage,
	mailer email.EmailService,
	events EventPublisher,
	event EventInfo,
	publicBaseURL string,
	logger zerolog.Logger,
) PassService {
	return &passServiceImpl{
		passes: passes,
		delivery: &passDelivery{
			passes:  passes,
			storage: storage,
			mailer:  mailer,
			event:   event,
			baseURL: publicBaseURL,
			logger:  logger,
		},
		events: publisherOrNoop(events),
		logger: logger,
	}
}

func (s *passServiceImpl) holder(ctx context.Context, code string) (*models.PassHolder, error) {
	if !qrpass.ValidCode(code) {
		return nil, apperrors.ErrPassNotFound
	}
	return s.passes.GetHolder(ctx, code)
}

// Verify returns the public view of a pass. Contact data is left out.
func (s *passServiceImpl) Verify(ctx context.Context, code string) (*dto.PassVerificationResponse, error) {
	h, err := s.holder(ctx, code)
	if err != nil {
		return nil, err
	}

	event := s.delivery.event.Name
	if payload, err := qrpass.ParsePayload(h.Pass.Payload); err == nil && payload.Event != "" {
		event = payload.Event
	}

	return &dto.PassVerificationResponse{
		Code:        h.Pass.Code,
		HolderType:  string(h.Pass.HolderType),
		HolderName:  h.Name,
		Event:       event,
		Valid:       true,
		CheckedIn:   h.Pass.CheckedIn(),
		CheckedInAt: h.Pass.CheckedInAt,
	}, nil
}

// CheckIn marks a scanned pass as used by userID.
func (s *passServiceImpl) CheckIn(ctx context.Context, code string, userID int64) (*dto.CheckInResponse, error) {
	if !qrpass.ValidCode(code) {
		return nil, apperrors.ErrPassNotFound
	}

	pass, err := s.passes.CheckIn(ctx, code, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrPassNotFound) && !errors.Is(err, apperrors.ErrPassAlreadyCheckedIn) {
			s.logger.Error().Err(err).Str("code", code).Msg("Check-in failed")
		}
		return nil, err
	}

	name := ""
	if h, err := s.passes.GetHolder(ctx, code); err == nil {
		name = h.Name
	} else {
		s.logger.Warn().Err(err).Str("code", code).Msg("Checked in pass without holder details")
	}

	resp := &dto.CheckInResponse{
		Code:        pass.Code,
		HolderType:  string(pass.HolderType),
		HolderName:  name,
		CheckedInAt: *pass.CheckedInAt,
	}
	s.events.Publish(newEvent(websocket.EventPassCheckedIn, "pass", pass.ID, resp))
	s.logger.Info().Str("code", code).Int64("userID", userID).Msg("Pass checked in")
	return resp, nil
}

// Resend re-renders a pass and emails it again.
func (s *passServiceImpl) Resend(ctx context.Context, code string) (*dto.ResendResponse, error) {
	h, err := s.holder(ctx, code)
	if err != nil {
		return nil, err
	}

	m := mailingFor(h)
	results := s.delivery.deliver(ctx, m)
	return &dto.ResendResponse{
		Code:      h.Pass.Code,
		Recipient: m.to,
		EmailSent: len(results) == 1 && results[0].EmailSent,
	}, nil
}

func (s *passServiceImpl) ResendPending(ctx context.Context) (sent, failed int, err error) {
	holders, err := s.passes.ListUnsentHolders(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, h := range holders {
		if err := ctx.Err(); err != nil {
			return sent, failed, err
		}
		results := s.delivery.deliver(ctx, mailingFor(h))
		if len(results) == 1 && results[0].EmailSent {
			sent++
		} else {
			failed++
		}
	}
	s.logger.Info().Int("sent", sent).Int("failed", failed).Msg("Pending pass emails processed")
	return sent, failed, nil
}
