package services

import (
	"context"
	"strings"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/pkg/email"
	"github.com/maritimetq/talentquest/internal/pkg/filestorage"
	"github.com/maritimetq/talentquest/internal/pkg/qrpass"
	"github.com/rs/zerolog"
)

// issuedPass is a stored pass with the name printed for its holder.
type issuedPass struct {
	pass       *models.QRCode
	holderName string
}

// mailing is one pass email: a recipient and the passes attached to it.
type mailing struct {
	to            string
	cc            []string
	recipientName string
	groupName     string
	passes        []issuedPass
}

// passDelivery renders, stores and emails passes that are already
// committed. Failures are logged and reported per pass, never returned:
// the registration stands and staff can resend later.
type passDelivery struct {
	passes  PassStore
	storage filestorage.FileStorage
	mailer  email.EmailService
	event   EventInfo
	baseURL string
	logger  zerolog.Logger
}

func (d *passDelivery) verifyURL(code string) string {
	return strings.TrimRight(d.baseURL, "/") + "/api/v1/passes/" + code
}

// render returns the PNG of a pass, re-deriving the payload when the stored
// one cannot be decoded.
func (d *passDelivery) render(p issuedPass) ([]byte, error) {
	payload, err := qrpass.ParsePayload(p.pass.Payload)
	if err != nil {
		payload = qrpass.NewPayload(p.pass.Code, string(p.pass.HolderType), p.holderName, d.event.Name, p.pass.CreatedAt)
	}
	return qrpass.Render(payload)
}

func (d *passDelivery) deliver(ctx context.Context, m mailing) []dto.PassResponse {
	results := make([]dto.PassResponse, len(m.passes))
	attachments := make([]email.Attachment, 0, len(m.passes))
	entries := make([]email.PassEntry, 0, len(m.passes))
	attached := make([]int, 0, len(m.passes))

	for i, p := range m.passes {
		results[i] = dto.PassResponse{
			Code:       p.pass.Code,
			HolderType: string(p.pass.HolderType),
			HolderName: p.holderName,
			ImageURL:   p.pass.ImageURL,
		}

		png, err := d.render(p)
		if err != nil {
			d.logger.Error().Err(err).Str("code", p.pass.Code).Msg("Failed to render pass")
			continue
		}

		url, err := d.storage.SaveBytes(ctx, qrpass.ObjectKey(p.pass.Code), png, "image/png")
		if err != nil {
			d.logger.Error().Err(err).Str("code", p.pass.Code).Msg("Failed to store pass image")
		} else if url != p.pass.ImageURL {
			if err := d.passes.SetImageURL(ctx, p.pass.ID, url); err != nil {
				d.logger.Error().Err(err).Str("code", p.pass.Code).Msg("Failed to record pass image URL")
			} else {
				p.pass.ImageURL = url
				results[i].ImageURL = url
			}
		}

		attachments = append(attachments, email.Attachment{
			Filename:    qrpass.FileName(p.holderName, p.pass.Code),
			ContentType: "image/png",
			Data:        png,
		})
		entries = append(entries, email.PassEntry{
			HolderName: p.holderName,
			Code:       p.pass.Code,
			VerifyURL:  d.verifyURL(p.pass.Code),
		})
		attached = append(attached, i)
	}

	if len(attached) == 0 || strings.TrimSpace(m.to) == "" {
		return results
	}

	data := email.PassEmailData{
		EventName:     d.event.Name,
		Venue:         d.event.Venue,
		Date:          d.event.Date,
		RecipientName: m.recipientName,
		GroupName:     m.groupName,
		Passes:        entries,
	}
	if err := d.mailer.SendPassEmail(ctx, m.to, m.cc, data, attachments); err != nil {
		d.logger.Error().Err(err).Str("to", m.to).Int("passes", len(attached)).Msg("Failed to send pass email")
		return results
	}

	ids := make([]int64, 0, len(attached))
	for _, i := range attached {
		ids = append(ids, m.passes[i].pass.ID)
	}
	if err := d.passes.MarkEmailed(ctx, ids); err != nil {
		// the mail went out; a later resend will duplicate it
		d.logger.Error().Err(err).Ints64("passIDs", ids).Msg("Failed to mark passes as emailed")
	}
	for _, i := range attached {
		results[i].EmailSent = true
	}
	return results
}

// mailingFor builds the single-pass mailing used for resends. Group
// members' passes go to the group contact alone, as the registration mail
// does. Everyone else's go to the holder with the guardian in copy.
func mailingFor(h *models.PassHolder) mailing {
	m := mailing{
		to:            h.Email,
		recipientName: h.Name,
		passes:        []issuedPass{{pass: h.Pass, holderName: h.Name}},
	}
	if h.ContactEmail != "" {
		m.to = h.ContactEmail
		return m
	}
	if h.CCEmail != "" && !strings.EqualFold(h.CCEmail, m.to) {
		m.cc = []string{h.CCEmail}
	}
	return m
}
