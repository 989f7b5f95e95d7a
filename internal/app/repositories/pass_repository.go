package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/db"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/logger"
)

const passColumns = "id, code, holder_type, student_id, guest_id, payload, image_url, emailed_at, checked_in_at, checked_in_by, created_at"

// PassRepository handles qr_codes rows
type PassRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewPassRepository creates a new PassRepository
func NewPassRepository(q db.Querier) *PassRepository {
	return &PassRepository{db: q, sb: newBuilder()}
}

// Create inserts a pass and sets its ID.
func (r *PassRepository) Create(ctx context.Context, p *models.QRCode) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO qr_codes (code, holder_type, student_id, guest_id, payload, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		p.Code, p.HolderType, p.StudentID, p.GuestID, p.Payload, p.ImageURL,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("code", p.Code).Msg("Error executing create pass query")
		return fmt.Errorf("error creating pass: %w", err)
	}
	return nil
}

// GetByCode retrieves a pass by its code
func (r *PassRepository) GetByCode(ctx context.Context, code string) (*models.QRCode, error) {
	p, err := scanPass(r.db.QueryRow(ctx, `SELECT `+passColumns+` FROM qr_codes WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPassNotFound
		}
		logger.Error().Err(err).Str("code", code).Msg("Error retrieving pass")
		return nil, fmt.Errorf("error retrieving pass: %w", err)
	}
	return p, nil
}

// GetByStudent returns nil when the student holds no pass.
func (r *PassRepository) GetByStudent(ctx context.Context, studentID int64) (*models.QRCode, error) {
	p, err := scanPass(r.db.QueryRow(ctx, `SELECT `+passColumns+` FROM qr_codes WHERE student_id = $1 LIMIT 1`, studentID))
	return optional(p, err, "student pass")
}

// GetByGuest returns nil when the guest holds no pass.
func (r *PassRepository) GetByGuest(ctx context.Context, guestID int64) (*models.QRCode, error) {
	p, err := scanPass(r.db.QueryRow(ctx, `SELECT `+passColumns+` FROM qr_codes WHERE guest_id = $1 LIMIT 1`, guestID))
	return optional(p, err, "guest pass")
}

// SetImageURL records where the rendered PNG was stored.
func (r *PassRepository) SetImageURL(ctx context.Context, id int64, url string) error {
	if _, err := r.db.Exec(ctx, `UPDATE qr_codes SET image_url = $1 WHERE id = $2`, url, id); err != nil {
		return fmt.Errorf("error updating pass image: %w", err)
	}
	return nil
}

// MarkEmailed stamps emailed_at on the given passes.
func (r *PassRepository) MarkEmailed(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	sql, args, err := r.sb.Update("qr_codes").
		Set("emailed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark emailed SQL")
		return fmt.Errorf("failed to build mark emailed query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error marking passes emailed: %w", err)
	}
	return nil
}

// CheckIn marks a pass as used. The update only matches a pass that is not
// checked in yet, so two concurrent scans cannot both succeed.
func (r *PassRepository) CheckIn(ctx context.Context, code string, userID int64) (*models.QRCode, error) {
	p, err := scanPass(r.db.QueryRow(ctx, `
		UPDATE qr_codes SET checked_in_at = NOW(), checked_in_by = $2
		WHERE code = $1 AND checked_in_at IS NULL
		RETURNING `+passColumns, code, userID))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("code", code).Msg("Error executing check-in query")
		return nil, fmt.Errorf("error checking in pass: %w", err)
	}

	if _, err := r.GetByCode(ctx, code); err != nil {
		return nil, err
	}
	return nil, apperrors.ErrPassAlreadyCheckedIn
}

// holderSelect joins a pass to the display name and mail recipients of its
// holder. Students who entered as a group carry the group contact.
func (r *PassRepository) holderSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"q.id", "q.code", "q.holder_type", "q.student_id", "q.guest_id", "q.payload", "q.image_url",
		"q.emailed_at", "q.checked_in_at", "q.checked_in_by", "q.created_at",
		"CASE WHEN q.student_id IS NOT NULL THEN CONCAT_WS(' ', s.first_name, NULLIF(s.middle_name, ''), s.last_name) ELSE CONCAT_WS(' ', g.first_name, g.last_name) END",
		"COALESCE(s.email, g.email)",
		"COALESCE(c.guardian_email, '')",
		"COALESCE(gr.contact_email, '')",
	).
		From("qr_codes q").
		LeftJoin("students s ON s.id = q.student_id").
		LeftJoin("guests g ON g.id = q.guest_id").
		LeftJoin("consents c ON c.student_id = s.id").
		LeftJoin("group_members gm ON gm.student_id = s.id").
		LeftJoin("groups gr ON gr.id = gm.group_id")
}

// GetHolder retrieves a pass together with its holder's contact data.
func (r *PassRepository) GetHolder(ctx context.Context, code string) (*models.PassHolder, error) {
	holders, err := r.listHolders(ctx, r.holderSelect().Where(squirrel.Eq{"q.code": code}).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(holders) == 0 {
		return nil, apperrors.ErrPassNotFound
	}
	return holders[0], nil
}

// ListUnsentHolders returns every pass whose email never went out.
func (r *PassRepository) ListUnsentHolders(ctx context.Context) ([]*models.PassHolder, error) {
	return r.listHolders(ctx, r.holderSelect().Where("q.emailed_at IS NULL").OrderBy("q.id"))
}

func (r *PassRepository) listHolders(ctx context.Context, q squirrel.SelectBuilder) ([]*models.PassHolder, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building pass holder SQL")
		return nil, fmt.Errorf("failed to build pass holder query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing pass holder query")
		return nil, fmt.Errorf("error listing pass holders: %w", err)
	}
	defer rows.Close()

	holders := make([]*models.PassHolder, 0)
	for rows.Next() {
		p := &models.QRCode{}
		h := &models.PassHolder{Pass: p}
		if err := rows.Scan(&p.ID, &p.Code, &p.HolderType, &p.StudentID, &p.GuestID, &p.Payload, &p.ImageURL,
			&p.EmailedAt, &p.CheckedInAt, &p.CheckedInBy, &p.CreatedAt,
			&h.Name, &h.Email, &h.CCEmail, &h.ContactEmail); err != nil {
			return nil, fmt.Errorf("error scanning pass holder: %w", err)
		}
		holders = append(holders, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pass holders: %w", err)
	}
	return holders, nil
}

// ImageURLsByStudents lists the stored PNG URLs of the students' passes.
func (r *PassRepository) ImageURLsByStudents(ctx context.Context, studentIDs []int64) ([]string, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	return r.imageURLs(ctx, squirrel.Eq{"student_id": studentIDs})
}

// ImageURLsByGuest lists the stored PNG URLs of a guest's passes.
func (r *PassRepository) ImageURLsByGuest(ctx context.Context, guestID int64) ([]string, error) {
	return r.imageURLs(ctx, squirrel.Eq{"guest_id": guestID})
}

func (r *PassRepository) imageURLs(ctx context.Context, where squirrel.Eq) ([]string, error) {
	sql, args, err := r.sb.Select("image_url").From("qr_codes").
		Where(where).
		Where("image_url <> ''").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build image url query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing pass images: %w", err)
	}
	urls, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error collecting pass images: %w", err)
	}
	return urls, nil
}

func scanPass(row pgx.Row) (*models.QRCode, error) {
	p := &models.QRCode{}
	err := row.Scan(&p.ID, &p.Code, &p.HolderType, &p.StudentID, &p.GuestID, &p.Payload, &p.ImageURL,
		&p.EmailedAt, &p.CheckedInAt, &p.CheckedInBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
