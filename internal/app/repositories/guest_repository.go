package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/db"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/dberrors"
	"github.com/maritimetq/talentquest/internal/pkg/helpers"
	"github.com/maritimetq/talentquest/internal/pkg/logger"
)

const guestColumns = "id, first_name, last_name, email, contact_number, affiliation, guest_type, status, created_at, updated_at"

// GuestRepository handles guest database operations
type GuestRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewGuestRepository creates a new GuestRepository
func NewGuestRepository(q db.Querier) *GuestRepository {
	return &GuestRepository{db: q, sb: newBuilder()}
}

// Create inserts a guest. An email already registered maps to
// ErrDuplicateGuest.
func (r *GuestRepository) Create(ctx context.Context, g *models.Guest) error {
	if g.Status == "" {
		g.Status = models.StatusPending
	}
	sql, args, err := r.sb.Insert("guests").
		Columns("first_name", "last_name", "email", "contact_number", "affiliation", "guest_type", "status").
		Values(g.FirstName, g.LastName, strings.ToLower(g.Email), g.ContactNumber, g.Affiliation, g.GuestType, g.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create guest SQL")
		return fmt.Errorf("failed to build create guest query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "guests_email_key") {
			return apperrors.ErrDuplicateGuest
		}
		logger.Error().Err(err).Msg("Error executing create guest query")
		return fmt.Errorf("error creating guest: %w", err)
	}
	return nil
}

// GetByID retrieves a guest by ID
func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*models.Guest, error) {
	g, err := scanGuest(r.db.QueryRow(ctx, `SELECT `+guestColumns+` FROM guests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGuestNotFound
		}
		logger.Error().Err(err).Int64("guestID", id).Msg("Error retrieving guest")
		return nil, fmt.Errorf("error retrieving guest: %w", err)
	}
	return g, nil
}

// List returns guests newest first. A nil page returns every match.
func (r *GuestRepository) List(ctx context.Context, f models.GuestFilter, page *models.Page) ([]*models.Guest, int64, error) {
	base := r.sb.Select().From("guests")
	if f.GuestType != "" {
		base = base.Where(squirrel.Eq{"guest_type": f.GuestType})
	}
	if f.Status != "" {
		base = base.Where(squirrel.Eq{"status": f.Status})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := helpers.ContainsPattern(s)
		base = base.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"affiliation": pattern},
		})
	}

	total, err := count(ctx, r.db, base)
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := paginate(base.Columns(guestColumns).OrderBy("created_at DESC", "id DESC"), page).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list guests SQL")
		return nil, 0, fmt.Errorf("failed to build list guests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list guests query")
		return nil, 0, fmt.Errorf("error listing guests: %w", err)
	}
	defer rows.Close()

	guests := make([]*models.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning guest row")
			return nil, 0, fmt.Errorf("error scanning guest: %w", err)
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating guest rows: %w", err)
	}
	return guests, total, nil
}

// UpdateStatus sets the review status of a guest.
func (r *GuestRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	return updateStatus(ctx, r.db, r.sb, "guests", id, status, apperrors.ErrGuestNotFound)
}

// Delete removes a guest; the guest's pass cascades.
func (r *GuestRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("guestID", id).Msg("Error executing delete guest query")
		return fmt.Errorf("error deleting guest: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGuestNotFound
	}
	return nil
}

func scanGuest(row pgx.Row) (*models.Guest, error) {
	g := &models.Guest{}
	err := row.Scan(&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.ContactNumber,
		&g.Affiliation, &g.GuestType, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}
