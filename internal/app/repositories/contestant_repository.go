package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/db"
	"github.com/maritimetq/talentquest/internal/pkg/helpers"
	"github.com/maritimetq/talentquest/internal/pkg/logger"
)

// ContestantRepository reads the contestant_entries view, which puts solo
// contestants and group members in one row shape.
type ContestantRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewContestantRepository creates a new ContestantRepository
func NewContestantRepository(q db.Querier) *ContestantRepository {
	return &ContestantRepository{db: q, sb: newBuilder()}
}

// List returns contestants newest first. A nil page returns every match.
func (r *ContestantRepository) List(ctx context.Context, f models.ContestantFilter, page *models.Page) ([]*models.ContestantEntry, int64, error) {
	base := r.sb.Select().From("contestant_entries")
	if f.EntryType != "" {
		base = base.Where(squirrel.Eq{"entry_type": f.EntryType})
	}
	if f.Category != "" {
		base = base.Where(squirrel.Eq{"category": f.Category})
	}
	if f.Status != "" {
		base = base.Where(squirrel.Eq{"status": f.Status})
	}
	if s := strings.TrimSpace(f.School); s != "" {
		base = base.Where(squirrel.ILike{"school": helpers.ContainsPattern(s)})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := helpers.ContainsPattern(s)
		base = base.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.Expr("(first_name || ' ' || last_name) ILIKE ?", pattern),
			squirrel.ILike{"email": pattern},
		})
	}

	total, err := count(ctx, r.db, base)
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := paginate(base.Columns(
		"student_id", "first_name", "last_name", "email", "school", "grade_level", "entry_type",
		"entry_id", "COALESCE(group_name, '')", "performance_title", "category", "status", "created_at",
	).OrderBy("created_at DESC", "student_id DESC"), page).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list contestants SQL")
		return nil, 0, fmt.Errorf("failed to build list contestants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list contestants query")
		return nil, 0, fmt.Errorf("error listing contestants: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.ContestantEntry, 0)
	for rows.Next() {
		e := &models.ContestantEntry{}
		if err := rows.Scan(&e.StudentID, &e.FirstName, &e.LastName, &e.Email, &e.School, &e.GradeLevel,
			&e.EntryType, &e.EntryID, &e.GroupName, &e.PerformanceTitle, &e.Category, &e.Status, &e.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning contestant row")
			return nil, 0, fmt.Errorf("error scanning contestant: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating contestant rows")
		return nil, 0, fmt.Errorf("error iterating contestant rows: %w", err)
	}
	return entries, total, nil
}
