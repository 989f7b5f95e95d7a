package repositories

import (
	"context"
	"fmt"

	"github.com/maritimetq/talentquest/internal/db"
	"github.com/maritimetq/talentquest/internal/pkg/logger"
)

// EntryTotals counts registrations per kind.
type EntryTotals struct {
	Singles      int64
	Groups       int64
	GroupMembers int64
	Guests       int64
}

// PassTotals counts passes by lifecycle stage.
type PassTotals struct {
	Issued       int64
	CheckedIn    int64
	PendingEmail int64
}

// StatsRepository runs the aggregate queries behind the dashboard summary.
// Each method is a single query so callers may run them concurrently on
// the pool.
type StatsRepository struct {
	db db.Querier
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(q db.Querier) *StatsRepository {
	return &StatsRepository{db: q}
}

// EntryTotals counts singles, groups, group members and guests.
func (r *StatsRepository) EntryTotals(ctx context.Context) (EntryTotals, error) {
	var t EntryTotals
	err := r.db.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM singles),
		       (SELECT COUNT(*) FROM groups),
		       (SELECT COUNT(*) FROM group_members),
		       (SELECT COUNT(*) FROM guests)`).
		Scan(&t.Singles, &t.Groups, &t.GroupMembers, &t.Guests)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting entries")
		return t, fmt.Errorf("error counting entries: %w", err)
	}
	return t, nil
}

// CountByStatus counts singles, groups and guests per review status.
func (r *StatsRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.grouped(ctx, "status", `
		SELECT status, COUNT(*) FROM (
			SELECT status FROM singles
			UNION ALL SELECT status FROM groups
			UNION ALL SELECT status FROM guests
		) s GROUP BY status`)
}

// CountByCategory counts single and group entries per performance category.
func (r *StatsRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return r.grouped(ctx, "category", `
		SELECT p.category, COUNT(*) FROM performances p
		WHERE EXISTS (SELECT 1 FROM singles s WHERE s.performance_id = p.id)
		   OR EXISTS (SELECT 1 FROM groups g WHERE g.performance_id = p.id)
		GROUP BY p.category`)
}

// CountByGuestType counts guests per type.
func (r *StatsRepository) CountByGuestType(ctx context.Context) (map[string]int64, error) {
	return r.grouped(ctx, "guest type", `SELECT guest_type, COUNT(*) FROM guests GROUP BY guest_type`)
}

// PassTotals counts issued, checked-in and not-yet-emailed passes.
func (r *StatsRepository) PassTotals(ctx context.Context) (PassTotals, error) {
	var t PassTotals
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE checked_in_at IS NOT NULL),
		       COUNT(*) FILTER (WHERE emailed_at IS NULL)
		FROM qr_codes`).
		Scan(&t.Issued, &t.CheckedIn, &t.PendingEmail)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting passes")
		return t, fmt.Errorf("error counting passes: %w", err)
	}
	return t, nil
}

func (r *StatsRepository) grouped(ctx context.Context, what, sql string) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		logger.Error().Err(err).Msgf("Error counting by %s", what)
		return nil, fmt.Errorf("error counting by %s: %w", what, err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("error scanning %s count: %w", what, err)
		}
		out[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s counts: %w", what, err)
	}
	return out, nil
}
