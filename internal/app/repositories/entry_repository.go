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

// EntryRepository handles performances, singles, groups, group members and
// endorsements.
type EntryRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(q db.Querier) *EntryRepository {
	return &EntryRepository{db: q, sb: newBuilder()}
}

// CreatePerformance inserts a performance and sets its ID.
func (r *EntryRepository) CreatePerformance(ctx context.Context, p *models.Performance) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO performances (title, category, description, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		p.Title, p.Category, p.Description, p.DurationMinutes,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create performance query")
		return fmt.Errorf("error creating performance: %w", err)
	}
	return nil
}

// CreateSingle inserts a single entry.
func (r *EntryRepository) CreateSingle(ctx context.Context, s *models.Single) error {
	if s.Status == "" {
		s.Status = models.StatusPending
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO singles (student_id, performance_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		s.StudentID, s.PerformanceID, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "singles_student_id_key") {
			return apperrors.ErrDuplicateContestant
		}
		logger.Error().Err(err).Msg("Error executing create single query")
		return fmt.Errorf("error creating single entry: %w", err)
	}
	return nil
}

// CreateGroup inserts a group. A name already used by the same school maps
// to ErrDuplicateGroup.
func (r *EntryRepository) CreateGroup(ctx context.Context, g *models.Group) error {
	if g.Status == "" {
		g.Status = models.StatusPending
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO groups (name, school, contact_person, contact_email, contact_number, performance_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		g.Name, g.School, g.ContactPerson, strings.ToLower(g.ContactEmail), g.ContactNumber, g.PerformanceID, g.Status,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "groups_name_school_key") {
			return apperrors.ErrDuplicateGroup
		}
		logger.Error().Err(err).Msg("Error executing create group query")
		return fmt.Errorf("error creating group: %w", err)
	}
	return nil
}

// AddMember links a student to a group.
func (r *EntryRepository) AddMember(ctx context.Context, m *models.GroupMember) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO group_members (group_id, student_id, role)
		VALUES ($1, $2, $3)
		RETURNING id`,
		m.GroupID, m.StudentID, m.Role,
	).Scan(&m.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "group_members_one_leader") {
			return apperrors.ErrInvalidGroupLeadership
		}
		return fmt.Errorf("error adding group member: %w", err)
	}
	return nil
}

// CreateEndorsement inserts an endorsement owned by a single or a group.
func (r *EntryRepository) CreateEndorsement(ctx context.Context, e *models.Endorsement) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO endorsements (single_id, group_id, endorser_name, endorser_position, organization, contact_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		e.SingleID, e.GroupID, e.EndorserName, e.EndorserPosition, e.Organization, e.ContactNumber,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating endorsement: %w", err)
	}
	return nil
}

// GetPerformance retrieves a performance by ID
func (r *EntryRepository) GetPerformance(ctx context.Context, id int64) (*models.Performance, error) {
	p := &models.Performance{}
	err := r.db.QueryRow(ctx, `
		SELECT id, title, category, description, duration_minutes, created_at
		FROM performances WHERE id = $1`, id).Scan(
		&p.ID, &p.Title, &p.Category, &p.Description, &p.DurationMinutes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("performance not found")
		}
		return nil, fmt.Errorf("error retrieving performance: %w", err)
	}
	return p, nil
}

// GetSingle retrieves a single entry by ID
func (r *EntryRepository) GetSingle(ctx context.Context, id int64) (*models.Single, error) {
	s, err := r.scanSingle(r.db.QueryRow(ctx, `
		SELECT id, student_id, performance_id, status, created_at, updated_at
		FROM singles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrSingleEntryNotFound
	}
	return s, err
}

// GetSingleByStudent returns nil when the student did not enter solo.
func (r *EntryRepository) GetSingleByStudent(ctx context.Context, studentID int64) (*models.Single, error) {
	s, err := r.scanSingle(r.db.QueryRow(ctx, `
		SELECT id, student_id, performance_id, status, created_at, updated_at
		FROM singles WHERE student_id = $1`, studentID))
	return optional(s, err, "single entry")
}

func (r *EntryRepository) scanSingle(row pgx.Row) (*models.Single, error) {
	s := &models.Single{}
	if err := row.Scan(&s.ID, &s.StudentID, &s.PerformanceID, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logger.Error().Err(err).Msg("Error scanning single row")
			return nil, fmt.Errorf("error retrieving single entry: %w", err)
		}
		return nil, err
	}
	return s, nil
}

// GetMembershipByStudent returns nil when the student is in no group.
func (r *EntryRepository) GetMembershipByStudent(ctx context.Context, studentID int64) (*models.GroupMember, error) {
	m := &models.GroupMember{}
	err := r.db.QueryRow(ctx, `
		SELECT id, group_id, student_id, role FROM group_members WHERE student_id = $1 LIMIT 1`, studentID).Scan(
		&m.ID, &m.GroupID, &m.StudentID, &m.Role)
	return optional(m, err, "group membership")
}

// GetEndorsement returns the endorsement of a single (when singleID is set)
// or of a group, or nil when none exists.
func (r *EntryRepository) GetEndorsement(ctx context.Context, singleID, groupID *int64) (*models.Endorsement, error) {
	var where squirrel.Eq
	switch {
	case singleID != nil:
		where = squirrel.Eq{"single_id": *singleID}
	case groupID != nil:
		where = squirrel.Eq{"group_id": *groupID}
	default:
		return nil, nil
	}
	sql, args, err := r.sb.Select("id", "single_id", "group_id", "endorser_name", "endorser_position",
		"organization", "contact_number", "created_at").
		From("endorsements").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get endorsement SQL")
		return nil, fmt.Errorf("failed to build get endorsement query: %w", err)
	}

	e := &models.Endorsement{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.SingleID, &e.GroupID, &e.EndorserName,
		&e.EndorserPosition, &e.Organization, &e.ContactNumber, &e.CreatedAt)
	return optional(e, err, "endorsement")
}

const groupSelectColumns = `g.id, g.name, g.school, g.contact_person, g.contact_email, g.contact_number,
	g.performance_id, g.status, g.created_at, g.updated_at,
	p.id, p.title, p.category, p.description, p.duration_minutes, p.created_at,
	(SELECT COUNT(*) FROM group_members gm WHERE gm.group_id = g.id)`

func scanGroup(row pgx.Row) (*models.Group, error) {
	g := &models.Group{Performance: &models.Performance{}}
	p := g.Performance
	err := row.Scan(&g.ID, &g.Name, &g.School, &g.ContactPerson, &g.ContactEmail, &g.ContactNumber,
		&g.PerformanceID, &g.Status, &g.CreatedAt, &g.UpdatedAt,
		&p.ID, &p.Title, &p.Category, &p.Description, &p.DurationMinutes, &p.CreatedAt,
		&g.MemberCount)
	return g, err
}

func groupFilter(q squirrel.SelectBuilder, f models.GroupFilter) squirrel.SelectBuilder {
	if f.Category != "" {
		q = q.Where(squirrel.Eq{"p.category": f.Category})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"g.status": f.Status})
	}
	if s := strings.TrimSpace(f.School); s != "" {
		q = q.Where(squirrel.ILike{"g.school": helpers.ContainsPattern(s)})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := helpers.ContainsPattern(s)
		q = q.Where(squirrel.Or{
			squirrel.ILike{"g.name": pattern},
			squirrel.ILike{"g.contact_person": pattern},
			squirrel.ILike{"g.contact_email": pattern},
		})
	}
	return q
}

// ListGroups returns groups newest first with their performance and member
// count. A nil page returns every match.
func (r *EntryRepository) ListGroups(ctx context.Context, f models.GroupFilter, page *models.Page) ([]*models.Group, int64, error) {
	base := groupFilter(r.sb.Select().From("groups g").Join("performances p ON p.id = g.performance_id"), f)

	total, err := count(ctx, r.db, base)
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := paginate(base.Columns(groupSelectColumns).OrderBy("g.created_at DESC", "g.id DESC"), page).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list groups SQL")
		return nil, 0, fmt.Errorf("failed to build list groups query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list groups query")
		return nil, 0, fmt.Errorf("error listing groups: %w", err)
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning group row")
			return nil, 0, fmt.Errorf("error scanning group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating group rows")
		return nil, 0, fmt.Errorf("error iterating group rows: %w", err)
	}
	return groups, total, nil
}

// GetGroup retrieves a group with its performance and members.
func (r *EntryRepository) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	g, err := scanGroup(r.db.QueryRow(ctx, `
		SELECT `+groupSelectColumns+`
		FROM groups g JOIN performances p ON p.id = g.performance_id
		WHERE g.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		logger.Error().Err(err).Int64("groupID", id).Msg("Error retrieving group")
		return nil, fmt.Errorf("error retrieving group: %w", err)
	}

	if g.Members, err = r.ListMembers(ctx, id); err != nil {
		return nil, err
	}
	return g, nil
}

// ListMembers returns the members of a group, leader first.
func (r *EntryRepository) ListMembers(ctx context.Context, groupID int64) ([]*models.GroupMember, error) {
	rows, err := r.db.Query(ctx, `
		SELECT gm.id, gm.group_id, gm.student_id, gm.role,
			s.id, s.first_name, s.middle_name, s.last_name, s.birth_date, s.gender, s.school,
			s.grade_level, s.email, s.contact_number, s.address, s.created_at
		FROM group_members gm
		JOIN students s ON s.id = gm.student_id
		WHERE gm.group_id = $1
		ORDER BY (gm.role = 'leader') DESC, gm.id`, groupID)
	if err != nil {
		logger.Error().Err(err).Int64("groupID", groupID).Msg("Error executing list members query")
		return nil, fmt.Errorf("error listing group members: %w", err)
	}
	defer rows.Close()

	members := make([]*models.GroupMember, 0)
	for rows.Next() {
		m := &models.GroupMember{Student: &models.Student{}}
		s := m.Student
		if err := rows.Scan(&m.ID, &m.GroupID, &m.StudentID, &m.Role,
			&s.ID, &s.FirstName, &s.MiddleName, &s.LastName, &s.BirthDate, &s.Gender, &s.School,
			&s.GradeLevel, &s.Email, &s.ContactNumber, &s.Address, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning group member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group members: %w", err)
	}
	return members, nil
}

// UpdateSingleStatus sets the review status of a single entry.
func (r *EntryRepository) UpdateSingleStatus(ctx context.Context, id int64, status models.Status) error {
	return updateStatus(ctx, r.db, r.sb, "singles", id, status, apperrors.ErrSingleEntryNotFound)
}

// UpdateGroupStatus sets the review status of a group.
func (r *EntryRepository) UpdateGroupStatus(ctx context.Context, id int64, status models.Status) error {
	return updateStatus(ctx, r.db, r.sb, "groups", id, status, apperrors.ErrGroupNotFound)
}

// DeleteSingle removes a single entry and returns the IDs of its student and
// performance so the caller can remove them too.
func (r *EntryRepository) DeleteSingle(ctx context.Context, id int64) (studentID, performanceID int64, err error) {
	err = r.db.QueryRow(ctx, `DELETE FROM singles WHERE id = $1 RETURNING student_id, performance_id`, id).
		Scan(&studentID, &performanceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, apperrors.ErrSingleEntryNotFound
		}
		return 0, 0, fmt.Errorf("error deleting single entry: %w", err)
	}
	return studentID, performanceID, nil
}

// DeleteGroup removes a group and returns the student IDs of its former
// members along with the performance ID.
func (r *EntryRepository) DeleteGroup(ctx context.Context, id int64) (studentIDs []int64, performanceID int64, err error) {
	rows, err := r.db.Query(ctx, `SELECT student_id FROM group_members WHERE group_id = $1`, id)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing group member ids: %w", err)
	}
	studentIDs, err = pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, 0, fmt.Errorf("error collecting group member ids: %w", err)
	}

	err = r.db.QueryRow(ctx, `DELETE FROM groups WHERE id = $1 RETURNING performance_id`, id).Scan(&performanceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, apperrors.ErrGroupNotFound
		}
		return nil, 0, fmt.Errorf("error deleting group: %w", err)
	}
	return studentIDs, performanceID, nil
}

// DeletePerformance removes a performance no entry references any more.
func (r *EntryRepository) DeletePerformance(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM performances WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting performance: %w", err)
	}
	return nil
}

func updateStatus(ctx context.Context, q db.Querier, sb squirrel.StatementBuilderType, table string, id int64, status models.Status, notFound error) error {
	sql, args, err := sb.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error building update status SQL")
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", table).Int64("id", id).Msg("Error executing update status query")
		return fmt.Errorf("error updating status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

// count runs SELECT COUNT(*) over the FROM/JOIN/WHERE of q.
func count(ctx context.Context, q db.Querier, base squirrel.SelectBuilder) (int64, error) {
	sql, args, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count SQL")
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count query")
		return 0, fmt.Errorf("error counting rows: %w", err)
	}
	return total, nil
}

func paginate(q squirrel.SelectBuilder, page *models.Page) squirrel.SelectBuilder {
	if page == nil {
		return q
	}
	offset, limit := helpers.CalculateOffsetLimit(page.Number, page.Size)
	return q.Limit(limit).Offset(offset)
}
