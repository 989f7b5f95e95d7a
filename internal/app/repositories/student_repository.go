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
	"github.com/maritimetq/talentquest/internal/pkg/logger"
)

// StudentRepository persists students and their per-student records
// (requirements, health declaration, guardian consent).
type StudentRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.Querier) *StudentRepository {
	return &StudentRepository{db: q, sb: newBuilder()}
}

// Create inserts a student and sets its ID.
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("first_name", "middle_name", "last_name", "birth_date", "gender",
			"school", "grade_level", "email", "contact_number", "address").
		Values(s.FirstName, s.MiddleName, s.LastName, s.BirthDate, s.Gender,
			s.School, s.GradeLevel, strings.ToLower(s.Email), s.ContactNumber, s.Address).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// CreateRequirements stores the uploaded document URLs of a student.
func (r *StudentRepository) CreateRequirements(ctx context.Context, req *models.Requirements) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO requirements (student_id, birth_certificate_url, school_id_url, photo_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, submitted_at`,
		req.StudentID, req.BirthCertificateURL, req.SchoolIDURL, req.PhotoURL,
	).Scan(&req.ID, &req.SubmittedAt)
	if err != nil {
		return fmt.Errorf("error creating requirements: %w", err)
	}
	return nil
}

// CreateHealth stores the health declaration of a student.
func (r *StudentRepository) CreateHealth(ctx context.Context, h *models.HealthFitness) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO health_fitness (student_id, has_medical_condition, medical_conditions, allergies,
			medications, fit_to_perform, emergency_contact_name, emergency_contact_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		h.StudentID, h.HasMedicalCondition, h.MedicalConditions, h.Allergies,
		h.Medications, h.FitToPerform, h.EmergencyContactName, h.EmergencyContactNumber,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("error creating health record: %w", err)
	}
	return nil
}

// CreateConsent stores the guardian consent of a student.
func (r *StudentRepository) CreateConsent(ctx context.Context, c *models.Consent) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO consents (student_id, guardian_name, guardian_relationship, guardian_contact,
			guardian_email, agreed, photo_release)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, signed_at`,
		c.StudentID, c.GuardianName, c.GuardianRelationship, c.GuardianContact,
		strings.ToLower(c.GuardianEmail), c.Agreed, c.PhotoRelease,
	).Scan(&c.ID, &c.SignedAt)
	if err != nil {
		return fmt.Errorf("error creating consent: %w", err)
	}
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	s := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, first_name, middle_name, last_name, birth_date, gender, school,
			grade_level, email, contact_number, address, created_at
		FROM students WHERE id = $1`, id).Scan(
		&s.ID, &s.FirstName, &s.MiddleName, &s.LastName, &s.BirthDate, &s.Gender, &s.School,
		&s.GradeLevel, &s.Email, &s.ContactNumber, &s.Address, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContestantNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error retrieving student")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return s, nil
}

// GetRequirements returns nil when the student has none on file.
func (r *StudentRepository) GetRequirements(ctx context.Context, studentID int64) (*models.Requirements, error) {
	req := &models.Requirements{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, birth_certificate_url, school_id_url, photo_url, submitted_at
		FROM requirements WHERE student_id = $1`, studentID).Scan(
		&req.ID, &req.StudentID, &req.BirthCertificateURL, &req.SchoolIDURL, &req.PhotoURL, &req.SubmittedAt)
	return optional(req, err, "requirements")
}

// GetHealth returns nil when the student has no health declaration.
func (r *StudentRepository) GetHealth(ctx context.Context, studentID int64) (*models.HealthFitness, error) {
	h := &models.HealthFitness{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, has_medical_condition, medical_conditions, allergies, medications,
			fit_to_perform, emergency_contact_name, emergency_contact_number
		FROM health_fitness WHERE student_id = $1`, studentID).Scan(
		&h.ID, &h.StudentID, &h.HasMedicalCondition, &h.MedicalConditions, &h.Allergies, &h.Medications,
		&h.FitToPerform, &h.EmergencyContactName, &h.EmergencyContactNumber)
	return optional(h, err, "health record")
}

// GetConsent returns nil when the student has no consent on file.
func (r *StudentRepository) GetConsent(ctx context.Context, studentID int64) (*models.Consent, error) {
	c := &models.Consent{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, guardian_name, guardian_relationship, guardian_contact,
			guardian_email, agreed, photo_release, signed_at
		FROM consents WHERE student_id = $1`, studentID).Scan(
		&c.ID, &c.StudentID, &c.GuardianName, &c.GuardianRelationship, &c.GuardianContact,
		&c.GuardianEmail, &c.Agreed, &c.PhotoRelease, &c.SignedAt)
	return optional(c, err, "consent")
}

// LockEmail takes a transaction-scoped advisory lock on an email so two
// concurrent registrations for it serialize. Must run inside a transaction.
func (r *StudentRepository) LockEmail(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext(LOWER($1)))`, email)
	if err != nil {
		return fmt.Errorf("error locking email: %w", err)
	}
	return nil
}

// HasSingleEntry reports whether a student with this email already holds a
// single entry.
func (r *StudentRepository) HasSingleEntry(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM singles si
			JOIN students st ON st.id = si.student_id
			WHERE LOWER(st.email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking single entry: %w", err)
	}
	return exists, nil
}

// DeleteByIDs removes students; their requirements, health, consent,
// memberships and passes cascade.
func (r *StudentRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	sql, args, err := r.sb.Delete("students").Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete students SQL")
		return fmt.Errorf("failed to build delete students query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting students: %w", err)
	}
	return nil
}

func optional[T any](v *T, err error, what string) (*T, error) {
	if err == nil {
		return v, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	logger.Error().Err(err).Msgf("Error retrieving %s", what)
	return nil, fmt.Errorf("error retrieving %s: %w", what, err)
}
