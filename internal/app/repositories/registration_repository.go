package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/db"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
)

// Transactor runs a function inside a database transaction.
// *db.PostgresDB satisfies it.
type Transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// RegistrationRepository writes and removes whole registrations. Every
// method runs in one transaction, so a failure leaves no partial rows.
type RegistrationRepository struct {
	tx Transactor
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(tx Transactor) *RegistrationRepository {
	return &RegistrationRepository{tx: tx}
}

// CreateSingle persists a solo contestant with all dependent records and
// the pass. An email that already holds a single entry is rejected with
// ErrDuplicateContestant.
func (r *RegistrationRepository) CreateSingle(ctx context.Context, reg *models.SingleRegistration) error {
	return r.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := NewRepositories(tx)
		students := repos.StudentRepository
		entries := repos.EntryRepository

		if err := students.LockEmail(ctx, reg.Student.Email); err != nil {
			return err
		}
		exists, err := students.HasSingleEntry(ctx, reg.Student.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrDuplicateContestant
		}

		if err := students.Create(ctx, reg.Student); err != nil {
			return err
		}
		if err := entries.CreatePerformance(ctx, reg.Performance); err != nil {
			return err
		}

		reg.Single.StudentID = reg.Student.ID
		reg.Single.PerformanceID = reg.Performance.ID
		if err := entries.CreateSingle(ctx, reg.Single); err != nil {
			return err
		}

		if err := createStudentRecords(ctx, students, reg.Student.ID, reg.Requirements, reg.Health, reg.Consent); err != nil {
			return err
		}

		if reg.Endorsement != nil {
			reg.Endorsement.SingleID = &reg.Single.ID
			if err := entries.CreateEndorsement(ctx, reg.Endorsement); err != nil {
				return err
			}
		}

		reg.Pass.StudentID = &reg.Student.ID
		return repos.PassRepository.Create(ctx, reg.Pass)
	})
}

// CreateGroup persists a group, its performance and endorsement, and every
// member with their records and pass.
func (r *RegistrationRepository) CreateGroup(ctx context.Context, reg *models.GroupRegistration) error {
	return r.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := NewRepositories(tx)
		entries := repos.EntryRepository

		if err := entries.CreatePerformance(ctx, reg.Performance); err != nil {
			return err
		}
		reg.Group.PerformanceID = reg.Performance.ID
		if err := entries.CreateGroup(ctx, reg.Group); err != nil {
			return err
		}

		if reg.Endorsement != nil {
			reg.Endorsement.GroupID = &reg.Group.ID
			if err := entries.CreateEndorsement(ctx, reg.Endorsement); err != nil {
				return err
			}
		}

		for _, m := range reg.Members {
			if err := repos.StudentRepository.Create(ctx, m.Student); err != nil {
				return err
			}
			member := &models.GroupMember{GroupID: reg.Group.ID, StudentID: m.Student.ID, Role: m.Role}
			if err := entries.AddMember(ctx, member); err != nil {
				return err
			}
			if err := createStudentRecords(ctx, repos.StudentRepository, m.Student.ID, m.Requirements, m.Health, m.Consent); err != nil {
				return err
			}
			m.Pass.StudentID = &m.Student.ID
			if err := repos.PassRepository.Create(ctx, m.Pass); err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateGuest persists a guest and their pass.
func (r *RegistrationRepository) CreateGuest(ctx context.Context, reg *models.GuestRegistration) error {
	return r.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := NewRepositories(tx)
		if err := repos.GuestRepository.Create(ctx, reg.Guest); err != nil {
			return err
		}
		reg.Pass.GuestID = &reg.Guest.ID
		return repos.PassRepository.Create(ctx, reg.Pass)
	})
}

// DeleteSingle removes a single entry with its student and performance.
// It returns the image URLs of the passes that went with it.
func (r *RegistrationRepository) DeleteSingle(ctx context.Context, id int64) ([]string, error) {
	var urls []string
	err := r.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := NewRepositories(tx)
		studentID, performanceID, err := repos.EntryRepository.DeleteSingle(ctx, id)
		if err != nil {
			return err
		}
		if urls, err = repos.PassRepository.ImageURLsByStudents(ctx, []int64{studentID}); err != nil {
			return err
		}
		if err := repos.StudentRepository.DeleteByIDs(ctx, []int64{studentID}); err != nil {
			return err
		}
		return repos.EntryRepository.DeletePerformance(ctx, performanceID)
	})
	return urls, err
}

// DeleteGroup removes a group, its member students and its performance.
// It returns the image URLs of the members' passes.
func (r *RegistrationRepository) DeleteGroup(ctx context.Context, id int64) ([]string, error) {
	var urls []string
	err := r.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := NewRepositories(tx)
		studentIDs, performanceID, err := repos.EntryRepository.DeleteGroup(ctx, id)
		if err != nil {
			return err
		}
		if urls, err = repos.PassRepository.ImageURLsByStudents(ctx, studentIDs); err != nil {
			return err
		}
		if err := repos.StudentRepository.DeleteByIDs(ctx, studentIDs); err != nil {
			return err
		}
		return repos.EntryRepository.DeletePerformance(ctx, performanceID)
	})
	return urls, err
}

// DeleteGuest removes a guest and returns the image URLs of their pass.
func (r *RegistrationRepository) DeleteGuest(ctx context.Context, id int64) ([]string, error) {
	var urls []string
	err := r.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := NewRepositories(tx)
		var err error
		if urls, err = repos.PassRepository.ImageURLsByGuest(ctx, id); err != nil {
			return err
		}
		return repos.GuestRepository.Delete(ctx, id)
	})
	return urls, err
}

func createStudentRecords(ctx context.Context, students *StudentRepository, studentID int64,
	req *models.Requirements, health *models.HealthFitness, consent *models.Consent) error {
	if req != nil {
		req.StudentID = studentID
		if err := students.CreateRequirements(ctx, req); err != nil {
			return err
		}
	}
	if health != nil {
		health.StudentID = studentID
		if err := students.CreateHealth(ctx, health); err != nil {
			return err
		}
	}
	if consent != nil {
		consent.StudentID = studentID
		if err := students.CreateConsent(ctx, consent); err != nil {
			return err
		}
	}
	return nil
}
