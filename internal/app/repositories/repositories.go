package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/maritimetq/talentquest/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	StudentRepository    *StudentRepository
	EntryRepository      *EntryRepository
	GuestRepository      *GuestRepository
	PassRepository       *PassRepository
	ContestantRepository *ContestantRepository
	StatsRepository      *StatsRepository
}

// NewRepositories initializes all repositories on top of q, which is either
// the pool or a transaction.
func NewRepositories(q db.Querier) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(q),
		StudentRepository:    NewStudentRepository(q),
		EntryRepository:      NewEntryRepository(q),
		GuestRepository:      NewGuestRepository(q),
		PassRepository:       NewPassRepository(q),
		ContestantRepository: NewContestantRepository(q),
		StatsRepository:      NewStatsRepository(q),
	}
}

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
