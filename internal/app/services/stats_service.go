package services

import (
	"context"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/app/repositories"
	"golang.org/x/sync/errgroup"
)

// StatsService computes the dashboard summary
type StatsService interface {
	Summary(ctx context.Context) (*dto.StatsResponse, error)
}

type statsServiceImpl struct {
	stats StatsStore
}

// NewStatsService creates a new stats service instance
func NewStatsService(stats StatsStore) StatsService {
	return &statsServiceImpl{stats: stats}
}

// Summary runs the aggregate queries concurrently. Every known category,
// status and guest type is present in the maps, zero when unused.
func (s *statsServiceImpl) Summary(ctx context.Context) (*dto.StatsResponse, error) {
	var (
		entries                         repositories.EntryTotals
		passes                          repositories.PassTotals
		byStatus, byCategory, byGuestTy map[string]int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		entries, err = s.stats.EntryTotals(ctx)
		return err
	})
	g.Go(func() (err error) {
		passes, err = s.stats.PassTotals(ctx)
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.stats.CountByStatus(ctx)
		return err
	})
	g.Go(func() (err error) {
		byCategory, err = s.stats.CountByCategory(ctx)
		return err
	})
	g.Go(func() (err error) {
		byGuestTy, err = s.stats.CountByGuestType(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	statuses := []string{string(models.StatusPending), string(models.StatusApproved), string(models.StatusRejected)}
	categories := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		categories = append(categories, string(c))
	}
	guestTypes := []string{string(models.GuestParent), string(models.GuestAlumni), string(models.GuestFaculty), string(models.GuestVisitor)}

	return &dto.StatsResponse{
		Singles:            entries.Singles,
		Groups:             entries.Groups,
		GroupMembers:       entries.GroupMembers,
		Contestants:        entries.Singles + entries.GroupMembers,
		Guests:             entries.Guests,
		ByStatus:           withKeys(byStatus, statuses),
		ByCategory:         withKeys(byCategory, categories),
		ByGuestType:        withKeys(byGuestTy, guestTypes),
		CheckedIn:          passes.CheckedIn,
		PassesIssued:       passes.Issued,
		PassesPendingEmail: passes.PendingEmail,
	}, nil
}

func withKeys(m map[string]int64, keys []string) map[string]int64 {
	out := make(map[string]int64, len(keys))
	for _, k := range keys {
		out[k] = 0
	}
	for k, v := range m {
		out[k] = v
	}
	return out
}
