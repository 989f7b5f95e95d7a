package services

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/maritimetq/talentquest/internal/app/models/dto"
	"github.com/maritimetq/talentquest/internal/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_ZeroFillsKnownKeys(t *testing.T) {
	stats := &fakeStats{
		entries:  repositories.EntryTotals{Singles: 4, Groups: 2, GroupMembers: 9, Guests: 3},
		passes:   repositories.PassTotals{Issued: 16, CheckedIn: 5, PendingEmail: 1},
		status:   map[string]int64{"pending": 6, "approved": 3},
		category: map[string]int64{"singing": 4, "dancing": 2},
		guest:    map[string]int64{"parent": 3},
	}

	got, err := NewStatsService(stats).Summary(context.Background())
	require.NoError(t, err)

	want := &dto.StatsResponse{
		Singles:      4,
		Groups:       2,
		GroupMembers: 9,
		Contestants:  13,
		Guests:       3,
		ByStatus:     map[string]int64{"pending": 6, "approved": 3, "rejected": 0},
		ByCategory: map[string]int64{
			"singing": 4, "dancing": 2, "instrumental": 0,
			"spoken_word": 0, "theatrical": 0, "other": 0,
		},
		ByGuestType:        map[string]int64{"parent": 3, "alumni": 0, "faculty": 0, "visitor": 0},
		CheckedIn:          5,
		PassesIssued:       16,
		PassesPendingEmail: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary_Error(t *testing.T) {
	_, err := NewStatsService(&fakeStats{err: errBoom}).Summary(context.Background())
	assert.ErrorIs(t, err, errBoom)
}
