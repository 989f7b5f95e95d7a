package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExportService(contestants *fakeContestants, entries *fakeEntries, guests *fakeGuests) *exportServiceImpl {
	svc := NewExportService(contestants, entries, guests, "Maritime Talent Quest").(*exportServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC) }
	return svc
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportContestants_CSVUnpaged(t *testing.T) {
	contestants := &fakeContestants{rows: []*models.ContestantEntry{
		{FirstName: "Juan", LastName: "Dela Cruz", Email: "juan@example.com", School: "Manila High",
			GradeLevel: "Grade 10", EntryType: models.EntrySingle, PerformanceTitle: "Ballad",
			Category: models.CategorySinging, Status: models.StatusPending,
			CreatedAt: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)},
	}}
	svc := newTestExportService(contestants, &fakeEntries{}, &fakeGuests{})

	file, err := svc.ExportContestants(context.Background(), models.ContestantFilter{Status: "pending"}, "")
	require.NoError(t, err)

	assert.Nil(t, contestants.lastPage)
	assert.Equal(t, "pending", contestants.filter.Status)
	assert.Equal(t, "contestants-20261102-0930.csv", file.FileName)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	records := readCSV(t, file.Data)
	require.Len(t, records, 2)
	assert.Equal(t, "Name", records[0][0])
	assert.Equal(t, []string{"Juan Dela Cruz", "juan@example.com", "Manila High", "Grade 10", "single", "",
		"Ballad", "singing", "pending", "2026-10-01 08:00"}, records[1])
}

func TestExportGroups_PDF(t *testing.T) {
	entries := &fakeEntries{groups: map[int64]*models.Group{
		1: {ID: 1, Name: "Harbor Voices", School: "Cebu Maritime", MemberCount: 5,
			Performance: &models.Performance{Title: "Sea Shanty", Category: models.CategorySinging}},
	}}
	svc := newTestExportService(&fakeContestants{}, entries, &fakeGuests{})

	file, err := svc.ExportGroups(context.Background(), models.GroupFilter{}, "pdf")
	require.NoError(t, err)
	assert.Nil(t, entries.lastPage)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "groups-20261102-0930.pdf", file.FileName)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestExportGuests_Rows(t *testing.T) {
	guests := &fakeGuests{guests: map[int64]*models.Guest{
		7: {ID: 7, FirstName: "Rosa", LastName: "Santos", Email: "rosa@example.com", GuestType: models.GuestAlumni, Status: models.StatusApproved},
	}}
	svc := newTestExportService(&fakeContestants{}, &fakeEntries{}, guests)

	file, err := svc.ExportGuests(context.Background(), models.GuestFilter{}, "csv")
	require.NoError(t, err)
	records := readCSV(t, file.Data)
	require.Len(t, records, 2)
	assert.Equal(t, "Rosa Santos", records[1][0])
	assert.Equal(t, "alumni", records[1][4])
}

func TestExport_UnknownFormat(t *testing.T) {
	svc := newTestExportService(&fakeContestants{}, &fakeEntries{}, &fakeGuests{})

	_, err := svc.ExportGuests(context.Background(), models.GuestFilter{}, "xlsx")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
