package services

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"github.com/maritimetq/talentquest/internal/app/models"
	"github.com/maritimetq/talentquest/internal/pkg/apperrors"
	"github.com/maritimetq/talentquest/internal/pkg/export"
)

const exportTimeLayout = "2006-01-02 15:04"

// ExportFile is a rendered download.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders the dashboard listings as files
type ExportService interface {
	ExportContestants(ctx context.Context, f models.ContestantFilter, format string) (*ExportFile, error)
	ExportGroups(ctx context.Context, f models.GroupFilter, format string) (*ExportFile, error)
	ExportGuests(ctx context.Context, f models.GuestFilter, format string) (*ExportFile, error)
}

type exportServiceImpl struct {
	contestants ContestantStore
	entries     EntryStore
	guests      GuestStore
	eventName   string
	now         func() time.Time
}

// NewExportService creates a new export service instance
func NewExportService(contestants ContestantStore, entries EntryStore, guests GuestStore, eventName string) ExportService {
	return &exportServiceImpl{
		contestants: contestants,
		entries:     entries,
		guests:      guests,
		eventName:   eventName,
		now:         time.Now,
	}
}

func (s *exportServiceImpl) render(base, title, format string, headers []string, rows [][]string) (*ExportFile, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	var buf bytes.Buffer
	table := export.Table{Title: s.eventName + " - " + title, Headers: headers, Rows: rows}
	if err := export.Write(&buf, f, table); err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    export.FileName(base, f, s.now()),
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

func (s *exportServiceImpl) ExportContestants(ctx context.Context, f models.ContestantFilter, format string) (*ExportFile, error) {
	if _, err := export.ParseFormat(format); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	entries, _, err := s.contestants.List(ctx, f, nil)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.FullName(), e.Email, e.School, e.GradeLevel, string(e.EntryType), e.GroupName,
			e.PerformanceTitle, string(e.Category), string(e.Status), e.CreatedAt.Format(exportTimeLayout),
		})
	}
	return s.render("contestants", "Contestants", format,
		[]string{"Name", "Email", "School", "Grade", "Entry", "Group", "Performance", "Category", "Status", "Registered"},
		rows)
}

func (s *exportServiceImpl) ExportGroups(ctx context.Context, f models.GroupFilter, format string) (*ExportFile, error) {
	if _, err := export.ParseFormat(format); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	groups, _, err := s.entries.ListGroups(ctx, f, nil)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		title, category := "", ""
		if g.Performance != nil {
			title, category = g.Performance.Title, string(g.Performance.Category)
		}
		rows = append(rows, []string{
			g.Name, g.School, g.ContactPerson, g.ContactEmail, g.ContactNumber, strconv.Itoa(g.MemberCount),
			title, category, string(g.Status), g.CreatedAt.Format(exportTimeLayout),
		})
	}
	return s.render("groups", "Groups", format,
		[]string{"Group", "School", "Contact", "Email", "Phone", "Members", "Performance", "Category", "Status", "Registered"},
		rows)
}

func (s *exportServiceImpl) ExportGuests(ctx context.Context, f models.GuestFilter, format string) (*ExportFile, error) {
	if _, err := export.ParseFormat(format); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	guests, _, err := s.guests.List(ctx, f, nil)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(guests))
	for _, g := range guests {
		rows = append(rows, []string{
			g.FullName(), g.Email, g.ContactNumber, g.Affiliation, string(g.GuestType),
			string(g.Status), g.CreatedAt.Format(exportTimeLayout),
		})
	}
	return s.render("guests", "Guests", format,
		[]string{"Name", "Email", "Phone", "Affiliation", "Type", "Status", "Registered"},
		rows)
}
