package dto

import (
	"time"

	"github.com/maritimetq/talentquest/internal/app/models"
)

// ContestantListResponse is a page of contestant_entries rows
type ContestantListResponse struct {
	Contestants []*models.ContestantEntry `json:"contestants"`
	Pagination  PaginationInfo            `json:"pagination"`
}

// ContestantDetailResponse is the full record of one student
type ContestantDetailResponse struct {
	Student      *models.Student       `json:"student"`
	EntryType    models.EntryType      `json:"entryType"`
	Single       *models.Single        `json:"single,omitempty"`
	Group        *models.Group         `json:"group,omitempty"`
	MemberRole   models.MemberRole     `json:"memberRole,omitempty"`
	Performance  *models.Performance   `json:"performance,omitempty"`
	Requirements *models.Requirements  `json:"requirements,omitempty"`
	Health       *models.HealthFitness `json:"health,omitempty"`
	Consent      *models.Consent       `json:"consent,omitempty"`
	Endorsement  *models.Endorsement   `json:"endorsement,omitempty"`
	Pass         *models.QRCode        `json:"pass,omitempty"`
}

// GroupListResponse is a page of groups
type GroupListResponse struct {
	Groups     []*models.Group `json:"groups"`
	Pagination PaginationInfo  `json:"pagination"`
}

// GroupDetailResponse is a group with members and endorsement
type GroupDetailResponse struct {
	Group       *models.Group       `json:"group"`
	Endorsement *models.Endorsement `json:"endorsement,omitempty"`
}

// GuestListResponse is a page of guests
type GuestListResponse struct {
	Guests     []*models.Guest `json:"guests"`
	Pagination PaginationInfo  `json:"pagination"`
}

// GuestDetailResponse is a guest with their pass
type GuestDetailResponse struct {
	Guest *models.Guest  `json:"guest"`
	Pass  *models.QRCode `json:"pass,omitempty"`
}

// UpdateStatusRequest changes the review status of an entry
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected" example:"approved"`
}

// CheckInRequest carries a scanned pass code
type CheckInRequest struct {
	Code string `json:"code" binding:"required,uuid" example:"6f1c2b8e-1111-4a4a-9999-0123456789ab"`
}

// CheckInResponse confirms a check-in
type CheckInResponse struct {
	Code        string    `json:"code"`
	HolderType  string    `json:"holderType"`
	HolderName  string    `json:"holderName"`
	CheckedInAt time.Time `json:"checkedInAt"`
}

// ResendResponse reports the outcome of a pass resend
type ResendResponse struct {
	Code      string `json:"code"`
	Recipient string `json:"recipient"`
	EmailSent bool   `json:"emailSent"`
}

// StatsResponse powers the dashboard summary cards
type StatsResponse struct {
	Singles            int64            `json:"singles"`
	Groups             int64            `json:"groups"`
	GroupMembers       int64            `json:"groupMembers"`
	Contestants        int64            `json:"contestants"`
	Guests             int64            `json:"guests"`
	ByStatus           map[string]int64 `json:"byStatus"`
	ByCategory         map[string]int64 `json:"byCategory"`
	ByGuestType        map[string]int64 `json:"byGuestType"`
	CheckedIn          int64            `json:"checkedIn"`
	PassesIssued       int64            `json:"passesIssued"`
	PassesPendingEmail int64            `json:"passesPendingEmail"`
}
