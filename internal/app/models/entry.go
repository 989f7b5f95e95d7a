package models

import "time"

// Performance describes the act a single or a group will present.
type Performance struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Category        Category  `json:"category" db:"category"`
	Description     string    `json:"description,omitempty" db:"description"`
	DurationMinutes int       `json:"durationMinutes" db:"duration_minutes"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// Single is a solo entry. A student holds at most one.
type Single struct {
	ID            int64     `json:"id" db:"id"`
	StudentID     int64     `json:"studentId" db:"student_id"`
	PerformanceID int64     `json:"performanceId" db:"performance_id"`
	Status        Status    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Group is a multi-member entry; its name is unique per school.
type Group struct {
	ID            int64          `json:"id" db:"id"`
	Name          string         `json:"name" db:"name"`
	School        string         `json:"school" db:"school"`
	ContactPerson string         `json:"contactPerson" db:"contact_person"`
	ContactEmail  string         `json:"contactEmail" db:"contact_email"`
	ContactNumber string         `json:"contactNumber" db:"contact_number"`
	PerformanceID int64          `json:"performanceId" db:"performance_id"`
	Status        Status         `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
	Performance   *Performance   `json:"performance,omitempty"` // Relation, no db tag
	Members       []*GroupMember `json:"members,omitempty"`     // Relation, no db tag
	MemberCount   int            `json:"memberCount"`
}

// GroupMember links a student to a group.
type GroupMember struct {
	ID        int64      `json:"id" db:"id"`
	GroupID   int64      `json:"groupId" db:"group_id"`
	StudentID int64      `json:"studentId" db:"student_id"`
	Role      MemberRole `json:"role" db:"role"`
	Student   *Student   `json:"student,omitempty"` // Relation, no db tag
}

// Endorsement belongs to exactly one of a single or a group.
type Endorsement struct {
	ID               int64     `json:"id" db:"id"`
	SingleID         *int64    `json:"singleId,omitempty" db:"single_id"`
	GroupID          *int64    `json:"groupId,omitempty" db:"group_id"`
	EndorserName     string    `json:"endorserName" db:"endorser_name"`
	EndorserPosition string    `json:"endorserPosition" db:"endorser_position"`
	Organization     string    `json:"organization" db:"organization"`
	ContactNumber    string    `json:"contactNumber,omitempty" db:"contact_number"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// ContestantEntry is one row of the contestant_entries view.
type ContestantEntry struct {
	StudentID        int64     `json:"studentId" db:"student_id"`
	FirstName        string    `json:"firstName" db:"first_name"`
	LastName         string    `json:"lastName" db:"last_name"`
	Email            string    `json:"email" db:"email"`
	School           string    `json:"school" db:"school"`
	GradeLevel       string    `json:"gradeLevel" db:"grade_level"`
	EntryType        EntryType `json:"entryType" db:"entry_type"`
	EntryID          int64     `json:"entryId" db:"entry_id"`
	GroupName        string    `json:"groupName,omitempty" db:"group_name"`
	PerformanceTitle string    `json:"performanceTitle" db:"performance_title"`
	Category         Category  `json:"category" db:"category"`
	Status           Status    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// FullName of the contestant
func (e *ContestantEntry) FullName() string {
	return joinName(e.FirstName, e.LastName)
}
