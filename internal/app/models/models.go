package models

// Status is the review state shared by singles, groups and guests.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// EntryType distinguishes solo contestants from group members.
type EntryType string

const (
	EntrySingle EntryType = "single"
	EntryGroup  EntryType = "group"
)

// Category of a performance
type Category string

const (
	CategorySinging      Category = "singing"
	CategoryDancing      Category = "dancing"
	CategoryInstrumental Category = "instrumental"
	CategorySpokenWord   Category = "spoken_word"
	CategoryTheatrical   Category = "theatrical"
	CategoryOther        Category = "other"
)

// Categories lists every performance category in display order.
var Categories = []Category{
	CategorySinging,
	CategoryDancing,
	CategoryInstrumental,
	CategorySpokenWord,
	CategoryTheatrical,
	CategoryOther,
}

// GuestType classifies non-performing attendees.
type GuestType string

const (
	GuestParent  GuestType = "parent"
	GuestAlumni  GuestType = "alumni"
	GuestFaculty GuestType = "faculty"
	GuestVisitor GuestType = "visitor"
)

// HolderType says who a QR pass was issued to.
type HolderType string

const (
	HolderStudent HolderType = "student"
	HolderGuest   HolderType = "guest"
)

// MemberRole is the role of a student inside a group.
type MemberRole string

const (
	MemberLeader MemberRole = "leader"
	MemberMember MemberRole = "member"
)
