package models

import "time"

// QRCode is an issued event pass. Exactly one of StudentID and GuestID is set.
type QRCode struct {
	ID          int64      `json:"id" db:"id"`
	Code        string     `json:"code" db:"code"`
	HolderType  HolderType `json:"holderType" db:"holder_type"`
	StudentID   *int64     `json:"studentId,omitempty" db:"student_id"`
	GuestID     *int64     `json:"guestId,omitempty" db:"guest_id"`
	Payload     []byte     `json:"-" db:"payload"`
	ImageURL    string     `json:"imageUrl,omitempty" db:"image_url"`
	EmailedAt   *time.Time `json:"emailedAt,omitempty" db:"emailed_at"`
	CheckedInAt *time.Time `json:"checkedInAt,omitempty" db:"checked_in_at"`
	CheckedInBy *int64     `json:"checkedInBy,omitempty" db:"checked_in_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// CheckedIn reports whether the pass has already been scanned.
func (q *QRCode) CheckedIn() bool {
	return q.CheckedInAt != nil
}

// PassHolder is a pass joined with the display data of whoever holds it.
type PassHolder struct {
	Pass         *QRCode
	Name         string
	Email        string
	CCEmail      string // guardian for students, empty for guests
	ContactEmail string // group contact when the student entered as a group
}
