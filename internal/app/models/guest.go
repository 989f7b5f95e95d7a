package models

import "time"

// Guest is a non-performing attendee.
type Guest struct {
	ID            int64     `json:"id" db:"id"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	Email         string    `json:"email" db:"email"`
	ContactNumber string    `json:"contactNumber" db:"contact_number"`
	Affiliation   string    `json:"affiliation,omitempty" db:"affiliation"`
	GuestType     GuestType `json:"guestType" db:"guest_type"`
	Status        Status    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName of the guest
func (g *Guest) FullName() string {
	return joinName(g.FirstName, g.LastName)
}
