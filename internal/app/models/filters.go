package models

// ContestantFilter narrows the contestant listing and export.
type ContestantFilter struct {
	EntryType string `form:"entryType" binding:"omitempty,oneof=single group"`
	Category  string `form:"category" binding:"omitempty,oneof=singing dancing instrumental spoken_word theatrical other"`
	Status    string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	School    string `form:"school" binding:"max=200"`
	Search    string `form:"search" binding:"max=100"`
}

// GroupFilter narrows the group listing and export.
type GroupFilter struct {
	Category string `form:"category" binding:"omitempty,oneof=singing dancing instrumental spoken_word theatrical other"`
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	School   string `form:"school" binding:"max=200"`
	Search   string `form:"search" binding:"max=100"`
}

// GuestFilter narrows the guest listing and export.
type GuestFilter struct {
	GuestType string `form:"guestType" binding:"omitempty,oneof=parent alumni faculty visitor"`
	Status    string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Search    string `form:"search" binding:"max=100"`
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}
