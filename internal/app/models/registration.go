package models

// SingleRegistration is everything persisted for one solo contestant.
// IDs are filled in by the repository.
type SingleRegistration struct {
	Student      *Student
	Performance  *Performance
	Single       *Single
	Requirements *Requirements
	Health       *HealthFitness
	Consent      *Consent
	Endorsement  *Endorsement
	Pass         *QRCode
}

// GroupMemberRegistration is one member inside a GroupRegistration.
type GroupMemberRegistration struct {
	Student      *Student
	Role         MemberRole
	Requirements *Requirements
	Health       *HealthFitness
	Consent      *Consent
	Pass         *QRCode
}

// GroupRegistration is everything persisted for a group entry.
type GroupRegistration struct {
	Group       *Group
	Performance *Performance
	Endorsement *Endorsement
	Members     []*GroupMemberRegistration
}

// GuestRegistration is a guest and their pass.
type GuestRegistration struct {
	Guest *Guest
	Pass  *QRCode
}
