package dto

import "time"

// StudentInput is the personal information step of the registration form
type StudentInput struct {
	FirstName     string `json:"firstName" binding:"required,max=100" example:"Juan"`
	MiddleName    string `json:"middleName" binding:"max=100" example:"Santos"`
	LastName      string `json:"lastName" binding:"required,max=100" example:"Dela Cruz"`
	BirthDate     string `json:"birthDate" binding:"required,notfuture" example:"2010-06-15"`
	Gender        string `json:"gender" binding:"required,oneof=male female other" example:"male"`
	School        string `json:"school" binding:"required,max=200" example:"Batangas Maritime High School"`
	GradeLevel    string `json:"gradeLevel" binding:"required,gradelevel" example:"Grade 10"`
	Email         string `json:"email" binding:"required,email,max=255" example:"juan@example.com"`
	ContactNumber string `json:"contactNumber" binding:"required,mobile" example:"09171234567"`
	Address       string `json:"address" binding:"max=500"`
}

// PerformanceInput describes the act
type PerformanceInput struct {
	Title           string `json:"title" binding:"required,max=200" example:"Sailor's Ballad"`
	Category        string `json:"category" binding:"required,oneof=singing dancing instrumental spoken_word theatrical other" example:"singing"`
	Description     string `json:"description" binding:"max=2000"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,min=1,max=15" example:"5"`
}

// RequirementsInput carries URLs returned by the upload endpoint
type RequirementsInput struct {
	BirthCertificateURL string `json:"birthCertificateUrl" binding:"required,url"`
	SchoolIDURL         string `json:"schoolIdUrl" binding:"required,url"`
	PhotoURL            string `json:"photoUrl" binding:"required,url"`
}

// HealthInput is the health and fitness declaration
type HealthInput struct {
	HasMedicalCondition    bool   `json:"hasMedicalCondition"`
	MedicalConditions      string `json:"medicalConditions" binding:"required_if=HasMedicalCondition true,max=1000"`
	Allergies              string `json:"allergies" binding:"max=1000"`
	Medications            string `json:"medications" binding:"max=1000"`
	FitToPerform           bool   `json:"fitToPerform" binding:"eq=true"`
	EmergencyContactName   string `json:"emergencyContactName" binding:"required,max=200"`
	EmergencyContactNumber string `json:"emergencyContactNumber" binding:"required,mobile"`
}

// ConsentInput is the guardian consent step
type ConsentInput struct {
	GuardianName         string `json:"guardianName" binding:"required,max=200"`
	GuardianRelationship string `json:"guardianRelationship" binding:"required,max=50" example:"mother"`
	GuardianContact      string `json:"guardianContact" binding:"required,mobile"`
	GuardianEmail        string `json:"guardianEmail" binding:"omitempty,email,max=255"`
	Agreed               bool   `json:"agreed" binding:"eq=true"`
	PhotoRelease         bool   `json:"photoRelease"`
}

// EndorsementInput names the school official endorsing the entry
type EndorsementInput struct {
	EndorserName     string `json:"endorserName" binding:"required,max=200"`
	EndorserPosition string `json:"endorserPosition" binding:"required,max=100" example:"Principal"`
	Organization     string `json:"organization" binding:"required,max=200"`
	ContactNumber    string `json:"contactNumber" binding:"omitempty,mobile"`
}

// SingleRegistrationRequest registers one solo contestant
type SingleRegistrationRequest struct {
	Student      StudentInput      `json:"student"`
	Performance  PerformanceInput  `json:"performance"`
	Requirements RequirementsInput `json:"requirements"`
	Health       HealthInput       `json:"health"`
	Consent      ConsentInput      `json:"consent"`
	Endorsement  EndorsementInput  `json:"endorsement"`
}

// GroupInfoInput is the group step of the form
type GroupInfoInput struct {
	Name          string `json:"name" binding:"required,max=200" example:"Harbor Voices"`
	School        string `json:"school" binding:"required,max=200"`
	ContactPerson string `json:"contactPerson" binding:"required,max=200"`
	ContactEmail  string `json:"contactEmail" binding:"required,email,max=255"`
	ContactNumber string `json:"contactNumber" binding:"required,mobile"`
}

// GroupMemberInput is one member of a group registration
type GroupMemberInput struct {
	Role         string            `json:"role" binding:"required,oneof=leader member" example:"member"`
	Student      StudentInput      `json:"student"`
	Requirements RequirementsInput `json:"requirements"`
	Health       HealthInput       `json:"health"`
	Consent      ConsentInput      `json:"consent"`
}

// GroupRegistrationRequest registers a group with 2 to 15 members
type GroupRegistrationRequest struct {
	Group       GroupInfoInput     `json:"group"`
	Performance PerformanceInput   `json:"performance"`
	Endorsement EndorsementInput   `json:"endorsement"`
	Members     []GroupMemberInput `json:"members" binding:"required,min=2,max=15,dive"`
}

// GuestRegistrationRequest registers a non-performing attendee
type GuestRegistrationRequest struct {
	FirstName     string `json:"firstName" binding:"required,max=100"`
	LastName      string `json:"lastName" binding:"required,max=100"`
	Email         string `json:"email" binding:"required,email,max=255"`
	ContactNumber string `json:"contactNumber" binding:"required,mobile"`
	Affiliation   string `json:"affiliation" binding:"max=200"`
	GuestType     string `json:"guestType" binding:"required,oneof=parent alumni faculty visitor" example:"parent"`
}

// PassResponse describes one issued pass
type PassResponse struct {
	Code       string `json:"code" example:"6f1c2b8e-1111-4a4a-9999-0123456789ab"`
	HolderType string `json:"holderType" example:"student"`
	HolderName string `json:"holderName" example:"Juan Dela Cruz"`
	ImageURL   string `json:"imageUrl,omitempty"`
	EmailSent  bool   `json:"emailSent"`
}

// RegistrationResponse is returned after a successful registration
type RegistrationResponse struct {
	EntryType string         `json:"entryType" example:"single" enums:"single,group,guest"`
	EntryID   int64          `json:"entryId" example:"12"`
	Passes    []PassResponse `json:"passes"`
}

// UploadResponse is returned by the requirement upload endpoint
type UploadResponse struct {
	Kind     string `json:"kind" example:"birth_certificate"`
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}

// PassVerificationResponse is the public view of a pass
type PassVerificationResponse struct {
	Code        string     `json:"code"`
	HolderType  string     `json:"holderType"`
	HolderName  string     `json:"holderName"`
	Event       string     `json:"event"`
	Valid       bool       `json:"valid"`
	CheckedIn   bool       `json:"checkedIn"`
	CheckedInAt *time.Time `json:"checkedInAt,omitempty"`
}
