package models

import (
	"strings"
	"time"
)

// Student is a performer, registered either solo or as a group member.
type Student struct {
	ID            int64     `json:"id" db:"id"`
	FirstName     string    `json:"firstName" db:"first_name"`
	MiddleName    string    `json:"middleName,omitempty" db:"middle_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	BirthDate     time.Time `json:"birthDate" db:"birth_date"`
	Gender        string    `json:"gender" db:"gender"`
	School        string    `json:"school" db:"school"`
	GradeLevel    string    `json:"gradeLevel" db:"grade_level"`
	Email         string    `json:"email" db:"email"`
	ContactNumber string    `json:"contactNumber" db:"contact_number"`
	Address       string    `json:"address,omitempty" db:"address"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// FullName joins the non-empty name parts.
func (s *Student) FullName() string {
	return joinName(s.FirstName, s.MiddleName, s.LastName)
}

// Requirements holds the URLs of documents uploaded for a student.
type Requirements struct {
	ID                  int64     `json:"id" db:"id"`
	StudentID           int64     `json:"studentId" db:"student_id"`
	BirthCertificateURL string    `json:"birthCertificateUrl" db:"birth_certificate_url"`
	SchoolIDURL         string    `json:"schoolIdUrl" db:"school_id_url"`
	PhotoURL            string    `json:"photoUrl" db:"photo_url"`
	SubmittedAt         time.Time `json:"submittedAt" db:"submitted_at"`
}

// HealthFitness is the self-declared health record of a student.
type HealthFitness struct {
	ID                     int64  `json:"id" db:"id"`
	StudentID              int64  `json:"studentId" db:"student_id"`
	HasMedicalCondition    bool   `json:"hasMedicalCondition" db:"has_medical_condition"`
	MedicalConditions      string `json:"medicalConditions,omitempty" db:"medical_conditions"`
	Allergies              string `json:"allergies,omitempty" db:"allergies"`
	Medications            string `json:"medications,omitempty" db:"medications"`
	FitToPerform           bool   `json:"fitToPerform" db:"fit_to_perform"`
	EmergencyContactName   string `json:"emergencyContactName" db:"emergency_contact_name"`
	EmergencyContactNumber string `json:"emergencyContactNumber" db:"emergency_contact_number"`
}

// Consent is the guardian's agreement for a student to take part.
type Consent struct {
	ID                   int64     `json:"id" db:"id"`
	StudentID            int64     `json:"studentId" db:"student_id"`
	GuardianName         string    `json:"guardianName" db:"guardian_name"`
	GuardianRelationship string    `json:"guardianRelationship" db:"guardian_relationship"`
	GuardianContact      string    `json:"guardianContact" db:"guardian_contact"`
	GuardianEmail        string    `json:"guardianEmail,omitempty" db:"guardian_email"`
	Agreed               bool      `json:"agreed" db:"agreed"`
	PhotoRelease         bool      `json:"photoRelease" db:"photo_release"`
	SignedAt             time.Time `json:"signedAt" db:"signed_at"`
}

func joinName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
