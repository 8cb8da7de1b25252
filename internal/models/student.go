package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OfferStatus string

const (
	OfferNone     OfferStatus = "None"
	OfferPending  OfferStatus = "Pending"
	OfferSelected OfferStatus = "Selected"
	OfferRejected OfferStatus = "Rejected"
)

// Resume is one uploaded resume, keyed by category on the student profile.
type Resume struct {
	Category  string `json:"category" bson:"category"`
	ResumeURL string `json:"resume_url" bson:"resume_url"`
}

var ResumeCategories = []string{"Software", "Engineering", "Finance", "Other"}

type Certification struct {
	Name       string    `json:"name" bson:"name"`
	IssuingOrg string    `json:"issuing_org,omitempty" bson:"issuing_org,omitempty"`
	IssueDate  time.Time `json:"issue_date,omitempty" bson:"issue_date,omitempty"`
}

type Project struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type Student struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name"`
	Email             string             `json:"email" bson:"email"`
	Phone             string             `json:"phone" bson:"phone"`
	DOB               time.Time          `json:"dob,omitempty" bson:"dob,omitempty"`
	Gender            string             `json:"gender,omitempty" bson:"gender,omitempty"`
	Address           string             `json:"address,omitempty" bson:"address,omitempty"`
	Rollnum           int                `json:"rollnum" bson:"rollnum"`
	Course            string             `json:"course" bson:"course"`
	GraduationYear    int                `json:"graduation_year" bson:"graduation_year"`
	Branch            string             `json:"branch" bson:"branch"`
	CGPA              float64            `json:"cgpa" bson:"cgpa"`
	LanguagesKnown    []string           `json:"languages_known,omitempty" bson:"languages_known,omitempty"`
	Certifications    []Certification    `json:"certifications,omitempty" bson:"certifications,omitempty"`
	Skills            []string           `json:"skills,omitempty" bson:"skills,omitempty"`
	LinkedinURL       string             `json:"linkedin_url,omitempty" bson:"linkedin_url,omitempty"`
	GithubURL         string             `json:"github_url,omitempty" bson:"github_url,omitempty"`
	PreferredLocation []string           `json:"preferred_location,omitempty" bson:"preferred_location,omitempty"`
	Projects          []Project          `json:"projects,omitempty" bson:"projects,omitempty"`
	Resumes           []Resume           `json:"resumes" bson:"resumes"`

	// One offer flag per job type. A student may hold at most one Selected
	// flag per category; Apply refuses jobs of a type the student is already
	// Selected for.
	InternshipOfferStatus OfferStatus `json:"internship_offer_status" bson:"internship_offer_status"`
	PPOOfferStatus        OfferStatus `json:"ppo_offer_status" bson:"ppo_offer_status"`
	FulltimeOfferStatus   OfferStatus `json:"fulltime_offer_status" bson:"fulltime_offer_status"`

	Password    string               `json:"password,omitempty" bson:"password"`
	AppliedJobs []primitive.ObjectID `json:"applied_jobs" bson:"applied_jobs"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// OfferStatusFor returns the offer flag matching a job type.
func (s *Student) OfferStatusFor(t JobType) OfferStatus {
	switch t {
	case JobTypeInternship:
		return s.InternshipOfferStatus
	case JobTypePPO:
		return s.PPOOfferStatus
	case JobTypeFullTime:
		return s.FulltimeOfferStatus
	}
	return OfferNone
}

// SetOfferStatusFor sets the offer flag matching a job type.
func (s *Student) SetOfferStatusFor(t JobType, status OfferStatus) {
	switch t {
	case JobTypeInternship:
		s.InternshipOfferStatus = status
	case JobTypePPO:
		s.PPOOfferStatus = status
	case JobTypeFullTime:
		s.FulltimeOfferStatus = status
	}
}

// OfferStatusField returns the document field holding the offer flag for a
// job type, for targeted updates.
func OfferStatusField(t JobType) string {
	switch t {
	case JobTypeInternship:
		return "internship_offer_status"
	case JobTypePPO:
		return "ppo_offer_status"
	case JobTypeFullTime:
		return "fulltime_offer_status"
	}
	return ""
}

// ValidResumeCategory reports whether the category is one of the allowed
// resume categories.
func ValidResumeCategory(category string) bool {
	for _, c := range ResumeCategories {
		if c == category {
			return true
		}
	}
	return false
}
