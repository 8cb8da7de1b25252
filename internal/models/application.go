package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalSelected ApprovalStatus = "Selected"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// ValidDecision reports whether a status is one of the two terminal values a
// recruiter may set.
func ValidDecision(status ApprovalStatus) bool {
	return status == ApprovalSelected || status == ApprovalRejected
}

// StudentSnapshot holds the student display fields captured at apply time, so
// applicant listings stay stable even if the profile changes later.
type StudentSnapshot struct {
	Rollnum int     `json:"rollnum" bson:"rollnum"`
	Name    string  `json:"name" bson:"name"`
	Email   string  `json:"email" bson:"email"`
	Course  string  `json:"course" bson:"course"`
	Branch  string  `json:"branch" bson:"branch"`
	CGPA    float64 `json:"cgpa" bson:"cgpa"`
}

type JobSnapshot struct {
	OrgName  string `json:"org_name" bson:"org_name"`
	JobTitle string `json:"job_title" bson:"job_title"`
}

// Application records one student's submission to one job. At most one may
// exist per (student_id, job_id) pair, enforced by a unique index.
type Application struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StudentID      primitive.ObjectID `json:"student_id" bson:"student_id"`
	JobID          primitive.ObjectID `json:"job_id" bson:"job_id"`
	Student        StudentSnapshot    `json:"student_snapshot" bson:"student_snapshot"`
	Job            JobSnapshot        `json:"job_snapshot" bson:"job_snapshot"`
	SelectedResume Resume             `json:"selected_resume" bson:"selected_resume"`
	ApprovalStatus ApprovalStatus     `json:"approval_status" bson:"approval_status"`
	AppliedAt      time.Time          `json:"appliedAt" bson:"appliedAt"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}
