package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobType string

const (
	JobTypeInternship JobType = "Internship"
	JobTypePPO        JobType = "PPO"
	JobTypeFullTime   JobType = "Full-Time"
)

type JobStatus string

const (
	JobActive  JobStatus = "Active"
	JobExpired JobStatus = "Expired"
)

type Compensation struct {
	FixedSalary       float64 `json:"fixed_salary" bson:"fixed_salary"`
	VariableComponent float64 `json:"variable_component" bson:"variable_component"`
}

type JobLocation struct {
	India            bool   `json:"india" bson:"india"`
	Abroad           bool   `json:"abroad" bson:"abroad"`
	SpecificLocation string `json:"specific_location" bson:"specific_location"`
}

type Job struct {
	ID                  primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	CompanyID           primitive.ObjectID   `json:"company_id" bson:"company_id"`
	OrgName             string               `json:"org_name" bson:"org_name"`
	JobTitle            string               `json:"job_title" bson:"job_title"`
	JobDescription      string               `json:"job_description" bson:"job_description"`
	JobType             JobType              `json:"job_type" bson:"job_type"`
	SkillsRequired      []string             `json:"skills_required" bson:"skills_required"`
	BranchesEligible    []string             `json:"branches_eligible" bson:"branches_eligible"`
	Compensation        Compensation         `json:"compensation" bson:"compensation"`
	BondRequired        bool                 `json:"bond_required" bson:"bond_required"`
	SelectionProcess    []string             `json:"selection_process,omitempty" bson:"selection_process,omitempty"`
	JobLocation         JobLocation          `json:"job_location" bson:"job_location"`
	ApplicationDeadline time.Time            `json:"application_deadline" bson:"application_deadline"`
	Applicants          []primitive.ObjectID `json:"applicants" bson:"applicants"`
	JobStatus           JobStatus            `json:"job_status" bson:"job_status"`
	CreatedAt           time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// Expired reports whether the job can no longer accept applications, either
// because it was marked Expired or because its deadline has passed. Expiry is
// derived; the stored status alone is not trusted.
func (j *Job) Expired(now time.Time) bool {
	return j.JobStatus == JobExpired || now.After(j.ApplicationDeadline)
}

// DerivedStatus returns the status listings should report.
func (j *Job) DerivedStatus(now time.Time) JobStatus {
	if j.Expired(now) {
		return JobExpired
	}
	return JobActive
}

func ValidJobType(t JobType) bool {
	switch t {
	case JobTypeInternship, JobTypePPO, JobTypeFullTime:
		return true
	}
	return false
}
