package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jayantgoyal1502/CampusHire/internal/middleware"
	"github.com/jayantgoyal1502/CampusHire/internal/models"
)

type JobHandler struct {
	jobs     *mongo.Collection
	validate *validator.Validate
}

func NewJobHandler(client *mongo.Client, dbName string) *JobHandler {
	return &JobHandler{
		jobs:     client.Database(dbName).Collection("jobs"),
		validate: newValidator(),
	}
}

type createJobRequest struct {
	OrgName             string              `json:"org_name" validate:"required"`
	JobTitle            string              `json:"job_title" validate:"required"`
	JobDescription      string              `json:"job_description" validate:"required"`
	JobType             models.JobType      `json:"job_type" validate:"required"`
	SkillsRequired      []string            `json:"skills_required" validate:"required,min=1"`
	BranchesEligible    []string            `json:"branches_eligible" validate:"required,min=1"`
	Compensation        models.Compensation `json:"compensation"`
	BondRequired        bool                `json:"bond_required"`
	SelectionProcess    []string            `json:"selection_process"`
	JobLocation         models.JobLocation  `json:"job_location"`
	ApplicationDeadline time.Time           `json:"application_deadline"`
}

// CreateJob posts a new job owned by the authenticated recruiter.
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Missing or invalid required fields", http.StatusBadRequest)
		return
	}
	if !models.ValidJobType(req.JobType) {
		http.Error(w, "job_type must be Internship, PPO, or Full-Time", http.StatusBadRequest)
		return
	}
	if req.Compensation.FixedSalary < 0 || req.Compensation.VariableComponent < 0 {
		http.Error(w, "Compensation cannot be negative", http.StatusBadRequest)
		return
	}
	if !req.ApplicationDeadline.After(time.Now()) {
		http.Error(w, "Application deadline must be in the future", http.StatusBadRequest)
		return
	}

	now := time.Now()
	job := models.Job{
		ID:                  primitive.NewObjectID(),
		CompanyID:           identity.ID,
		OrgName:             capitalizeWords(req.OrgName),
		JobTitle:            capitalizeWords(req.JobTitle),
		JobDescription:      req.JobDescription,
		JobType:             req.JobType,
		SkillsRequired:      req.SkillsRequired,
		BranchesEligible:    req.BranchesEligible,
		Compensation:        req.Compensation,
		BondRequired:        req.BondRequired,
		SelectionProcess:    req.SelectionProcess,
		JobLocation:         req.JobLocation,
		ApplicationDeadline: req.ApplicationDeadline,
		Applicants:          []primitive.ObjectID{},
		JobStatus:           models.JobActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if job.JobLocation.SpecificLocation == "" {
		job.JobLocation.SpecificLocation = "Not Specified"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.jobs.InsertOne(ctx, job); err != nil {
		http.Error(w, "Failed to create job", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(job)
}

// GetJobs lists all postings with the derived (deadline-aware) status.
func (h *JobHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	h.listJobs(w, r, bson.M{})
}

// GetRecruiterJobs lists the authenticated recruiter's postings.
func (h *JobHandler) GetRecruiterJobs(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	h.listJobs(w, r, bson.M{"company_id": identity.ID})
}

func (h *JobHandler) listJobs(w http.ResponseWriter, r *http.Request, filter bson.M) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.jobs.Find(ctx, filter)
	if err != nil {
		http.Error(w, "Failed to fetch jobs", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		http.Error(w, "Error decoding jobs", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	for i := range jobs {
		jobs[i].JobStatus = jobs[i].DerivedStatus(now)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

type updateJobRequest struct {
	JobTitle            *string              `json:"job_title"`
	JobDescription      *string              `json:"job_description"`
	SkillsRequired      []string             `json:"skills_required"`
	BranchesEligible    []string             `json:"branches_eligible"`
	Compensation        *models.Compensation `json:"compensation"`
	BondRequired        *bool                `json:"bond_required"`
	SelectionProcess    []string             `json:"selection_process"`
	JobLocation         *models.JobLocation  `json:"job_location"`
	ApplicationDeadline *time.Time           `json:"application_deadline"`
	JobStatus           *models.JobStatus    `json:"job_status"`
}

// UpdateJob edits a posting. Only the owning recruiter may edit.
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	jobID, err := primitive.ObjectIDFromHex(mux.Vars(r)["jobId"])
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}

	var req updateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var job models.Job
	if err := h.jobs.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	if job.CompanyID != identity.ID {
		http.Error(w, "Unauthorized to edit this job", http.StatusForbidden)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.JobTitle != nil {
		set["job_title"] = capitalizeWords(*req.JobTitle)
	}
	if req.JobDescription != nil {
		set["job_description"] = *req.JobDescription
	}
	if req.SkillsRequired != nil {
		set["skills_required"] = req.SkillsRequired
	}
	if req.BranchesEligible != nil {
		set["branches_eligible"] = req.BranchesEligible
	}
	if req.Compensation != nil {
		if req.Compensation.FixedSalary < 0 || req.Compensation.VariableComponent < 0 {
			http.Error(w, "Compensation cannot be negative", http.StatusBadRequest)
			return
		}
		set["compensation"] = *req.Compensation
	}
	if req.BondRequired != nil {
		set["bond_required"] = *req.BondRequired
	}
	if req.SelectionProcess != nil {
		set["selection_process"] = req.SelectionProcess
	}
	if req.JobLocation != nil {
		set["job_location"] = *req.JobLocation
	}
	if req.ApplicationDeadline != nil {
		set["application_deadline"] = *req.ApplicationDeadline
	}
	if req.JobStatus != nil {
		if *req.JobStatus != models.JobActive && *req.JobStatus != models.JobExpired {
			http.Error(w, "Invalid job status", http.StatusBadRequest)
			return
		}
		set["job_status"] = *req.JobStatus
	}

	if _, err := h.jobs.UpdateOne(ctx, bson.M{"_id": jobID}, bson.M{"$set": set}); err != nil {
		http.Error(w, "Failed to update job", http.StatusInternalServerError)
		return
	}

	if err := h.jobs.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
		http.Error(w, "Failed to fetch updated job", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Job updated successfully",
		"job":     job,
	})
}

// DeleteJob removes a posting. Only the owning recruiter may delete.
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	jobID, err := primitive.ObjectIDFromHex(mux.Vars(r)["jobId"])
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var job models.Job
	if err := h.jobs.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	if job.CompanyID != identity.ID {
		http.Error(w, "Unauthorized to delete this job", http.StatusForbidden)
		return
	}

	if _, err := h.jobs.DeleteOne(ctx, bson.M{"_id": jobID}); err != nil {
		http.Error(w, "Failed to delete job", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Job deleted successfully"})
}

// capitalizeWords title-cases every word, matching how postings are stored.
func capitalizeWords(s string) string {
	fields := strings.Fields(strings.TrimSpace(s))
	for i, f := range fields {
		runes := []rune(f)
		runes[0] = unicode.ToUpper(runes[0])
		fields[i] = string(runes)
	}
	return strings.Join(fields, " ")
}
