package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jayantgoyal1502/CampusHire/internal/middleware"
	"github.com/jayantgoyal1502/CampusHire/internal/models"
	"github.com/jayantgoyal1502/CampusHire/internal/workflow"
)

// ApplicationEngine is the slice of the workflow engine this handler needs.
type ApplicationEngine interface {
	Apply(ctx context.Context, studentID, jobID primitive.ObjectID, resumeIndex int) (*models.Application, error)
	Decide(ctx context.Context, studentID, jobID primitive.ObjectID, status models.ApprovalStatus) (*models.Application, error)
	Applicants(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error)
	Job(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
}

type ApplicationHandler struct {
	engine ApplicationEngine
}

func NewApplicationHandler(engine ApplicationEngine) *ApplicationHandler {
	return &ApplicationHandler{engine: engine}
}

// Apply submits the authenticated student's application for a job.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
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

	// Both key spellings are accepted; clients have used each.
	var body struct {
		ResumeIndex      *int `json:"resume_index"`
		ResumeIndexCamel *int `json:"resumeIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	resumeIndex := 0
	if body.ResumeIndex != nil {
		resumeIndex = *body.ResumeIndex
	} else if body.ResumeIndexCamel != nil {
		resumeIndex = *body.ResumeIndexCamel
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	application, err := h.engine.Apply(ctx, identity.ID, jobID, resumeIndex)
	if err != nil {
		status, msg := workflowErrorStatus(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Successfully applied for the job!",
		"application": application,
	})
}

// UpdateStatus lets the job's recruiter accept or reject an application.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		StudentID      string `json:"student_id"`
		JobID          string `json:"job_id"`
		ApprovalStatus string `json:"approval_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	studentID, err := primitive.ObjectIDFromHex(body.StudentID)
	if err != nil {
		http.Error(w, "Invalid student ID", http.StatusBadRequest)
		return
	}
	jobID, err := primitive.ObjectIDFromHex(body.JobID)
	if err != nil {
		http.Error(w, "Invalid job ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Ownership is asserted here, before the engine runs.
	job, err := h.engine.Job(ctx, jobID)
	if err != nil {
		status, msg := workflowErrorStatus(err)
		http.Error(w, msg, status)
		return
	}
	if job.CompanyID != identity.ID {
		http.Error(w, "Unauthorized to update applications for this job", http.StatusForbidden)
		return
	}

	application, err := h.engine.Decide(ctx, studentID, jobID, models.ApprovalStatus(body.ApprovalStatus))
	if err != nil {
		status, msg := workflowErrorStatus(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(application)
}

// Applicants lists a job's applications for its owning recruiter.
func (h *ApplicationHandler) Applicants(w http.ResponseWriter, r *http.Request) {
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

	job, err := h.engine.Job(ctx, jobID)
	if err != nil {
		status, msg := workflowErrorStatus(err)
		http.Error(w, msg, status)
		return
	}
	if job.CompanyID != identity.ID {
		http.Error(w, "Unauthorized to view applicants for this job", http.StatusForbidden)
		return
	}

	applications, err := h.engine.Applicants(ctx, jobID)
	if err != nil {
		status, msg := workflowErrorStatus(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(applications)
}

// workflowErrorStatus maps the engine's error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a storage error and stays generic.
func workflowErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, workflow.ErrStudentNotFound),
		errors.Is(err, workflow.ErrJobNotFound),
		errors.Is(err, workflow.ErrJobUnavailable),
		errors.Is(err, workflow.ErrApplicationNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, workflow.ErrOfferConflict),
		errors.Is(err, workflow.ErrDuplicateApplication),
		errors.Is(err, workflow.ErrInvalidResume),
		errors.Is(err, workflow.ErrInvalidStatusValue):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, workflow.ErrAlreadyDecided):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
