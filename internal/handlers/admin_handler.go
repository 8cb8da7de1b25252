package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/jayantgoyal1502/CampusHire/internal/auth"
	"github.com/jayantgoyal1502/CampusHire/internal/models"
)

// AdminHandler serves the aggregate views. Admin accounts are provisioned
// directly in the admins collection; there is no register endpoint.
type AdminHandler struct {
	admins     *mongo.Collection
	jobs       *mongo.Collection
	students   *mongo.Collection
	recruiters *mongo.Collection
	tokens     *auth.Manager
}

func NewAdminHandler(client *mongo.Client, dbName string, tokens *auth.Manager) *AdminHandler {
	db := client.Database(dbName)
	return &AdminHandler{
		admins:     db.Collection("admins"),
		jobs:       db.Collection("jobs"),
		students:   db.Collection("students"),
		recruiters: db.Collection("recruiters"),
		tokens:     tokens,
	}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	err := h.admins.FindOne(ctx, bson.M{"email": credentials.Email}).Decode(&admin)
	if err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(credentials.Password)); err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, _ := h.tokens.Generate(admin.ID.Hex(), auth.RoleAdmin)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"_id":   admin.ID,
		"name":  admin.Name,
		"email": admin.Email,
		"token": token,
	})
}

// GetJobs lists postings, optionally filtered by job_type and job_status.
func (h *AdminHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	query := bson.M{}
	if jobType := r.URL.Query().Get("job_type"); jobType != "" {
		query["job_type"] = jobType
	}
	if jobStatus := r.URL.Query().Get("job_status"); jobStatus != "" {
		query["job_status"] = jobStatus
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.jobs.Find(ctx, query)
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

// GetStudents lists students, optionally filtered by branch and course.
func (h *AdminHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	query := bson.M{}
	if branch := r.URL.Query().Get("branch"); branch != "" {
		query["branch"] = branch
	}
	if course := r.URL.Query().Get("course"); course != "" {
		query["course"] = course
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.students.Find(ctx, query, options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		http.Error(w, "Failed to fetch students", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		http.Error(w, "Error decoding students", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(students)
}

// GetRecruiters lists recruiters, optionally filtered by category,
// participation_type, and company_type.
func (h *AdminHandler) GetRecruiters(w http.ResponseWriter, r *http.Request) {
	query := bson.M{}
	if category := r.URL.Query().Get("category"); category != "" {
		query["category"] = category
	}
	if participationType := r.URL.Query().Get("participation_type"); participationType != "" {
		query["participation_type"] = participationType
	}
	if companyType := r.URL.Query().Get("company_type"); companyType != "" {
		query["company_type"] = companyType
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.recruiters.Find(ctx, query, options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		http.Error(w, "Failed to fetch recruiters", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	recruiters := []models.Recruiter{}
	if err := cursor.All(ctx, &recruiters); err != nil {
		http.Error(w, "Error decoding recruiters", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recruiters)
}
