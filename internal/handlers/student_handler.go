package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/jayantgoyal1502/CampusHire/internal/auth"
	"github.com/jayantgoyal1502/CampusHire/internal/config"
	"github.com/jayantgoyal1502/CampusHire/internal/middleware"
	"github.com/jayantgoyal1502/CampusHire/internal/models"
	"github.com/jayantgoyal1502/CampusHire/internal/utils"
)

type StudentHandler struct {
	students      *mongo.Collection
	applications  *mongo.Collection
	tokens        *auth.Manager
	validate      *validator.Validate
	uploadDir     string
	publicBaseURL string
}

func NewStudentHandler(client *mongo.Client, cfg config.Config, tokens *auth.Manager) *StudentHandler {
	db := client.Database(cfg.DatabaseName)
	return &StudentHandler{
		students:      db.Collection("students"),
		applications:  db.Collection("applications"),
		tokens:        tokens,
		validate:      newValidator(),
		uploadDir:     cfg.UploadDir,
		publicBaseURL: cfg.PublicBaseURL,
	}
}

type registerStudentRequest struct {
	Name           string  `validate:"required"`
	Email          string  `validate:"required,email"`
	Phone          string  `validate:"required,len=10,numeric"`
	Rollnum        int     `validate:"required"`
	Course         string  `validate:"required,oneof=B.Tech M.Tech PhD"`
	GraduationYear int     `validate:"required"`
	Branch         string  `validate:"required"`
	CGPA           float64 `validate:"gte=0,lte=10"`
	Password       string  `validate:"required,strongpassword"`
}

type resumeMeta struct {
	Category string `json:"category"`
}

// Register creates a student account from a multipart form carrying the
// profile fields, the resume files, and a resumesMeta JSON array pairing each
// file with a category.
func (h *StudentHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	rollnum, _ := strconv.Atoi(r.FormValue("rollnum"))
	cgpa, _ := strconv.ParseFloat(r.FormValue("cgpa"), 64)
	graduationYear, _ := strconv.Atoi(r.FormValue("graduation_year"))

	req := registerStudentRequest{
		Name:           r.FormValue("name"),
		Email:          r.FormValue("email"),
		Phone:          r.FormValue("phone"),
		Rollnum:        rollnum,
		Course:         r.FormValue("course"),
		GraduationYear: graduationYear,
		Branch:         r.FormValue("branch"),
		CGPA:           cgpa,
		Password:       r.FormValue("password"),
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Missing or invalid required fields", http.StatusBadRequest)
		return
	}

	var meta []resumeMeta
	if err := json.Unmarshal([]byte(r.FormValue("resumesMeta")), &meta); err != nil {
		http.Error(w, "Invalid resumesMeta format", http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["resumes"]
	if len(files) == 0 || len(meta) != len(files) {
		http.Error(w, "Mismatch between files and metadata", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Student
	err := h.students.FindOne(ctx, bson.M{"rollnum": req.Rollnum}).Decode(&existing)
	if err == nil {
		http.Error(w, "Student already exists", http.StatusBadRequest)
		return
	} else if err != mongo.ErrNoDocuments {
		http.Error(w, "Failed to check student availability", http.StatusInternalServerError)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	resumes := make([]models.Resume, 0, len(files))
	for i, header := range files {
		file, err := header.Open()
		if err != nil {
			http.Error(w, "Failed to read uploaded resume", http.StatusBadRequest)
			return
		}
		name, err := utils.SaveResume(file, header.Filename, h.uploadDir)
		file.Close()
		if err != nil {
			http.Error(w, "Failed to store uploaded resume", http.StatusInternalServerError)
			return
		}
		category := meta[i].Category
		if !models.ValidResumeCategory(category) {
			http.Error(w, "Invalid resume category: "+category, http.StatusBadRequest)
			return
		}
		resumes = append(resumes, models.Resume{
			Category:  category,
			ResumeURL: h.publicBaseURL + "/uploads/resumes/" + name,
		})
	}

	now := time.Now()
	student := models.Student{
		ID:                    primitive.NewObjectID(),
		Name:                  req.Name,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Rollnum:               req.Rollnum,
		Course:                req.Course,
		GraduationYear:        req.GraduationYear,
		Branch:                req.Branch,
		CGPA:                  req.CGPA,
		Resumes:               resumes,
		InternshipOfferStatus: models.OfferNone,
		PPOOfferStatus:        models.OfferNone,
		FulltimeOfferStatus:   models.OfferNone,
		Password:              string(hashedPassword),
		AppliedJobs:           []primitive.ObjectID{},
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if _, err := h.students.InsertOne(ctx, student); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			http.Error(w, "Student already exists", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to register student", http.StatusInternalServerError)
		return
	}

	token, _ := h.tokens.Generate(student.ID.Hex(), auth.RoleStudent)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"_id":     student.ID,
		"name":    student.Name,
		"rollnum": student.Rollnum,
		"token":   token,
		"message": "Student registered successfully!",
	})
}

// Login authenticates a student by roll number and password.
func (h *StudentHandler) Login(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Rollnum  int    `json:"rollnum"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var student models.Student
	err := h.students.FindOne(ctx, bson.M{"rollnum": credentials.Rollnum}).Decode(&student)
	if err != nil {
		http.Error(w, "Invalid rollnum or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(credentials.Password)); err != nil {
		http.Error(w, "Invalid rollnum or password", http.StatusUnauthorized)
		return
	}

	token, _ := h.tokens.Generate(student.ID.Hex(), auth.RoleStudent)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"_id":     student.ID,
		"name":    student.Name,
		"rollnum": student.Rollnum,
		"token":   token,
	})
}

// Profile returns the authenticated student's record.
func (h *StudentHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var student models.Student
	err := h.students.FindOne(ctx, bson.M{"_id": identity.ID},
		options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&student)
	if err != nil {
		http.Error(w, "Student not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(student)
}

// UpdateProfile updates phone/cgpa and replaces resumes per category. A new
// resume for an existing category removes the previous file.
func (h *StudentHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var student models.Student
	if err := h.students.FindOne(ctx, bson.M{"_id": identity.ID}).Decode(&student); err != nil {
		http.Error(w, "Student not found", http.StatusNotFound)
		return
	}

	if phone := r.FormValue("phone"); phone != "" {
		student.Phone = phone
	}
	if raw := r.FormValue("cgpa"); raw != "" {
		cgpa, err := strconv.ParseFloat(raw, 64)
		if err != nil || cgpa < 0 || cgpa > 10 {
			http.Error(w, "Invalid cgpa", http.StatusBadRequest)
			return
		}
		student.CGPA = cgpa
	}

	files := r.MultipartForm.File["resumes"]
	if len(files) > 0 {
		var meta []resumeMeta
		if err := json.Unmarshal([]byte(r.FormValue("resumesMeta")), &meta); err != nil || len(meta) != len(files) {
			http.Error(w, "Mismatch between files and metadata", http.StatusBadRequest)
			return
		}

		for i, header := range files {
			category := meta[i].Category
			if !models.ValidResumeCategory(category) {
				http.Error(w, "Invalid resume category: "+category, http.StatusBadRequest)
				return
			}

			file, err := header.Open()
			if err != nil {
				http.Error(w, "Failed to read uploaded resume", http.StatusBadRequest)
				return
			}
			name, err := utils.SaveResume(file, header.Filename, h.uploadDir)
			file.Close()
			if err != nil {
				http.Error(w, "Failed to store uploaded resume", http.StatusInternalServerError)
				return
			}

			url := h.publicBaseURL + "/uploads/resumes/" + name
			replaced := false
			for j, resume := range student.Resumes {
				if resume.Category == category {
					// best effort, a missing old file is fine
					_ = utils.RemoveResume(h.uploadDir, path.Base(resume.ResumeURL))
					student.Resumes[j].ResumeURL = url
					replaced = true
					break
				}
			}
			if !replaced {
				student.Resumes = append(student.Resumes, models.Resume{Category: category, ResumeURL: url})
			}
		}
	}

	_, err := h.students.UpdateOne(ctx, bson.M{"_id": identity.ID}, bson.M{
		"$set": bson.M{
			"phone":     student.Phone,
			"cgpa":      student.CGPA,
			"resumes":   student.Resumes,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	student.Password = ""
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Profile updated successfully",
		"student": student,
	})
}

// AppliedJobs lists the student's applications. The applications collection
// is authoritative; the denormalized applied_jobs list is not consulted.
func (h *StudentHandler) AppliedJobs(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.applications.Find(ctx, bson.M{"student_id": identity.ID},
		options.Find().SetSort(bson.M{"appliedAt": -1}))
	if err != nil {
		http.Error(w, "Failed to fetch applications", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	applications := []models.Application{}
	if err := cursor.All(ctx, &applications); err != nil {
		http.Error(w, "Error decoding applications", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(applications)
}

// GetStudents returns all students without credentials.
func (h *StudentHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.students.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"password": 0}))
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
