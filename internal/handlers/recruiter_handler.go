package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/jayantgoyal1502/CampusHire/internal/auth"
	"github.com/jayantgoyal1502/CampusHire/internal/middleware"
	"github.com/jayantgoyal1502/CampusHire/internal/models"
)

type RecruiterHandler struct {
	recruiters *mongo.Collection
	tokens     *auth.Manager
	validate   *validator.Validate
}

func NewRecruiterHandler(client *mongo.Client, dbName string, tokens *auth.Manager) *RecruiterHandler {
	return &RecruiterHandler{
		recruiters: client.Database(dbName).Collection("recruiters"),
		tokens:     tokens,
		validate:   newValidator(),
	}
}

type registerRecruiterRequest struct {
	OrgName            string `json:"org_name" validate:"required"`
	Website            string `json:"website" validate:"required,url"`
	Category           string `json:"category" validate:"required,oneof=Govt PSU Private MNC Startup NGO Other"`
	Sector             string `json:"sector"`
	ParticipationType  string `json:"participation_type" validate:"required,oneof=Virtual On-Campus"`
	ContactName        string `json:"contact_name" validate:"required"`
	ContactDesignation string `json:"contact_designation" validate:"required"`
	ContactEmail       string `json:"contact_email" validate:"required,email"`
	ContactPhone       string `json:"contact_phone" validate:"required,len=10,numeric"`
	Address            string `json:"address"`
	Password           string `json:"password" validate:"required,strongpassword"`
	LinkedinProfile    string `json:"linkedin_profile"`
	CompanyType        string `json:"company_type" validate:"omitempty,oneof=Product-Based Service-Based Consulting"`
}

// Register creates a recruiter account.
func (h *RecruiterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRecruiterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Missing or invalid required fields", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Recruiter
	err := h.recruiters.FindOne(ctx, bson.M{"contact_email": req.ContactEmail}).Decode(&existing)
	if err == nil {
		http.Error(w, "Recruiter already exists", http.StatusBadRequest)
		return
	} else if err != mongo.ErrNoDocuments {
		http.Error(w, "Failed to check recruiter availability", http.StatusInternalServerError)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	recruiter := models.Recruiter{
		ID:                 primitive.NewObjectID(),
		OrgName:            req.OrgName,
		Website:            req.Website,
		Category:           req.Category,
		Sector:             req.Sector,
		ParticipationType:  req.ParticipationType,
		ContactName:        req.ContactName,
		ContactDesignation: req.ContactDesignation,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
		Address:            req.Address,
		Password:           string(hashedPassword),
		LinkedinProfile:    req.LinkedinProfile,
		CompanyType:        req.CompanyType,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := h.recruiters.InsertOne(ctx, recruiter); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			http.Error(w, "Recruiter already exists", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to register recruiter", http.StatusInternalServerError)
		return
	}

	token, _ := h.tokens.Generate(recruiter.ID.Hex(), auth.RoleRecruiter)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"_id":           recruiter.ID,
		"org_name":      recruiter.OrgName,
		"contact_email": recruiter.ContactEmail,
		"token":         token,
		"message":       "Company registered successfully!",
	})
}

// Login authenticates a recruiter by contact email and password.
func (h *RecruiterHandler) Login(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		ContactEmail string `json:"contact_email"`
		Password     string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var recruiter models.Recruiter
	err := h.recruiters.FindOne(ctx, bson.M{"contact_email": credentials.ContactEmail}).Decode(&recruiter)
	if err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(recruiter.Password), []byte(credentials.Password)); err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, _ := h.tokens.Generate(recruiter.ID.Hex(), auth.RoleRecruiter)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"_id":           recruiter.ID,
		"org_name":      recruiter.OrgName,
		"contact_email": recruiter.ContactEmail,
		"token":         token,
	})
}

// Profile returns the authenticated recruiter's record.
func (h *RecruiterHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var recruiter models.Recruiter
	err := h.recruiters.FindOne(ctx, bson.M{"_id": identity.ID},
		options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&recruiter)
	if err != nil {
		http.Error(w, "Recruiter not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recruiter)
}

// GetRecruiters returns all recruiters without credentials.
func (h *RecruiterHandler) GetRecruiters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.recruiters.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"password": 0}))
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
