package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jayantgoyal1502/CampusHire/internal/auth"
	"github.com/jayantgoyal1502/CampusHire/internal/middleware"
	"github.com/jayantgoyal1502/CampusHire/internal/models"
	"github.com/jayantgoyal1502/CampusHire/internal/utils"
)

// Alert the developer once feedback volume crosses this count.
const feedbackAlertThreshold = 20

type FeedbackHandler struct {
	feedbacks      *mongo.Collection
	students       *mongo.Collection
	recruiters     *mongo.Collection
	mailer         *utils.Mailer
	developerEmail string
}

func NewFeedbackHandler(client *mongo.Client, dbName string, mailer *utils.Mailer, developerEmail string) *FeedbackHandler {
	db := client.Database(dbName)
	return &FeedbackHandler{
		feedbacks:      db.Collection("feedbacks"),
		students:       db.Collection("students"),
		recruiters:     db.Collection("recruiters"),
		mailer:         mailer,
		developerEmail: developerEmail,
	}
}

// Submit stores feedback from any authenticated caller, attributed by role.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Feedback) == "" {
		http.Error(w, "Feedback cannot be empty", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	name, email := h.callerDetails(ctx, identity)

	feedback := models.Feedback{
		ID:        primitive.NewObjectID(),
		Feedback:  body.Feedback,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}

	if _, err := h.feedbacks.InsertOne(ctx, feedback); err != nil {
		http.Error(w, "Server error while submitting feedback, please try again later.", http.StatusInternalServerError)
		return
	}

	count, err := h.feedbacks.CountDocuments(ctx, bson.M{})
	if err != nil {
		count = 0
	}

	go func() {
		if email != "Anonymous" {
			if err := h.mailer.Send(email,
				"Thank You for Your Feedback - CampusHire",
				"Thank you for submitting your valuable feedback. We appreciate your effort to help us improve.",
			); err != nil {
				log.Printf("Failed to send feedback acknowledgement: %v", err)
			}
		}
		if count > feedbackAlertThreshold && h.developerEmail != "" {
			if err := h.mailer.Send(h.developerEmail,
				"Feedback Alert - CampusHire",
				fmt.Sprintf("Attention: The total number of feedback submissions has exceeded %d. Immediate review is needed.", feedbackAlertThreshold),
			); err != nil {
				log.Printf("Failed to send feedback alert: %v", err)
			}
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Feedback submitted successfully"})
}

func (h *FeedbackHandler) callerDetails(ctx context.Context, identity middleware.Identity) (string, string) {
	switch identity.Role {
	case auth.RoleStudent:
		var student models.Student
		if err := h.students.FindOne(ctx, bson.M{"_id": identity.ID}).Decode(&student); err == nil {
			return student.Name, student.Email
		}
	case auth.RoleRecruiter:
		var recruiter models.Recruiter
		if err := h.recruiters.FindOne(ctx, bson.M{"_id": identity.ID}).Decode(&recruiter); err == nil {
			return recruiter.OrgName, recruiter.ContactEmail
		}
	}
	return "Anonymous", "Anonymous"
}
