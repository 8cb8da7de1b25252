package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jayantgoyal1502/CampusHire/internal/auth"
	"github.com/jayantgoyal1502/CampusHire/internal/config"
	"github.com/jayantgoyal1502/CampusHire/internal/handlers"
	"github.com/jayantgoyal1502/CampusHire/internal/middleware"
	"github.com/jayantgoyal1502/CampusHire/internal/utils"
	"github.com/jayantgoyal1502/CampusHire/internal/workflow"
)

func SetupRouter(client *mongo.Client, cfg config.Config, tokens *auth.Manager, engine *workflow.Engine, mailer *utils.Mailer, limiter middleware.Limiter) *mux.Router {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("CampusHire API is running..."))
	}).Methods("GET")

	studentHandler := handlers.NewStudentHandler(client, cfg, tokens)
	recruiterHandler := handlers.NewRecruiterHandler(client, cfg.DatabaseName, tokens)
	jobHandler := handlers.NewJobHandler(client, cfg.DatabaseName)
	applicationHandler := handlers.NewApplicationHandler(engine)
	adminHandler := handlers.NewAdminHandler(client, cfg.DatabaseName, tokens)
	feedbackHandler := handlers.NewFeedbackHandler(client, cfg.DatabaseName, mailer, cfg.DeveloperEmail)

	studentAuth := middleware.RequireRole(tokens, auth.RoleStudent)
	recruiterAuth := middleware.RequireRole(tokens, auth.RoleRecruiter)
	adminAuth := middleware.RequireRole(tokens, auth.RoleAdmin)
	protect := middleware.RequireAny(tokens, auth.RoleStudent, auth.RoleRecruiter)
	loginLimit := middleware.RateLimit(limiter, middleware.ClientIP)

	api := router.PathPrefix("/api").Subrouter()

	// Students
	api.Handle("/students/register", loginLimit(http.HandlerFunc(studentHandler.Register))).Methods("POST")
	api.Handle("/students/login", loginLimit(http.HandlerFunc(studentHandler.Login))).Methods("POST")
	api.Handle("/students/profile", studentAuth(http.HandlerFunc(studentHandler.Profile))).Methods("GET")
	api.Handle("/students/update-profile", studentAuth(http.HandlerFunc(studentHandler.UpdateProfile))).Methods("PUT")
	api.Handle("/students/applied-jobs", studentAuth(http.HandlerFunc(studentHandler.AppliedJobs))).Methods("GET")
	api.Handle("/students", protect(http.HandlerFunc(studentHandler.GetStudents))).Methods("GET")

	// Recruiters
	api.Handle("/recruiters/register", loginLimit(http.HandlerFunc(recruiterHandler.Register))).Methods("POST")
	api.Handle("/recruiters/login", loginLimit(http.HandlerFunc(recruiterHandler.Login))).Methods("POST")
	api.Handle("/recruiters/profile", recruiterAuth(http.HandlerFunc(recruiterHandler.Profile))).Methods("GET")
	api.Handle("/recruiters", protect(http.HandlerFunc(recruiterHandler.GetRecruiters))).Methods("GET")

	// Jobs
	api.Handle("/jobs/create", recruiterAuth(http.HandlerFunc(jobHandler.CreateJob))).Methods("POST")
	api.Handle("/jobs/recruiter", recruiterAuth(http.HandlerFunc(jobHandler.GetRecruiterJobs))).Methods("GET")
	api.Handle("/jobs", protect(http.HandlerFunc(jobHandler.GetJobs))).Methods("GET")
	api.Handle("/jobs/{jobId}", recruiterAuth(http.HandlerFunc(jobHandler.UpdateJob))).Methods("PUT")
	api.Handle("/jobs/{jobId}", recruiterAuth(http.HandlerFunc(jobHandler.DeleteJob))).Methods("DELETE")

	// Applications (workflow engine)
	api.Handle("/applications/{jobId}/apply", studentAuth(http.HandlerFunc(applicationHandler.Apply))).Methods("POST")
	api.Handle("/applications/update/status", recruiterAuth(http.HandlerFunc(applicationHandler.UpdateStatus))).Methods("PUT")
	api.Handle("/applications/{jobId}/applicants", recruiterAuth(http.HandlerFunc(applicationHandler.Applicants))).Methods("GET")

	// Admin
	api.Handle("/admin/login", loginLimit(http.HandlerFunc(adminHandler.Login))).Methods("POST")
	api.Handle("/admin/jobs", adminAuth(http.HandlerFunc(adminHandler.GetJobs))).Methods("GET")
	api.Handle("/admin/students", adminAuth(http.HandlerFunc(adminHandler.GetStudents))).Methods("GET")
	api.Handle("/admin/recruiters", adminAuth(http.HandlerFunc(adminHandler.GetRecruiters))).Methods("GET")

	// Feedback
	api.Handle("/feedback", protect(http.HandlerFunc(feedbackHandler.Submit))).Methods("POST")

	// Uploaded resumes
	router.PathPrefix("/uploads/resumes/").Handler(
		http.StripPrefix("/uploads/resumes/", http.FileServer(http.Dir(cfg.UploadDir))))

	return router
}
