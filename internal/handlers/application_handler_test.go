package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jayantgoyal1502/CampusHire/internal/middleware"
	"github.com/jayantgoyal1502/CampusHire/internal/models"
	"github.com/jayantgoyal1502/CampusHire/internal/workflow"
)

type fakeEngine struct {
	applyErr  error
	decideErr error
	jobErr    error

	job        *models.Job
	app        *models.Application
	applicants []models.Application

	gotStatus      models.ApprovalStatus
	gotResumeIndex int
}

func (f *fakeEngine) Apply(ctx context.Context, studentID, jobID primitive.ObjectID, resumeIndex int) (*models.Application, error) {
	f.gotResumeIndex = resumeIndex
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	return f.app, nil
}

func (f *fakeEngine) Decide(ctx context.Context, studentID, jobID primitive.ObjectID, status models.ApprovalStatus) (*models.Application, error) {
	f.gotStatus = status
	if f.decideErr != nil {
		return nil, f.decideErr
	}
	return f.app, nil
}

func (f *fakeEngine) Applicants(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	return f.applicants, nil
}

func (f *fakeEngine) Job(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	if f.jobErr != nil {
		return nil, f.jobErr
	}
	return f.job, nil
}

func applyRequest(t *testing.T, jobID primitive.ObjectID, identity *middleware.Identity, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/applications/"+jobID.Hex()+"/apply", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"jobId": jobID.Hex()})
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *identity))
	}
	return req
}

func TestApplyReturnsApplication(t *testing.T) {
	studentID := primitive.NewObjectID()
	jobID := primitive.NewObjectID()
	engine := &fakeEngine{app: &models.Application{
		ID:             primitive.NewObjectID(),
		StudentID:      studentID,
		JobID:          jobID,
		ApprovalStatus: models.ApprovalPending,
	}}
	h := NewApplicationHandler(engine)

	identity := &middleware.Identity{ID: studentID, Role: "student"}
	rec := httptest.NewRecorder()
	h.Apply(rec, applyRequest(t, jobID, identity, `{"resume_index":0}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message     string             `json:"message"`
		Application models.Application `json:"application"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Successfully applied for the job!", resp.Message)
	assert.Equal(t, models.ApprovalPending, resp.Application.ApprovalStatus)
}

func TestApplyAcceptsBothResumeIndexKeys(t *testing.T) {
	studentID := primitive.NewObjectID()
	jobID := primitive.NewObjectID()
	identity := &middleware.Identity{ID: studentID, Role: "student"}

	cases := []struct {
		name string
		body string
		want int
	}{
		{"snake case", `{"resume_index":2}`, 2},
		{"camel case", `{"resumeIndex":3}`, 3},
		{"snake case wins when both present", `{"resume_index":1,"resumeIndex":4}`, 1},
		{"defaults to first resume", `{}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := &fakeEngine{app: &models.Application{StudentID: studentID, JobID: jobID}}
			h := NewApplicationHandler(engine)

			rec := httptest.NewRecorder()
			h.Apply(rec, applyRequest(t, jobID, identity, tc.body))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, engine.gotResumeIndex)
		})
	}
}

func TestApplyWithoutIdentity(t *testing.T) {
	h := NewApplicationHandler(&fakeEngine{})

	rec := httptest.NewRecorder()
	h.Apply(rec, applyRequest(t, primitive.NewObjectID(), nil, `{"resume_index":0}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApplyErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"duplicate", workflow.ErrDuplicateApplication, http.StatusBadRequest},
		{"offer conflict", workflow.ErrOfferConflict, http.StatusBadRequest},
		{"invalid resume", workflow.ErrInvalidResume, http.StatusBadRequest},
		{"expired job", workflow.ErrJobUnavailable, http.StatusNotFound},
		{"unknown job", workflow.ErrJobNotFound, http.StatusNotFound},
		{"unknown student", workflow.ErrStudentNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewApplicationHandler(&fakeEngine{applyErr: tc.err})
			identity := &middleware.Identity{ID: primitive.NewObjectID(), Role: "student"}

			rec := httptest.NewRecorder()
			h.Apply(rec, applyRequest(t, primitive.NewObjectID(), identity, `{"resume_index":0}`))

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.err.Error(), strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestApplyInvalidJobID(t *testing.T) {
	h := NewApplicationHandler(&fakeEngine{})
	identity := middleware.Identity{ID: primitive.NewObjectID(), Role: "student"}

	req := httptest.NewRequest(http.MethodPost, "/api/applications/not-an-id/apply", strings.NewReader(`{"resume_index":0}`))
	req = mux.SetURLVars(req, map[string]string{"jobId": "not-an-id"})
	req = req.WithContext(middleware.WithIdentity(req.Context(), identity))

	rec := httptest.NewRecorder()
	h.Apply(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func updateStatusRequest(t *testing.T, identity *middleware.Identity, studentID, jobID primitive.ObjectID, status string) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"student_id":      studentID.Hex(),
		"job_id":          jobID.Hex(),
		"approval_status": status,
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/applications/update/status", strings.NewReader(string(body)))
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *identity))
	}
	return req
}

func TestUpdateStatusDecides(t *testing.T) {
	recruiterID := primitive.NewObjectID()
	studentID := primitive.NewObjectID()
	jobID := primitive.NewObjectID()
	engine := &fakeEngine{
		job: &models.Job{ID: jobID, CompanyID: recruiterID},
		app: &models.Application{StudentID: studentID, JobID: jobID, ApprovalStatus: models.ApprovalSelected},
	}
	h := NewApplicationHandler(engine)

	identity := &middleware.Identity{ID: recruiterID, Role: "recruiter"}
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, updateStatusRequest(t, identity, studentID, jobID, "Selected"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ApprovalSelected, engine.gotStatus)

	var resp models.Application
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.ApprovalSelected, resp.ApprovalStatus)
}

func TestUpdateStatusRejectsForeignJob(t *testing.T) {
	jobID := primitive.NewObjectID()
	engine := &fakeEngine{job: &models.Job{ID: jobID, CompanyID: primitive.NewObjectID()}}
	h := NewApplicationHandler(engine)

	identity := &middleware.Identity{ID: primitive.NewObjectID(), Role: "recruiter"}
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, updateStatusRequest(t, identity, primitive.NewObjectID(), jobID, "Selected"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	// The engine must never have been reached.
	assert.Empty(t, engine.gotStatus)
}

func TestUpdateStatusErrorMapping(t *testing.T) {
	recruiterID := primitive.NewObjectID()
	jobID := primitive.NewObjectID()

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"already decided", workflow.ErrAlreadyDecided, http.StatusConflict},
		{"invalid status", workflow.ErrInvalidStatusValue, http.StatusBadRequest},
		{"no application", workflow.ErrApplicationNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := &fakeEngine{
				job:       &models.Job{ID: jobID, CompanyID: recruiterID},
				decideErr: tc.err,
			}
			h := NewApplicationHandler(engine)

			identity := &middleware.Identity{ID: recruiterID, Role: "recruiter"}
			rec := httptest.NewRecorder()
			h.UpdateStatus(rec, updateStatusRequest(t, identity, primitive.NewObjectID(), jobID, "Rejected"))

			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestApplicantsListsForOwner(t *testing.T) {
	recruiterID := primitive.NewObjectID()
	jobID := primitive.NewObjectID()
	engine := &fakeEngine{
		job: &models.Job{ID: jobID, CompanyID: recruiterID},
		applicants: []models.Application{
			{JobID: jobID, ApprovalStatus: models.ApprovalPending},
		},
	}
	h := NewApplicationHandler(engine)

	req := httptest.NewRequest(http.MethodGet, "/api/applications/"+jobID.Hex()+"/applicants", nil)
	req = mux.SetURLVars(req, map[string]string{"jobId": jobID.Hex()})
	req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{ID: recruiterID, Role: "recruiter"}))

	rec := httptest.NewRecorder()
	h.Applicants(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var apps []models.Application
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apps))
	require.Len(t, apps, 1)
	assert.Equal(t, jobID, apps[0].JobID)
}

func TestApplicantsRejectsForeignJob(t *testing.T) {
	jobID := primitive.NewObjectID()
	engine := &fakeEngine{job: &models.Job{ID: jobID, CompanyID: primitive.NewObjectID()}}
	h := NewApplicationHandler(engine)

	req := httptest.NewRequest(http.MethodGet, "/api/applications/"+jobID.Hex()+"/applicants", nil)
	req = mux.SetURLVars(req, map[string]string{"jobId": jobID.Hex()})
	req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{ID: primitive.NewObjectID(), Role: "recruiter"}))

	rec := httptest.NewRecorder()
	h.Applicants(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
