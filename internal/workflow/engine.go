package workflow

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jayantgoyal1502/CampusHire/internal/models"
)

// Engine owns the apply and decide operations and the invariants around them:
// one application per (student, job), one Selected offer per job type, and
// guarded Pending -> {Selected, Rejected} status transitions.
type Engine struct {
	applications ApplicationStore
	students     StudentStore
	jobs         JobStore
	recruiters   RecruiterStore
	notifier     Notifier
	now          func() time.Time
}

func NewEngine(applications ApplicationStore, students StudentStore, jobs JobStore, recruiters RecruiterStore, notifier Notifier) *Engine {
	return &Engine{
		applications: applications,
		students:     students,
		jobs:         jobs,
		recruiters:   recruiters,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Apply creates the application for (studentID, jobID) with the resume at
// resumeIndex on the student profile. Preconditions fail fast, each with its
// own error; on success exactly one Pending application row exists and the
// back-reference lists have been appended best-effort.
func (e *Engine) Apply(ctx context.Context, studentID, jobID primitive.ObjectID, resumeIndex int) (*models.Application, error) {
	student, err := e.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	job, err := e.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if job.Expired(e.now()) {
		return nil, ErrJobUnavailable
	}

	if student.OfferStatusFor(job.JobType) == models.OfferSelected {
		return nil, ErrOfferConflict
	}

	if _, err := e.applications.FindByStudentAndJob(ctx, studentID, jobID); err == nil {
		return nil, ErrDuplicateApplication
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if resumeIndex < 0 || resumeIndex >= len(student.Resumes) {
		return nil, ErrInvalidResume
	}

	now := e.now()
	app := &models.Application{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		JobID:     jobID,
		Student: models.StudentSnapshot{
			Rollnum: student.Rollnum,
			Name:    student.Name,
			Email:   student.Email,
			Course:  student.Course,
			Branch:  student.Branch,
			CGPA:    student.CGPA,
		},
		Job: models.JobSnapshot{
			OrgName:  job.OrgName,
			JobTitle: job.JobTitle,
		},
		SelectedResume: student.Resumes[resumeIndex],
		ApprovalStatus: models.ApprovalPending,
		AppliedAt:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := e.applications.Insert(ctx, app); err != nil {
		// The unique index is the authority on duplicates; a concurrent apply
		// that won the race surfaces here.
		if errors.Is(err, ErrDuplicateKey) {
			return nil, ErrDuplicateApplication
		}
		return nil, err
	}

	// The application row is authoritative; the two list appends are
	// read-performance duplicates. Failures are reconcile work, never apply
	// failures.
	if err := e.students.AppendAppliedJob(ctx, studentID, jobID); err != nil {
		log.Printf("workflow: reconcile needed: append job %s to student %s applied_jobs: %v", jobID.Hex(), studentID.Hex(), err)
	}
	if err := e.jobs.AppendApplicant(ctx, jobID, studentID); err != nil {
		log.Printf("workflow: reconcile needed: append student %s to job %s applicants: %v", studentID.Hex(), jobID.Hex(), err)
	}

	if e.notifier != nil {
		recruiter, err := e.recruiters.FindByID(ctx, job.CompanyID)
		if err != nil {
			log.Printf("workflow: recruiter %s not loaded for notification: %v", job.CompanyID.Hex(), err)
			recruiter = nil
		}
		go func() {
			if err := e.notifier.ApplicationSubmitted(student, job, recruiter); err != nil {
				log.Printf("workflow: application emails failed for student %s, job %s: %v", studentID.Hex(), jobID.Hex(), err)
			}
		}()
	}

	return app, nil
}

// Decide moves the application for (studentID, jobID) to a terminal status.
// Re-issuing the same decision is idempotent; changing an already-decided
// application to a different status is refused. The pre-read gives friendly
// fast-path errors, but the storage update carries the transition predicate
// itself, so two conflicting decides racing past the pre-read still resolve
// to exactly one winner. On Selected, the student's offer flag for the job's
// type is set alongside.
func (e *Engine) Decide(ctx context.Context, studentID, jobID primitive.ObjectID, status models.ApprovalStatus) (*models.Application, error) {
	if !models.ValidDecision(status) {
		return nil, ErrInvalidStatusValue
	}

	app, err := e.applications.FindByStudentAndJob(ctx, studentID, jobID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if app.ApprovalStatus != models.ApprovalPending && app.ApprovalStatus != status {
		return nil, ErrAlreadyDecided
	}

	updated, err := e.applications.UpdateStatus(ctx, studentID, jobID, status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	// The decision is committed at this point. The offer flag is derived
	// bookkeeping; a failure here is reconcile work, not a failed decide.
	if status == models.ApprovalSelected {
		job, err := e.jobs.FindByID(ctx, app.JobID)
		if err != nil {
			log.Printf("workflow: reconcile needed: load job %s to set offer flag for student %s: %v", app.JobID.Hex(), app.StudentID.Hex(), err)
		} else if err := e.students.SetOfferStatus(ctx, app.StudentID, job.JobType, models.OfferSelected); err != nil {
			log.Printf("workflow: reconcile needed: set %s offer flag for student %s: %v", job.JobType, app.StudentID.Hex(), err)
		}
	}

	return updated, nil
}

// Applicants returns the application rows for a job, snapshots included.
func (e *Engine) Applicants(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	return e.applications.ListByJob(ctx, jobID)
}

// AppliedJobs returns a student's applications. The application rows are the
// source of truth here, not the denormalized applied_jobs list.
func (e *Engine) AppliedJobs(ctx context.Context, studentID primitive.ObjectID) ([]models.Application, error) {
	return e.applications.ListByStudent(ctx, studentID)
}

// Job loads a posting, for ownership checks ahead of Decide and Applicants.
func (e *Engine) Job(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	job, err := e.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}
