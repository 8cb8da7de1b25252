package workflow

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jayantgoyal1502/CampusHire/internal/models"
)

// ApplicationStore persists application rows. Insert must enforce the unique
// (student_id, job_id) constraint and return ErrDuplicateKey on a clash, and
// UpdateStatus must apply the Pending-or-same-status predicate atomically in
// the write itself, returning ErrAlreadyDecided when the row was decided the
// other way. The engine relies on the storage layer, not on check-then-write,
// to close the race windows between concurrent applies and decides.
type ApplicationStore interface {
	Insert(ctx context.Context, app *models.Application) error
	FindByStudentAndJob(ctx context.Context, studentID, jobID primitive.ObjectID) (*models.Application, error)
	UpdateStatus(ctx context.Context, studentID, jobID primitive.ObjectID, status models.ApprovalStatus) (*models.Application, error)
	ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error)
	ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Application, error)
}

type StudentStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	SetOfferStatus(ctx context.Context, id primitive.ObjectID, jobType models.JobType, status models.OfferStatus) error
	AppendAppliedJob(ctx context.Context, studentID, jobID primitive.ObjectID) error
}

type JobStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
	AppendApplicant(ctx context.Context, jobID, studentID primitive.ObjectID) error
}

type RecruiterStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recruiter, error)
}

// Notifier sends the best-effort application emails. recruiter may be nil
// when the posting recruiter could not be loaded. Errors never fail an Apply;
// the engine logs and moves on.
type Notifier interface {
	ApplicationSubmitted(student *models.Student, job *models.Job, recruiter *models.Recruiter) error
}
