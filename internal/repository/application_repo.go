package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jayantgoyal1502/CampusHire/internal/models"
	"github.com/jayantgoyal1502/CampusHire/internal/workflow"
)

type ApplicationRepo struct {
	collection *mongo.Collection
}

func NewApplicationRepo(client *mongo.Client, dbName string) *ApplicationRepo {
	return &ApplicationRepo{
		collection: client.Database(dbName).Collection("applications"),
	}
}

func (r *ApplicationRepo) Insert(ctx context.Context, app *models.Application) error {
	_, err := r.collection.InsertOne(ctx, app)
	if mongo.IsDuplicateKeyError(err) {
		return workflow.ErrDuplicateKey
	}
	return err
}

func (r *ApplicationRepo) FindByStudentAndJob(ctx context.Context, studentID, jobID primitive.ObjectID) (*models.Application, error) {
	var app models.Application
	err := r.collection.FindOne(ctx, bson.M{"student_id": studentID, "job_id": jobID}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatus applies the transition predicate inside the update filter, so
// two concurrent decides cannot both win: only a Pending row, or one already
// holding the same status, matches.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, studentID, jobID primitive.ObjectID, status models.ApprovalStatus) (*models.Application, error) {
	var app models.Application
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{
			"student_id":      studentID,
			"job_id":          jobID,
			"approval_status": bson.M{"$in": bson.A{models.ApprovalPending, status}},
		},
		bson.M{"$set": bson.M{"approval_status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&app)
	if err == mongo.ErrNoDocuments {
		// No matching row: either the application is absent or it was already
		// decided the other way. Re-read to tell the two apart.
		if _, findErr := r.FindByStudentAndJob(ctx, studentID, jobID); findErr != nil {
			return nil, findErr
		}
		return nil, workflow.ErrAlreadyDecided
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	return r.list(ctx, bson.M{"job_id": jobID})
}

func (r *ApplicationRepo) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Application, error) {
	return r.list(ctx, bson.M{"student_id": studentID})
}

func (r *ApplicationRepo) list(ctx context.Context, filter bson.M) ([]models.Application, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"appliedAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var apps []models.Application
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}
