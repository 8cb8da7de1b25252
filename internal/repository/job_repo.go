package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jayantgoyal1502/CampusHire/internal/models"
	"github.com/jayantgoyal1502/CampusHire/internal/workflow"
)

type JobRepo struct {
	collection *mongo.Collection
}

func NewJobRepo(client *mongo.Client, dbName string) *JobRepo {
	return &JobRepo{
		collection: client.Database(dbName).Collection("jobs"),
	}
}

func (r *JobRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var job models.Job
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepo) AppendApplicant(ctx context.Context, jobID, studentID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": jobID},
		bson.M{"$addToSet": bson.M{"applicants": studentID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return workflow.ErrNotFound
	}
	return nil
}
