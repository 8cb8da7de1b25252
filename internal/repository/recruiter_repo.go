package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jayantgoyal1502/CampusHire/internal/models"
	"github.com/jayantgoyal1502/CampusHire/internal/workflow"
)

type RecruiterRepo struct {
	collection *mongo.Collection
}

func NewRecruiterRepo(client *mongo.Client, dbName string) *RecruiterRepo {
	return &RecruiterRepo{
		collection: client.Database(dbName).Collection("recruiters"),
	}
}

func (r *RecruiterRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recruiter, error) {
	var recruiter models.Recruiter
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&recruiter)
	if err == mongo.ErrNoDocuments {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recruiter, nil
}
