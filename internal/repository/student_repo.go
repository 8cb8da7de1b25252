package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jayantgoyal1502/CampusHire/internal/models"
	"github.com/jayantgoyal1502/CampusHire/internal/workflow"
)

type StudentRepo struct {
	collection *mongo.Collection
}

func NewStudentRepo(client *mongo.Client, dbName string) *StudentRepo {
	return &StudentRepo{
		collection: client.Database(dbName).Collection("students"),
	}
}

func (r *StudentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	var student models.Student
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepo) SetOfferStatus(ctx context.Context, id primitive.ObjectID, jobType models.JobType, status models.OfferStatus) error {
	field := models.OfferStatusField(jobType)
	if field == "" {
		return workflow.ErrInvalidStatusValue
	}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return workflow.ErrNotFound
	}
	return nil
}

func (r *StudentRepo) AppendAppliedJob(ctx context.Context, studentID, jobID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": studentID},
		bson.M{"$addToSet": bson.M{"applied_jobs": jobID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return workflow.ErrNotFound
	}
	return nil
}
