package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminRole string

const (
	AdminRoleSuper AdminRole = "SuperAdmin"
	AdminRoleAdmin AdminRole = "Admin"
)

type Admin struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password,omitempty" bson:"password"`
	Role      AdminRole          `json:"role" bson:"role"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
