package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Recruiter struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrgName            string             `json:"org_name" bson:"org_name"`
	Website            string             `json:"website" bson:"website"`
	Category           string             `json:"category" bson:"category"`
	Sector             string             `json:"sector,omitempty" bson:"sector,omitempty"`
	ParticipationType  string             `json:"participation_type" bson:"participation_type"`
	ContactName        string             `json:"contact_name" bson:"contact_name"`
	ContactDesignation string             `json:"contact_designation" bson:"contact_designation"`
	ContactEmail       string             `json:"contact_email" bson:"contact_email"`
	ContactPhone       string             `json:"contact_phone" bson:"contact_phone"`
	Address            string             `json:"address,omitempty" bson:"address,omitempty"`
	Password           string             `json:"password,omitempty" bson:"password"`
	LinkedinProfile    string             `json:"linkedin_profile,omitempty" bson:"linkedin_profile,omitempty"`
	CompanyType        string             `json:"company_type,omitempty" bson:"company_type,omitempty"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}
