package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identité minimale : un utilisateur = un numéro de mobile à 10 chiffres.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	MobileNumber string             `bson:"mobileNumber" json:"mobileNumber"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
