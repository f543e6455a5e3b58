package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Brand     string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Price     float64            `bson:"price" json:"price"`
	Rating    float64            `bson:"rating" json:"rating"`
	Reviews   int                `bson:"reviews" json:"reviews"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	ImageURL  string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Category  string             `bson:"category" json:"category"`
	Stock     bool               `bson:"stock" json:"stock"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
