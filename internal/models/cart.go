package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	ProductName  string             `bson:"productName,omitempty" json:"productName,omitempty"`
	ProductPrice float64            `bson:"productPrice,omitempty" json:"productPrice,omitempty"`
	ProductImage string             `bson:"productImage,omitempty" json:"productImage,omitempty"`
	AddedAt      time.Time          `bson:"addedAt" json:"addedAt"`
}

// Un seul panier par utilisateur (userId = numéro de mobile)
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
