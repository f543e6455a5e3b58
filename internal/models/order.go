package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts de commande
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
	OrderStatusPaid       = "Paid"
)

type OrderItem struct {
	ProductID    primitive.ObjectID `bson:"productId" json:"productId" binding:"required"`
	Quantity     int                `bson:"quantity" json:"quantity" binding:"required,gte=1"`
	ProductName  string             `bson:"productName" json:"productName" binding:"required"`
	ProductPrice float64            `bson:"productPrice" json:"productPrice" binding:"required,gte=0"`
	ProductImage string             `bson:"productImage,omitempty" json:"productImage,omitempty"`
}

type ShippingDetails struct {
	FullName     string `bson:"fullName" json:"fullName" binding:"required"`
	AddressLine1 string `bson:"addressLine1" json:"addressLine1" binding:"required"`
	AddressLine2 string `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string `bson:"city" json:"city" binding:"required"`
	State        string `bson:"state" json:"state" binding:"required"`
	ZipCode      string `bson:"zipCode" json:"zipCode" binding:"required"`
	Country      string `bson:"country" json:"country" binding:"required"`
	MobileNumber string `bson:"mobileNumber" json:"mobileNumber" binding:"required"`
	Email        string `bson:"email,omitempty" json:"email,omitempty" binding:"omitempty,email"`
}

type PaymentDetails struct {
	RazorpayOrderID   string `bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentID string `bson:"razorpayPaymentId" json:"razorpayPaymentId"`
	RazorpaySignature string `bson:"razorpaySignature" json:"razorpaySignature"`
	Method            string `bson:"method" json:"method"`
}

// Snapshot immuable d'un achat : les items et l'adresse sont copiés du panier,
// jamais fusionné ni découpé après création.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID          string             `bson:"userId" json:"userId"`
	OrderID         string             `bson:"orderId" json:"orderId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingDetails ShippingDetails    `bson:"shippingDetails" json:"shippingDetails"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	OrderDate       time.Time          `bson:"orderDate" json:"orderDate"`
	Status          string             `bson:"status" json:"status"`
	PaymentDetails  *PaymentDetails    `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
