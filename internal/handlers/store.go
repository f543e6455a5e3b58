package handlers

import (
	"context"
	"time"

	"voltkart_back_end/internal/database"
	"voltkart_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Les handlers passent par ces petites interfaces plutôt que par les
// collections directement ; les implémentations par défaut s'appuient
// sur les handles Mongo globaux.

type userStore interface {
	FindByMobile(ctx context.Context, mobileNumber string) (models.User, error)
	Insert(ctx context.Context, user models.User) error
}

type cartStore interface {
	FindByUser(ctx context.Context, userID string) (models.Cart, error)
	Insert(ctx context.Context, cart models.Cart) error
	ReplaceItems(ctx context.Context, userID string, items []models.CartItem, updatedAt time.Time) error
	DeleteByUser(ctx context.Context, userID string) error
}

type orderStore interface {
	Insert(ctx context.Context, order models.Order) error
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
}

type stockStore interface {
	FindProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	DecrementQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error
}

var (
	users  userStore  = mongoUserStore{}
	carts  cartStore  = mongoCartStore{}
	orders orderStore = mongoOrderStore{}
	stock  stockStore = mongoStockStore{}
)

// --- Implémentations MongoDB ---

type mongoUserStore struct{}

func (mongoUserStore) FindByMobile(ctx context.Context, mobileNumber string) (models.User, error) {
	var user models.User
	err := database.MongoAuthDB.Collection("users").
		FindOne(ctx, bson.M{"mobileNumber": mobileNumber}).Decode(&user)
	return user, err
}

func (mongoUserStore) Insert(ctx context.Context, user models.User) error {
	_, err := database.MongoAuthDB.Collection("users").InsertOne(ctx, user)
	return err
}

type mongoCartStore struct{}

func (mongoCartStore) FindByUser(ctx context.Context, userID string) (models.Cart, error) {
	var cart models.Cart
	err := getCartCollection().FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	return cart, err
}

func (mongoCartStore) Insert(ctx context.Context, cart models.Cart) error {
	_, err := getCartCollection().InsertOne(ctx, cart)
	return err
}

func (mongoCartStore) ReplaceItems(ctx context.Context, userID string, items []models.CartItem, updatedAt time.Time) error {
	_, err := getCartCollection().UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": items, "updatedAt": updatedAt}},
	)
	return err
}

func (mongoCartStore) DeleteByUser(ctx context.Context, userID string) error {
	_, err := getCartCollection().DeleteOne(ctx, bson.M{"userId": userID})
	return err
}

type mongoOrderStore struct{}

func (mongoOrderStore) Insert(ctx context.Context, order models.Order) error {
	_, err := getOrderCollection().InsertOne(ctx, order)
	return err
}

func (mongoOrderStore) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cursor, err := getOrderCollection().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

type mongoStockStore struct{}

func (mongoStockStore) FindProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := getProductCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	return product, err
}

func (mongoStockStore) DecrementQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error {
	_, err := getProductCollection().UpdateByID(ctx, id,
		bson.M{"$inc": bson.M{"quantity": -quantity}})
	return err
}
