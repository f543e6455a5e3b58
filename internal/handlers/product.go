package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"voltkart_back_end/internal/cache"
	"voltkart_back_end/internal/database"
	"voltkart_back_end/internal/models"
	"voltkart_back_end/internal/services"
	"voltkart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

//
// --- MONGO COLLECTION ---
//
func getProductCollection() *mongo.Collection {
	return database.MongoProductsDB.Collection("products")
}

// Champs et contraintes du schéma produit
type productInput struct {
	Name     string   `json:"name" binding:"required,min=3,max=200"`
	Brand    string   `json:"brand" binding:"omitempty,max=50"`
	Price    *float64 `json:"price" binding:"required,gte=0"`
	Rating   float64  `json:"rating" binding:"gte=0,lte=5"`
	Reviews  int      `json:"reviews" binding:"gte=0"`
	Quantity *int     `json:"quantity" binding:"required,gte=0"`
	ImageURL string   `json:"imageUrl"`
	Category string   `json:"category" binding:"required,max=50"`
}

// validationErrors transforme les erreurs du validator en liste par champ
func validationErrors(err error) []gin.H {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make([]gin.H, 0, len(ve))
	for _, fe := range ve {
		out = append(out, gin.H{
			"field":   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
			"message": validationMessage(fe),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "champ obligatoire"
	case "min":
		return fmt.Sprintf("longueur minimale: %s", fe.Param())
	case "max":
		return fmt.Sprintf("longueur maximale: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("doit être ≥ %s", fe.Param())
	case "lte":
		return fmt.Sprintf("doit être ≤ %s", fe.Param())
	default:
		return "valeur invalide"
	}
}

//
// --- HANDLERS ---
//

// 🟢 POST /api/products — création produit (admin)
func CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if errs := validationErrors(err); errs != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Validation échouée", "errors": errs})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données produit invalides", "error": err.Error()})
		return
	}

	now := time.Now()
	product := models.Product{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Brand:     input.Brand,
		Price:     *input.Price,
		Rating:    input.Rating,
		Reviews:   input.Reviews,
		Quantity:  *input.Quantity,
		ImageURL:  input.ImageURL,
		Category:  input.Category,
		Stock:     *input.Quantity > 0, // flag dérivé de la quantité
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := getProductCollection().InsertOne(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Échec ajout produit", "error": err.Error()})
		return
	}

	// 🔄 Indexe dans Elasticsearch
	go services.IndexProduct(product)

	cache.InvalidateProducts(ctx)
	utils.LogAction(c, utils.ActionProductCreate, utils.ResourceProduct, product.ID.Hex(), product)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Produit ajouté avec succès",
		"product": product,
	})
}

// 🟢 GET /api/products — liste complète (cache Redis 1h)
func GetAllProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cached, ok := cache.GetCachedProducts(ctx); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	cursor, err := getProductCollection().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Échec récupération produits", "error": err.Error()})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Échec récupération produits", "error": err.Error()})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	cache.CacheProducts(ctx, products)

	c.JSON(http.StatusOK, products)
}

// 🔍 GET /api/products/search?q= — Elasticsearch, repli MongoDB si indisponible
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 1️⃣ Tentative de recherche dans Elasticsearch
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, results)
		return
	}

	// 2️⃣ Si Elasticsearch est vide ou indisponible → fallback MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	filter := bson.M{
		"$or": []bson.M{
			{"name": bson.M{"$regex": query, "$options": "i"}},
			{"brand": bson.M{"$regex": query, "$options": "i"}},
			{"category": bson.M{"$regex": query, "$options": "i"}},
		},
	}

	cursor, err := getProductCollection().Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche MongoDB"})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(products) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Aucun produit trouvé"})
		return
	}

	c.JSON(http.StatusOK, products)
}
