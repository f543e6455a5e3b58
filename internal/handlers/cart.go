package handlers

import (
	"context"
	"net/http"
	"time"

	"voltkart_back_end/internal/database"
	"voltkart_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func getCartCollection() *mongo.Collection {
	return database.MongoCartsDB.Collection("carts")
}

// mergeCartItem ajoute un item au panier : si le produit est déjà présent,
// la quantité est incrémentée et les champs d'affichage sont rafraîchis ;
// sinon l'item est ajouté en fin de liste.
func mergeCartItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			items[i].ProductName = item.ProductName
			items[i].ProductPrice = item.ProductPrice
			items[i].ProductImage = item.ProductImage
			return items
		}
	}
	return append(items, item)
}

// totalItems calcule la somme des quantités du panier
func totalItems(items []models.CartItem) int {
	sum := 0
	for _, item := range items {
		sum += item.Quantity
	}
	return sum
}

// 🟢 POST /api/cart — ajout au panier (fusion ou création)
func AddToCart(c *gin.Context) {
	var input struct {
		UserID       string  `json:"userId"`
		ProductID    string  `json:"productId"`
		Quantity     int     `json:"quantity"`
		ProductName  string  `json:"productName"`
		ProductPrice float64 `json:"productPrice"`
		ProductImage string  `json:"productImage"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données panier invalides"})
		return
	}

	if input.UserID == "" || input.ProductID == "" || input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Données panier manquantes ou invalides (userId, productId, quantity doit être un nombre positif).",
		})
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID produit invalide"})
		return
	}

	now := time.Now()
	item := models.CartItem{
		ProductID:    productID,
		Quantity:     input.Quantity,
		ProductName:  input.ProductName,
		ProductPrice: input.ProductPrice,
		ProductImage: input.ProductImage,
		AddedAt:      now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cart, err := carts.FindByUser(ctx, input.UserID)

	if err == mongo.ErrNoDocuments {
		// Création d'un nouveau panier
		cart = models.Cart{
			ID:        primitive.NewObjectID(),
			UserID:    input.UserID,
			Items:     []models.CartItem{item},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := carts.Insert(ctx, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur serveur", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Nouveau panier créé et produit ajouté."})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur serveur", "error": err.Error()})
		return
	}

	cart.Items = mergeCartItem(cart.Items, item)

	if err := carts.ReplaceItems(ctx, input.UserID, cart.Items, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur serveur", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier mis à jour avec succès."})
}

// 🟢 GET /api/cart?userId= — panier complet avec totalItems
func GetCart(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Paramètre userId manquant."})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cart, err := carts.FindByUser(ctx, userID)

	if err == mongo.ErrNoDocuments {
		// Pas de panier : on renvoie un panier vide, jamais de 404
		now := time.Now()
		c.JSON(http.StatusOK, gin.H{
			"userId":     userID,
			"items":      []models.CartItem{},
			"totalItems": 0,
			"createdAt":  now,
			"updatedAt":  now,
		})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur serveur", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":        cart.ID,
		"userId":     cart.UserID,
		"items":      cart.Items,
		"totalItems": totalItems(cart.Items),
		"createdAt":  cart.CreatedAt,
		"updatedAt":  cart.UpdatedAt,
	})
}
