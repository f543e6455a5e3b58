package handlers

import (
	"context"
	"log"
	"math"
	"net/http"
	"time"

	"voltkart_back_end/internal/database"
	"voltkart_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func getOrderCollection() *mongo.Collection {
	return database.MongoOrdersDB.Collection("orders")
}

type orderInput struct {
	UserID          string                 `json:"userId" binding:"required"`
	CartItems       []models.OrderItem     `json:"cartItems" binding:"required,min=1,dive"`
	ShippingDetails models.ShippingDetails `json:"shippingDetails" binding:"required"`
	TotalPrice      *float64               `json:"totalPrice" binding:"required,gte=0"`
}

// 🟢 POST /api/orders — commande sans paiement en ligne (statut Pending)
func PlaceOrder(c *gin.Context) {
	var input orderInput

	// Toute la validation passe avant la moindre écriture
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données de commande manquantes ou invalides."})
		return
	}

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          input.UserID,
		OrderID:         generateOrderCode(),
		Items:           input.CartItems,
		ShippingDetails: input.ShippingDetails,
		TotalPrice:      *input.TotalPrice,
		OrderDate:       now,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Le montant client fait foi, mais un écart avec la somme des items est tracé
	if computed := calcTotal(input.CartItems); math.Abs(computed-*input.TotalPrice) > 0.01 {
		log.Printf("⚠️ totalPrice client %.2f différent du total calculé %.2f (commande %s)",
			*input.TotalPrice, computed, order.OrderID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Suppression du panier puis décrément du stock : trois écritures
	// indépendantes, sans transaction ni compensation.
	if err := carts.DeleteByUser(ctx, input.UserID); err != nil {
		log.Println("❌ Erreur suppression panier:", err)
	}

	for _, item := range input.CartItems {
		if err := stock.DecrementQuantity(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("❌ Erreur décrément stock produit %s: %v", item.ProductID.Hex(), err)
		}
	}

	if err := orders.Insert(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Échec de la commande suite à une erreur serveur."})
		return
	}

	log.Println("✅ Nouvelle commande enregistrée:", order.OrderID)
	go publishOrderEvent(order)

	c.JSON(http.StatusOK, gin.H{
		"message": "Commande passée avec succès !",
		"orderId": order.OrderID,
		"order":   order,
	})
}

// 🟢 GET /api/orders/user/:userId — commandes d'un utilisateur, plus récentes d'abord
func GetUserOrders(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId requis pour récupérer les commandes."})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	list, err := orders.FindByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Échec récupération commandes.", "error": err.Error()})
		return
	}

	if len(list) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Aucune commande trouvée pour cet utilisateur."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Commandes récupérées avec succès !",
		"data":    list,
	})
}
