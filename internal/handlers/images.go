package handlers

import (
	"context"
	"net/http"
	"time"

	"voltkart_back_end/internal/cache"
	"voltkart_back_end/internal/services"
	"voltkart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//
// =========================
// 🟢 UPLOAD IMAGE PRODUIT
// =========================
//
func UploadProductImage(c *gin.Context) {
	productID := c.Param("id")

	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'file' manquant"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	imageURL, err := services.UploadProductImage(ctx, fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec upload image", "details": err.Error()})
		return
	}

	res, err := getProductCollection().UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"imageUrl": imageURL, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour MongoDB"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.InvalidateProducts(ctx)
	utils.LogAction(c, utils.ActionImageUpload, utils.ResourceProduct, productID, gin.H{"imageUrl": imageURL})

	c.JSON(http.StatusOK, gin.H{
		"message":    "Image uploadée avec succès",
		"product_id": productID,
		"imageUrl":   imageURL,
	})
}
