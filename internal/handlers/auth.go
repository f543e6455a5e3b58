package handlers

import (
	"context"
	"net/http"
	"os"
	"regexp"
	"time"

	"voltkart_back_end/internal/models"
	"voltkart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var mobileNumberRe = regexp.MustCompile(`^\d{10}$`)

// ================== AUTH CLIENT ==================

// 🟢 POST /api/login — identité par numéro de mobile, création idempotente
func Login(c *gin.Context) {
	var input struct {
		MobileNumber string `json:"mobileNumber"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Numéro de mobile invalide"})
		return
	}

	// La validation passe avant tout accès base
	if !mobileNumberRe.MatchString(input.MobileNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Numéro de mobile invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := users.FindByMobile(ctx, input.MobileNumber)
	if err == mongo.ErrNoDocuments {
		now := time.Now()
		user = models.User{
			ID:           primitive.NewObjectID(),
			MobileNumber: input.MobileNumber,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Insert(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur serveur", "error": err.Error()})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur serveur", "error": err.Error()})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Connexion réussie",
		"data": gin.H{
			"mobileNumber": user.MobileNumber,
			"token":        token,
		},
	})
}

// ================== AUTH ADMIN ==================

// 🟢 POST /api/admin/login — identifiants vérifiés côté serveur, jamais exposés au front
func AdminLogin(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiants manquants"})
		return
	}

	adminUser := os.Getenv("ADMIN_USERNAME")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminUser == "" || adminHash == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Compte admin non configuré"})
		return
	}

	if input.Username != adminUser || !utils.VerifyPassword(input.Password, adminHash) {
		utils.LogFailedAction(c, utils.ActionAdminLoginKO, utils.ResourceAuth, input.Username, "identifiants invalides")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	token, err := utils.GenerateAdminJWT(adminUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	utils.LogAction(c, utils.ActionAdminLogin, utils.ResourceAuth, adminUser, nil)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"role":  "admin",
	})
}
