package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voltkart_back_end/internal/database"
)

const (
	// Limites par endpoint
	LoginMaxAttempts = 5

	// Durées de cooldown
	LoginCooldown       = 15 * time.Minute
	LoginAttemptsWindow = 15 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par numéro de mobile
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.RedisClient == nil {
			c.Next()
			return
		}

		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			MobileNumber string `json:"mobileNumber"`
		}

		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.MobileNumber == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()

		// Vérifier si le numéro est en cooldown
		cooldownKey := "login_cooldown:" + input.MobileNumber
		if database.RedisClient.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.RedisClient.TTL(ctx, cooldownKey).Val()
			minutes := int(ttl.Minutes())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives. Réessayez dans %d minutes", minutes),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		// Compter les tentatives dans la fenêtre courante
		attemptsKey := "login_attempts:" + input.MobileNumber
		attempts, _ := database.RedisClient.Incr(ctx, attemptsKey).Result()
		if attempts == 1 {
			database.RedisClient.Expire(ctx, attemptsKey, LoginAttemptsWindow)
		}

		if attempts > LoginMaxAttempts {
			database.RedisClient.Set(ctx, cooldownKey, 1, LoginCooldown)
			database.RedisClient.Del(ctx, attemptsKey)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de tentatives de connexion, numéro temporairement bloqué",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
