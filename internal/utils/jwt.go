package utils

import (
	"os"
	"time"

	"voltkart_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// JWTSecret retourne la clé de signature HS256, lue à chaque appel.
// Seule source du secret : le middleware s'appuie dessus aussi.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateJWT émet le token de connexion client (7 jours, comme côté front)
func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      user.ID.Hex(),
		"mobileNumber": user.MobileNumber,
		"exp":          time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}

// GenerateAdminJWT émet un token avec le rôle admin (24h)
func GenerateAdminJWT(username string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": username,
		"role":    "admin",
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}
