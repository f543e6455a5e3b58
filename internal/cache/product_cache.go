package cache

import (
	"context"
	"encoding/json"
	"time"

	"voltkart_back_end/internal/database"
	"voltkart_back_end/internal/models"
)

const (
	ProductListTTL     = 1 * time.Hour
	PaymentSeenTTL     = 24 * time.Hour
	productListKey     = "products:all"
	paymentSeenKeyBase = "payment:seen:"
)

// GetCachedProducts récupère la liste complète des produits depuis Redis
func GetCachedProducts(ctx context.Context) ([]models.Product, bool) {
	if database.RedisClient == nil {
		return nil, false
	}

	val, err := database.RedisClient.Get(ctx, productListKey).Result()
	if err != nil || val == "" {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, false
	}
	return products, true
}

// CacheProducts met la liste des produits en cache (1h)
func CacheProducts(ctx context.Context, products []models.Product) {
	if database.RedisClient == nil {
		return
	}
	if data, err := json.Marshal(products); err == nil {
		database.RedisClient.Set(ctx, productListKey, data, ProductListTTL)
	}
}

// InvalidateProducts purge le cache de la liste des produits
func InvalidateProducts(ctx context.Context) {
	if database.RedisClient == nil {
		return
	}
	database.RedisClient.Del(ctx, productListKey)
}

// MarkPaymentSeen pose un verrou d'idempotence sur un paymentID du gateway.
// Retourne false si le callback a déjà été traité (rejoué).
func MarkPaymentSeen(ctx context.Context, paymentID string) bool {
	if database.RedisClient == nil {
		// Sans Redis, on laisse passer plutôt que de bloquer les paiements
		return true
	}
	ok, err := database.RedisClient.SetNX(ctx, paymentSeenKeyBase+paymentID, 1, PaymentSeenTTL).Result()
	if err != nil {
		return true
	}
	return ok
}

// ClearPaymentSeen libère le verrou d'idempotence, quand l'enregistrement
// de la commande échoue après un paiement vérifié.
func ClearPaymentSeen(ctx context.Context, paymentID string) {
	if database.RedisClient == nil {
		return
	}
	database.RedisClient.Del(ctx, paymentSeenKeyBase+paymentID)
}
