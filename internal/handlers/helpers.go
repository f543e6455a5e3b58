package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"voltkart_back_end/internal/database"
	"voltkart_back_end/internal/models"
)

const orderFeedChannel = "orders:feed"

// calcTotal calcule le montant total d'une liste d'items
func calcTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.ProductPrice * float64(item.Quantity)
	}
	return total
}

const orderCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateOrderCode produit un code lisible du type ORD-1718000000000-x4k2p
func generateOrderCode() string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = orderCodeAlphabet[rand.Intn(len(orderCodeAlphabet))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// publishOrderEvent pousse la nouvelle commande sur le flux admin (Redis pub/sub)
func publishOrderEvent(order models.Order) {
	if database.RedisClient == nil {
		return
	}

	event := map[string]interface{}{
		"type":       "order_created",
		"orderId":    order.OrderID,
		"userId":     order.UserID,
		"totalPrice": order.TotalPrice,
		"status":     order.Status,
		"orderDate":  order.OrderDate,
	}

	if data, err := json.Marshal(event); err == nil {
		database.RedisClient.Publish(context.Background(), orderFeedChannel, data)
	}
}
