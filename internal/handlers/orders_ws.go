package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"voltkart_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// OrderFeed pousse chaque nouvelle commande au dashboard admin en temps réel
func OrderFeed(c *gin.Context) {
	if database.RedisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Flux indisponible"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	// Identifiant de connexion pour suivre les clients dans les logs
	connID := uuid.NewString()
	log.Printf("🟢 Client flux commandes connecté (%s)", connID)
	defer log.Printf("🔌 Client flux commandes déconnecté (%s)", connID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// S'abonner au canal Redis des commandes
	pubsub := database.RedisClient.Subscribe(ctx, orderFeedChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Flux commandes activé",
	})

	// Détecter la fermeture côté client
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
