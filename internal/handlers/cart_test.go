package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voltkart_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func performJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Handle(method, path, handler)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encodage body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMergeCartItemAppendsNewProduct(t *testing.T) {
	existing := models.CartItem{ProductID: primitive.NewObjectID(), Quantity: 1, ProductName: "Souris"}
	incoming := models.CartItem{ProductID: primitive.NewObjectID(), Quantity: 3, ProductName: "Écran"}

	items := mergeCartItem([]models.CartItem{existing}, incoming)

	if len(items) != 2 {
		t.Fatalf("attendu 2 items, obtenu %d", len(items))
	}
	if items[1].ProductName != "Écran" || items[1].Quantity != 3 {
		t.Errorf("nouvel item mal ajouté: %+v", items[1])
	}
}

func TestMergeCartItemIncrementsExisting(t *testing.T) {
	productID := primitive.NewObjectID()
	existing := models.CartItem{
		ProductID:    productID,
		Quantity:     2,
		ProductName:  "Ancien nom",
		ProductPrice: 100,
		ProductImage: "old.png",
	}
	incoming := models.CartItem{
		ProductID:    productID,
		Quantity:     3,
		ProductName:  "Nouveau nom",
		ProductPrice: 120,
		ProductImage: "new.png",
		AddedAt:      time.Now(),
	}

	items := mergeCartItem([]models.CartItem{existing}, incoming)

	// Pas de doublon : la ligne existante est incrémentée
	if len(items) != 1 {
		t.Fatalf("attendu 1 item, obtenu %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("quantité = %d, attendu 5", items[0].Quantity)
	}

	// Les champs d'affichage sont écrasés par les valeurs fraîches
	if items[0].ProductName != "Nouveau nom" || items[0].ProductPrice != 120 || items[0].ProductImage != "new.png" {
		t.Errorf("champs d'affichage non rafraîchis: %+v", items[0])
	}
}

func TestMergeCartItemRepeatedAdds(t *testing.T) {
	productID := primitive.NewObjectID()
	var items []models.CartItem

	for i := 0; i < 4; i++ {
		items = mergeCartItem(items, models.CartItem{ProductID: productID, Quantity: 2})
	}

	if len(items) != 1 {
		t.Fatalf("attendu 1 item après ajouts répétés, obtenu %d", len(items))
	}
	if items[0].Quantity != 8 {
		t.Errorf("quantité = %d, attendu 8", items[0].Quantity)
	}
}

func TestTotalItems(t *testing.T) {
	items := []models.CartItem{
		{ProductID: primitive.NewObjectID(), Quantity: 2},
		{ProductID: primitive.NewObjectID(), Quantity: 5},
	}

	if got := totalItems(items); got != 7 {
		t.Errorf("totalItems = %d, attendu 7", got)
	}
	if got := totalItems(nil); got != 0 {
		t.Errorf("totalItems(nil) = %d, attendu 0", got)
	}
}

func TestAddToCartRejectsInvalidPayloads(t *testing.T) {
	cases := []struct {
		name string
		body gin.H
	}{
		{"userId manquant", gin.H{"productId": primitive.NewObjectID().Hex(), "quantity": 1}},
		{"productId manquant", gin.H{"userId": "9876543210", "quantity": 1}},
		{"quantité nulle", gin.H{"userId": "9876543210", "productId": primitive.NewObjectID().Hex(), "quantity": 0}},
		{"quantité négative", gin.H{"userId": "9876543210", "productId": primitive.NewObjectID().Hex(), "quantity": -2}},
		{"productId invalide", gin.H{"userId": "9876543210", "productId": "pas-un-objectid", "quantity": 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performJSON(t, AddToCart, http.MethodPost, "/api/cart", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("code = %d, attendu 400", w.Code)
			}
		})
	}
}

func TestGetCartRequiresUserID(t *testing.T) {
	w := performJSON(t, GetCart, http.MethodGet, "/api/cart", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("code = %d, attendu 400", w.Code)
	}
}
