package handlers

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"voltkart_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCalcTotal(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: primitive.NewObjectID(), Quantity: 2, ProductName: "Clavier", ProductPrice: 1499},
		{ProductID: primitive.NewObjectID(), Quantity: 1, ProductName: "Casque", ProductPrice: 3999},
	}

	if got := calcTotal(items); got != 6997 {
		t.Errorf("calcTotal = %v, attendu 6997", got)
	}
	if got := calcTotal(nil); got != 0 {
		t.Errorf("calcTotal(nil) = %v, attendu 0", got)
	}
}

func TestGenerateOrderCodeFormat(t *testing.T) {
	re := regexp.MustCompile(`^ORD-\d{13,}-[0-9a-z]{5}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := generateOrderCode()
		if !re.MatchString(code) {
			t.Fatalf("format de code invalide: %q", code)
		}
		seen[code] = true
	}

	// 50 codes dans la même milliseconde seraient déjà très improbables ;
	// au moins quelques suffixes doivent différer.
	if len(seen) < 2 {
		t.Errorf("codes non uniques: %d distincts sur 50", len(seen))
	}
}

func validOrderItemJSON() gin.H {
	return gin.H{
		"productId":    primitive.NewObjectID().Hex(),
		"quantity":     1,
		"productName":  "Clavier mécanique",
		"productPrice": 1499,
	}
}

func validShippingJSON() gin.H {
	return gin.H{
		"fullName":     "Asha Verma",
		"addressLine1": "12 MG Road",
		"city":         "Bengaluru",
		"state":        "Karnataka",
		"zipCode":      "560001",
		"country":      "India",
		"mobileNumber": "9876543210",
	}
}

func TestPlaceOrderPersistsOrderAndClearsCart(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: primitive.NewObjectID(), Quantity: 2, ProductName: "Clavier mécanique", ProductPrice: 1499},
		{ProductID: primitive.NewObjectID(), Quantity: 1, ProductName: "Casque Bluetooth", ProductPrice: 3999},
	}
	total := calcTotal(items)

	var inserted *models.Order
	var deletedUser string
	decrements := map[string]int{}

	useStores(t, nil,
		&cartStoreMock{deleteFn: func(_ context.Context, userID string) error {
			deletedUser = userID
			return nil
		}},
		&orderStoreMock{insertFn: func(_ context.Context, o models.Order) error {
			inserted = &o
			return nil
		}},
		&stockStoreMock{decrementFn: func(_ context.Context, id primitive.ObjectID, quantity int) error {
			decrements[id.Hex()] += quantity
			return nil
		}},
	)

	body := gin.H{
		"userId":          "9876543210",
		"cartItems":       items,
		"shippingDetails": validShippingJSON(),
		"totalPrice":      total,
	}
	w := performJSON(t, PlaceOrder, http.MethodPost, "/api/orders", body)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, attendu 200 (body: %s)", w.Code, w.Body.String())
	}

	if inserted == nil {
		t.Fatal("aucune commande enregistrée")
	}
	if inserted.TotalPrice != total {
		t.Errorf("totalPrice = %v, attendu %v (somme prix×quantité)", inserted.TotalPrice, total)
	}
	if inserted.Status != models.OrderStatusPending {
		t.Errorf("statut = %q, attendu %q", inserted.Status, models.OrderStatusPending)
	}
	if len(inserted.Items) != len(items) {
		t.Errorf("items enregistrés = %d, attendu %d", len(inserted.Items), len(items))
	}
	if !regexp.MustCompile(`^ORD-\d{13,}-[0-9a-z]{5}$`).MatchString(inserted.OrderID) {
		t.Errorf("code de commande invalide: %q", inserted.OrderID)
	}

	if deletedUser != "9876543210" {
		t.Errorf("panier non vidé pour l'utilisateur, suppression sur %q", deletedUser)
	}
	for _, item := range items {
		if decrements[item.ProductID.Hex()] != item.Quantity {
			t.Errorf("stock de %s décrémenté de %d, attendu %d",
				item.ProductName, decrements[item.ProductID.Hex()], item.Quantity)
		}
	}
}

func TestPlaceOrderRejectsInvalidPayloads(t *testing.T) {
	cases := []struct {
		name string
		body gin.H
	}{
		{"body vide", gin.H{}},
		{"userId manquant", gin.H{
			"cartItems":       []gin.H{validOrderItemJSON()},
			"shippingDetails": validShippingJSON(),
			"totalPrice":      1499,
		}},
		{"cartItems vide", gin.H{
			"userId":          "9876543210",
			"cartItems":       []gin.H{},
			"shippingDetails": validShippingJSON(),
			"totalPrice":      1499,
		}},
		{"totalPrice manquant", gin.H{
			"userId":          "9876543210",
			"cartItems":       []gin.H{validOrderItemJSON()},
			"shippingDetails": validShippingJSON(),
		}},
		{"totalPrice négatif", gin.H{
			"userId":          "9876543210",
			"cartItems":       []gin.H{validOrderItemJSON()},
			"shippingDetails": validShippingJSON(),
			"totalPrice":      -1,
		}},
		{"adresse incomplète", gin.H{
			"userId":          "9876543210",
			"cartItems":       []gin.H{validOrderItemJSON()},
			"shippingDetails": gin.H{"fullName": "Asha Verma"},
			"totalPrice":      1499,
		}},
		{"quantité item nulle", gin.H{
			"userId": "9876543210",
			"cartItems": []gin.H{{
				"productId":    primitive.NewObjectID().Hex(),
				"quantity":     0,
				"productName":  "Clavier",
				"productPrice": 1499,
			}},
			"shippingDetails": validShippingJSON(),
			"totalPrice":      0,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performJSON(t, PlaceOrder, http.MethodPost, "/api/orders", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("code = %d, attendu 400", w.Code)
			}
		})
	}
}
