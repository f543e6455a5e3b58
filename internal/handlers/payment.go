package handlers

import (
	"context"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"voltkart_back_end/internal/cache"
	"voltkart_back_end/internal/models"
	"voltkart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func razorpayClient() *razorpay.Client {
	return razorpay.NewClient(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
}

// Verrou d'idempotence Redis sur le paymentID du gateway (voir internal/cache)
var (
	markPaymentSeen  = cache.MarkPaymentSeen
	clearPaymentSeen = cache.ClearPaymentSeen
)

// 🟢 POST /api/create-razorpay-order — crée la commande côté gateway (capture automatique)
func CreateRazorpayOrder(c *gin.Context) {
	var input struct {
		Amount   *int64 `json:"amount" binding:"required,gt=0"` // en paise
		Currency string `json:"currency" binding:"required"`
		Receipt  string `json:"receipt" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Champs requis manquants"})
		return
	}

	if os.Getenv("RAZORPAY_KEY_ID") == "" || os.Getenv("RAZORPAY_KEY_SECRET") == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gateway de paiement non configuré"})
		return
	}

	data := map[string]interface{}{
		"amount":          *input.Amount,
		"currency":        input.Currency,
		"receipt":         input.Receipt,
		"payment_capture": 1,
	}

	order, err := razorpayClient().Order.Create(data, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Échec création commande Razorpay", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

type verifyPaymentInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	orderInput
}

// 🟢 POST /api/verify-payment — vérifie la signature HMAC puis enregistre la commande payée
func VerifyPayment(c *gin.Context) {
	var input verifyPaymentInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données de paiement ou de commande manquantes."})
		return
	}

	// 1. Vérification de la signature — aucun accès base avant
	secret := os.Getenv("RAZORPAY_KEY_SECRET")
	if !utils.VerifyRazorpaySignature(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature, secret) {
		log.Println("❌ Vérification paiement échouée : signature invalide.")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vérification du paiement échouée : signature invalide."})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// 2. Verrou d'idempotence : un callback rejoué ne crée pas de doublon
	if !markPaymentSeen(ctx, input.RazorpayPaymentID) {
		log.Println("⚠️ Callback de paiement rejoué, ignoré:", input.RazorpayPaymentID)
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Paiement déjà traité."})
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
		Status:          models.OrderStatusPaid,
		PaymentDetails: &models.PaymentDetails{
			RazorpayOrderID:   input.RazorpayOrderID,
			RazorpayPaymentID: input.RazorpayPaymentID,
			RazorpaySignature: input.RazorpaySignature,
			Method:            "Razorpay",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if computed := calcTotal(input.CartItems); math.Abs(computed-*input.TotalPrice) > 0.01 {
		log.Printf("⚠️ totalPrice client %.2f différent du total calculé %.2f (commande %s)",
			*input.TotalPrice, computed, order.OrderID)
	}

	// 3. Décrément du stock. Le stock insuffisant est tracé mais pas bloquant :
	// la commande est quand même enregistrée et la quantité décrémentée.
	for _, item := range input.CartItems {
		product, err := stock.FindProduct(ctx, item.ProductID)
		if err != nil {
			log.Printf("❌ Produit introuvable %s (%s)", item.ProductName, item.ProductID.Hex())
		} else if product.Quantity < item.Quantity {
			log.Printf("⚠️ Stock insuffisant pour %s (ID: %s) : %d disponibles, %d demandés",
				item.ProductName, item.ProductID.Hex(), product.Quantity, item.Quantity)
		}

		if err := stock.DecrementQuantity(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("❌ Erreur décrément stock produit %s: %v", item.ProductID.Hex(), err)
		}
	}

	// 4. Suppression du panier
	if err := carts.DeleteByUser(ctx, input.UserID); err != nil {
		log.Println("❌ Erreur suppression panier:", err)
	}

	// 5. Enregistrement de la commande. Un échec ici, après capture du paiement,
	// est critique : le verrou est libéré pour qu'un nouvel envoi du même
	// callback puisse enregistrer la commande.
	if err := orders.Insert(ctx, order); err != nil {
		log.Println("❌ Erreur enregistrement commande après paiement vérifié:", err)
		clearPaymentSeen(ctx, input.RazorpayPaymentID)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Paiement vérifié mais échec d'enregistrement de la commande. Veuillez contacter le support.",
		})
		return
	}

	log.Println("✅ Commande payée enregistrée:", order.OrderID)

	go publishOrderEvent(order)
	go sendOrderConfirmation(order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Paiement vérifié avec succès. Commande enregistrée.",
		"orderId": order.OrderID,
	})
}

// sendOrderConfirmation envoie l'e-mail de confirmation avec facture PDF,
// si l'adresse de livraison contient un e-mail.
func sendOrderConfirmation(order models.Order) {
	email := order.ShippingDetails.Email
	if email == "" {
		return
	}

	var pdf []byte
	if vpa := os.Getenv("UPI_VPA"); vpa != "" {
		qr, err := utils.GenerateUPIQR(vpa, "VoltKart", order.OrderID, order.TotalPrice)
		if err == nil {
			if buf, err := utils.RenderInvoicePDF(utils.GetFrontendInvoiceBaseURL(), order.OrderID, qr); err == nil {
				pdf = buf
			} else {
				log.Println("⚠️ Facture PDF indisponible:", err)
			}
		}
	}

	html := utils.GenerateOrderConfirmationHTML(order)
	if err := utils.SendConfirmationEmail(email, "Confirmation de votre commande "+order.OrderID, html, pdf); err != nil {
		log.Println("❌ Erreur envoi e-mail de confirmation:", err)
	}
}
