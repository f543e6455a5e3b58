package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// RazorpaySignature recalcule la signature attendue d'un paiement :
// HMAC-SHA256 de "orderID|paymentID" avec le secret de la clé API, encodé en hexadécimal.
func RazorpaySignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyRazorpaySignature compare octet par octet la signature reçue du callback
// avec la signature recalculée. Tout écart rejette le paiement.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	expected := RazorpaySignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
