package utils

import (
	"strings"
	"testing"
)

func TestRazorpaySignatureDeterministic(t *testing.T) {
	sig1 := RazorpaySignature("order_ABC123", "pay_XYZ789", "secret")
	sig2 := RazorpaySignature("order_ABC123", "pay_XYZ789", "secret")

	if sig1 != sig2 {
		t.Fatalf("signature non déterministe: %s != %s", sig1, sig2)
	}
	if len(sig1) != 64 {
		t.Fatalf("longueur hex SHA-256 attendue 64, obtenu %d", len(sig1))
	}
	if sig1 != strings.ToLower(sig1) {
		t.Fatalf("la signature doit être en hexadécimal minuscule: %s", sig1)
	}
}

func TestVerifyRazorpaySignatureValid(t *testing.T) {
	sig := RazorpaySignature("order_ABC123", "pay_XYZ789", "secret")

	if !VerifyRazorpaySignature("order_ABC123", "pay_XYZ789", sig, "secret") {
		t.Fatal("une signature valide doit être acceptée")
	}
}

func TestVerifyRazorpaySignatureTampered(t *testing.T) {
	sig := RazorpaySignature("order_ABC123", "pay_XYZ789", "secret")

	// Chaque octet modifié individuellement doit faire échouer la vérification
	for i := 0; i < len(sig); i++ {
		tampered := []byte(sig)
		if tampered[i] == 'a' {
			tampered[i] = 'b'
		} else {
			tampered[i] = 'a'
		}
		if VerifyRazorpaySignature("order_ABC123", "pay_XYZ789", string(tampered), "secret") {
			t.Fatalf("signature altérée à l'octet %d acceptée", i)
		}
	}
}

func TestVerifyRazorpaySignatureWrongSecret(t *testing.T) {
	sig := RazorpaySignature("order_ABC123", "pay_XYZ789", "secret")

	if VerifyRazorpaySignature("order_ABC123", "pay_XYZ789", sig, "autre_secret") {
		t.Fatal("une signature calculée avec un autre secret doit être rejetée")
	}
}

func TestVerifyRazorpaySignatureSwappedIDs(t *testing.T) {
	sig := RazorpaySignature("order_ABC123", "pay_XYZ789", "secret")

	if VerifyRazorpaySignature("pay_XYZ789", "order_ABC123", sig, "secret") {
		t.Fatal("l'ordre orderID|paymentID doit être significatif")
	}
}
