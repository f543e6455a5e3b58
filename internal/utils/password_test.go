package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !VerifyPassword("motdepasse123", hash) {
		t.Error("le bon mot de passe doit être accepté")
	}
	if VerifyPassword("mauvais", hash) {
		t.Error("un mauvais mot de passe doit être rejeté")
	}
}
