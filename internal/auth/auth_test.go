package auth

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(secret, "abc123", "teacher")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(secret, token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "abc123" || claims.Role != "teacher" {
		t.Errorf("claims = %s/%s, want abc123/teacher", claims.UserID, claims.Role)
	}
}

func TestValidateJWTRejects(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateJWT(secret, "abc123", "student")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ValidateJWT([]byte("other-secret"), token); err == nil {
		t.Error("token signed with a different secret validated")
	}
	if _, err := ValidateJWT(secret, "not-a-token"); err == nil {
		t.Error("garbage token validated")
	}
}
