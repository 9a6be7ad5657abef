package security

import (
	"errors"
	"testing"
	"time"
)

func TestMemberTokenRoundTrip(t *testing.T) {
	token, errGen := GenerateMemberToken("secret", 42, "Budi", "budi@example.com", time.Hour)
	if errGen != nil {
		t.Fatalf("generate: %v", errGen)
	}

	claims, errParse := ParseMemberToken("secret", token)
	if errParse != nil {
		t.Fatalf("parse: %v", errParse)
	}
	if claims.MemberID != 42 || claims.Email != "budi@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, errWrong := ParseMemberToken("other-secret", token); !errors.Is(errWrong, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", errWrong)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, errGen := GenerateMemberToken("secret", 42, "Budi", "budi@example.com", -time.Minute)
	if errGen != nil {
		t.Fatalf("generate: %v", errGen)
	}
	if _, errParse := ParseMemberToken("secret", token); !errors.Is(errParse, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", errParse)
	}
}

func TestAdminTokenNotValidAsMemberToken(t *testing.T) {
	token, errGen := GenerateAdminToken("secret", 7, "owner", "owner", time.Hour)
	if errGen != nil {
		t.Fatalf("generate: %v", errGen)
	}
	if _, errParse := ParseMemberToken("secret", token); errParse == nil {
		t.Fatal("expected admin token to fail member parsing")
	}

	claims, errParse := ParseAdminToken("secret", token)
	if errParse != nil {
		t.Fatalf("parse admin token: %v", errParse)
	}
	if claims.AdminID != 7 || claims.Role != "owner" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, errHash := HashPassword("rahasia123")
	if errHash != nil {
		t.Fatalf("hash: %v", errHash)
	}
	if !CheckPassword(hash, "rahasia123") {
		t.Fatal("expected password to verify")
	}
	if CheckPassword(hash, "salah") {
		t.Fatal("expected wrong password to fail")
	}
}
