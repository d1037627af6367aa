package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"attendancehub/internal/model"
)

func parseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", time.Minute, Claims{
		UserID:    "user-1",
		Role:      "ceo",
		CompanyID: "company-1",
	})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := parseToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if claims.UserID != "user-1" || claims.Role != "ceo" || claims.CompanyID != "company-1" {
		t.Fatalf("unexpected claims")
	}
	if claims.Subject != "user-1" || claims.Issuer != "issuer" || claims.ID == "" {
		t.Fatalf("unexpected registered claims: %+v", claims.RegisteredClaims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", time.Minute, Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := parseToken("other", token); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestIssuerTokensAreUnique(t *testing.T) {
	issuer := NewIssuer("secret", "attendancehub", time.Hour)
	user := model.User{ID: "4", CompanyID: "1", Role: model.RoleMember}

	first, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	second, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct tokens")
	}

	claims, err := parseToken("secret", first)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.Role != "member" || claims.CompanyID != "1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}
