// Package jwttest builds request contexts carrying verified access claims for tests.
package jwttest

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

const Secret = "test-secret"

// Context returns ctx as jwtauth.Verifier would leave it after accepting a token for claims.
func Context(t testing.TB, claims jwt.AccessClaims) context.Context {
	t.Helper()

	auth := jwtauth.New("HS256", []byte(Secret), nil)
	token, _, err := auth.Encode(map[string]interface{}{
		"user_id":     claims.UserID,
		"employee_id": claims.EmployeeID,
		"company_id":  claims.CompanyID,
		"role":        string(claims.Role),
		"type":        jwt.TokenTypeAccess,
	})
	if err != nil {
		t.Fatalf("encode token: %v", err)
	}
	return jwtauth.NewContext(context.Background(), token, nil)
}

// Token mints a signed access token for claims with the shared test secret.
func Token(t testing.TB, claims jwt.AccessClaims) string {
	t.Helper()

	token, _, err := jwt.NewJWTService(Secret, time.Hour).GenerateAccessToken(claims)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}
