package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const TokenTypeAccess = "access"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingClaim = errors.New("token is missing a required claim")
)

// AccessClaims identifies the caller of an API request.
type AccessClaims struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       user.Role
}

type Service interface {
	GenerateAccessToken(claims AccessClaims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) Service {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(c AccessClaims) (token string, expiresAt int64, err error) {
	if c.UserID == "" || c.CompanyID == "" {
		return "", 0, fmt.Errorf("%w: user_id and company_id are required", ErrMissingClaim)
	}
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":     c.UserID,
		"employee_id": c.EmployeeID,
		"company_id":  c.CompanyID,
		"role":        string(c.Role),
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ClaimsFromContext reads the verified access claims that jwtauth.Verifier stored in ctx.
func ClaimsFromContext(ctx context.Context) (AccessClaims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return AccessClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if token == nil {
		return AccessClaims{}, ErrInvalidToken
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return AccessClaims{}, fmt.Errorf("%w: company_id", ErrMissingClaim)
	}

	userID, _ := claims["user_id"].(string)
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)

	return AccessClaims{
		UserID:     userID,
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Role:       user.Role(role),
	}, nil
}

// CanAccessEmployee reports whether the caller may read or write data of employeeID.
// Managers and owners reach every employee of their company, others only themselves.
func (c AccessClaims) CanAccessEmployee(employeeID string) bool {
	return c.Role.IsManager() || (c.EmployeeID != "" && c.EmployeeID == employeeID)
}
