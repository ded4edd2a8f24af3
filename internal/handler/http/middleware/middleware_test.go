package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt/jwttest"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, mws ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	ja := jwt.NewJWTService(jwttest.Secret, 0).JWTAuth()

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(ja))
	r.Use(AuthRequired)
	for _, mw := range mws {
		r.Use(mw)
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func do(t *testing.T, h http.Handler, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthRequired(t *testing.T) {
	h := newTestRouter(t)

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(t, h, ""))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(t, h, "not-a-jwt"))
	})

	t.Run("wrong token type", func(t *testing.T) {
		ja := jwt.NewJWTService(jwttest.Secret, 0).JWTAuth()
		_, token, err := ja.Encode(map[string]any{"company_id": "c1", "type": "refresh"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, do(t, h, token))
	})

	t.Run("valid access token", func(t *testing.T) {
		token := jwttest.Token(t, jwt.AccessClaims{UserID: "u1", EmployeeID: "e1", CompanyID: "c1", Role: user.RoleEmployee})
		assert.Equal(t, http.StatusOK, do(t, h, token))
	})
}

func TestRequireManager(t *testing.T) {
	h := newTestRouter(t, RequireManager)

	employee := jwttest.Token(t, jwt.AccessClaims{UserID: "u1", EmployeeID: "e1", CompanyID: "c1", Role: user.RoleEmployee})
	manager := jwttest.Token(t, jwt.AccessClaims{UserID: "u2", CompanyID: "c1", Role: user.RoleManager})
	owner := jwttest.Token(t, jwt.AccessClaims{UserID: "u3", CompanyID: "c1", Role: user.RoleOwner})

	assert.Equal(t, http.StatusForbidden, do(t, h, employee))
	assert.Equal(t, http.StatusOK, do(t, h, manager))
	assert.Equal(t, http.StatusOK, do(t, h, owner))
}

func TestRequirePermission(t *testing.T) {
	h := newTestRouter(t, RequirePermission(user.PermissionRatesManage))

	manager := jwttest.Token(t, jwt.AccessClaims{UserID: "u2", CompanyID: "c1", Role: user.RoleManager})
	owner := jwttest.Token(t, jwt.AccessClaims{UserID: "u3", CompanyID: "c1", Role: user.RoleOwner})

	assert.Equal(t, http.StatusForbidden, do(t, h, manager))
	assert.Equal(t, http.StatusOK, do(t, h, owner))
}
