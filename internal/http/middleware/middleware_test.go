package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

type stubValidator struct {
	claims *domain.TokenClaims
	err    error
}

func (s *stubValidator) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	return s.claims, s.err
}

// newTestEnforcer builds an in-memory enforcer with the RBAC model
// used in production.
func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	modelText := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`
	m, err := model.NewModelFromString(modelText)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)
	return e
}

func TestAuthMW_WithJWT(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		authHeader     string
		validator      *stubValidator
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing header",
			authHeader:     "",
			validator:      &stubValidator{},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Authorization header required",
		},
		{
			name:           "malformed header",
			authHeader:     "Token abc",
			validator:      &stubValidator{},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid authorization header format",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired",
			validator:      &stubValidator{err: domain.ErrTokenExpired},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Token expired",
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer garbage",
			validator:      &stubValidator{err: domain.ErrTokenInvalid},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:       "valid token populates context",
			authHeader: "Bearer good",
			validator: &stubValidator{claims: &domain.TokenClaims{
				UserID:   42,
				Username: "alice",
				Role:     domain.RoleStudent,
				Subject:  "alice@example.com",
			}},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewAuthMW(tt.validator)

			r := gin.New()
			r.GET("/protected", mw.WithJWT(), func(c *gin.Context) {
				assert.Equal(t, "42", c.GetString("user_id"))
				assert.Equal(t, "alice", c.GetString("username"))
				assert.Equal(t, domain.RoleStudent, c.GetString("user_role"))
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestCasbinMW_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	enforcer := newTestEnforcer(t)
	_, err := enforcer.AddPolicy("role_STUDENT", "/quizzes", "(GET|POST)")
	require.NoError(t, err)
	_, err = enforcer.AddPolicy("role_ADMIN", "/*", "(GET|POST|PUT|DELETE)")
	require.NoError(t, err)

	tests := []struct {
		name           string
		role           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "student allowed on content route",
			role:           domain.RoleStudent,
			method:         http.MethodGet,
			path:           "/quizzes",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "student denied elsewhere",
			role:           domain.RoleStudent,
			method:         http.MethodDelete,
			path:           "/quizzes",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "admin allowed everywhere",
			role:           domain.RoleAdmin,
			method:         http.MethodDelete,
			path:           "/quizzes",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing role rejected",
			role:           "",
			method:         http.MethodGet,
			path:           "/quizzes",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewCasbinMW(enforcer)

			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.role != "" {
					c.Set("user_role", tt.role)
				}
			})
			r.Handle(tt.method, tt.path, mw.Enforce(), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
