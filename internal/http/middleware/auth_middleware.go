package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// AccessTokenValidator validates bearer tokens for protected routes
type AccessTokenValidator interface {
	ValidateAccessToken(token string) (*domain.TokenClaims, error)
}

// AuthMW carries the JWT validation middleware
type AuthMW struct {
	tokenSvc AccessTokenValidator
}

// NewAuthMW creates the JWT middleware
func NewAuthMW(tokenSvc AccessTokenValidator) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc}
}

// WithJWT validates the Authorization header and stores the caller's
// identity in the request context.
func (m *AuthMW) WithJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenParts[1])
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set("user_id", fmt.Sprintf("%d", claims.UserID))
		c.Set("username", claims.Username)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}
