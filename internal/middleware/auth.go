package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/tutor-booking/internal/config"
	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

// AuthMiddleware accepts HS256 tokens issued by the identity provider. The
// subject is an opaque user id.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Sign in to continue.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Sign in to continue.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(
			strings.TrimSpace(parts[1]),
			func(token *jwt.Token) (any, error) { return secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Your session has expired. Please sign in again.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Sign in to continue.")
			c.Abort()
			return
		}

		userID, err := claims.GetSubject()
		if err != nil || userID == "" {
			httperr.Unauthorized(c, "invalid_token_payload", "Sign in to continue.")
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)

		c.Set(ContextUserID, userID)
		c.Set(ContextUserEmail, email)

		c.Next()
	}
}

func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func UserEmail(c *gin.Context) string {
	return c.GetString(ContextUserEmail)
}
