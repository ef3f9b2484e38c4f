package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDContextKey = "auth_user_id"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

type unauthorizedBody struct {
	Error string `json:"error"`
}

// RequireAuth validates the bearer credential before any gateway call is made.
// The token subject identifies the platform user and later becomes the
// payment's external reference.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			log.Printf("[auth][middleware] missing/malformed bearer from %s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody{Error: "Unauthorized"})
			return
		}

		userID, err := validateToken(token, secret)
		if err != nil {
			log.Printf("[auth][middleware] token rejected from %s: %v", c.ClientIP(), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody{Error: "Unauthorized"})
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user id set by RequireAuth.
func GetUserID(c *gin.Context) string {
	v, ok := c.Get(userIDContextKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrInvalidToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

func validateToken(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
