package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwt "github.com/golang-jwt/jwt/v5"
)

// GenerateToken wraps an anonymous connection id in a short-lived HS256
// token. This is identity assignment, not verification: the id is opaque
// and carries no account, the token merely lets a client reconnect the
// handshake it started at /anonid.
func GenerateToken(anonID string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"anon_id": anonID,
		"exp":     time.Now().Add(ttl).Unix(),
		"iss":     "strangerchat-service",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates a token and extracts the anonymous id.
func ParseToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type")
	}
	anonID, ok := claims["anon_id"].(string)
	if !ok || anonID == "" {
		return "", fmt.Errorf("token carries no anon_id")
	}
	return anonID, nil
}

// GetAnonID mints a fresh anonymous connection id and returns it with its
// token.
func (h *Handler) GetAnonID(c *gin.Context) {
	anonID := uuid.NewString()

	token, err := GenerateToken(anonID, h.Config.JWTSecret, h.Config.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "anon_id": anonID})
}
