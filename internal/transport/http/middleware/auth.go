package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"team-formation/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// UserIDKey is the fiber locals key holding the authenticated caller id.
const UserIDKey = "user_id"

var errMissingSubject = errors.New("token has no user_id")

// Claims are the bearer token claims. Tokens are issued elsewhere.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// ParseToken verifies an HMAC signed token and returns its claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	if claims.UserID == "" {
		return nil, errMissingSubject
	}
	return claims, nil
}

// Auth requires a valid bearer token and stores its user_id in locals.
func Auth(log *zap.SugaredLogger, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "missing authorization header")
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
			return unauthorized(c, "invalid authorization header format")
		}

		claims, err := ParseToken(token, secret)
		if err != nil {
			log.Debugw("token rejected", "error", err)
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// CallerID returns the authenticated user id.
func CallerID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: dto.ErrorDetail{Code: dto.ErrCodeUnauthorized, Message: msg},
	})
}
