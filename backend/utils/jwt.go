package utils

import (
	"strings"
	"time"

	"pluain/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const sessionTTL = time.Hour * 72

// SessionClaims is what the API token carries about the mocked session.
type SessionClaims struct {
	SessionID string
	Email     string
}

func GenerateJWTToken(sessionID, email string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sessionID,
		"email": email,
		"exp":   time.Now().Add(sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func ExtractSessionFromToken(c *fiber.Ctx, cfg *config.Config) (*SessionClaims, error) {
	tokenString := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	if tokenString == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid session in token")
	}
	email, _ := claims["email"].(string)

	return &SessionClaims{SessionID: sessionID, Email: email}, nil
}
