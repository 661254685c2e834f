package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"insurance-service/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
)

const userIDLocal = "user_id"

// AuthClaims are the JWT claims the gateway issues for back-office users.
type AuthClaims struct {
	jwt.RegisteredClaims
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
}

type Middleware struct {
	jwtSecret string
}

func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{jwtSecret: jwtSecret}
}

// RequireAuth validates the bearer token and stores the authenticated user
// id for downstream handlers to stamp audit fields with.
func (m *Middleware) RequireAuth(c fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("MISSING_TOKEN", "authorization header required"))
	}

	tokenString := authHeader
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = authHeader[7:]
	}

	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
	}

	c.Locals(userIDLocal, claims.UserID)
	return c.Next()
}

// authenticatedUserID returns the user id set by RequireAuth.
func authenticatedUserID(c fiber.Ctx) string {
	if id, ok := c.Locals(userIDLocal).(string); ok {
		return id
	}
	return ""
}
