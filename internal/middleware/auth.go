package middleware

import (
	"strings"

	"github.com/PY-Dev20/traint-5x5/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const AccessTokenCookie = "access_token"

// AuthRequired accepts a Bearer token or, when no Authorization header is
// sent, the access_token cookie set by the web client.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errMessage := extractToken(c)
		if errMessage != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": errMessage,
			})
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if cookie := strings.TrimSpace(c.Cookies(AccessTokenCookie)); cookie != "" {
			return cookie, ""
		}
		return "", "Authentication credentials were not provided."
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "Invalid authorization header format"
	}
	return parts[1], ""
}
