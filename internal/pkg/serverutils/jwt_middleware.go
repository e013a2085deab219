package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// parseUserEmail extracts the authenticated email from a Bearer token issued by
// the external auth layer. Returns "" when no valid identity is present.
func parseUserEmail(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

// JwtMiddleware rejects requests without a valid authenticated user.
func JwtMiddleware(ctx *fiber.Ctx) error {
	email := parseUserEmail(ctx)
	if email == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}
	ctx.Locals(LocalUserEmail, email)
	return ctx.Next()
}
