package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-api/internal/application/dto"
	"github.com/jhoicas/cfdi-api/pkg/jwt"
)

// LocalSubject clave en c.Locals con el subject del token.
const LocalSubject = "sub"

// AuthMiddleware valida el Bearer Token JWT. El token debe haberse emitido para companyRFC.
func AuthMiddleware(jwtSecret, companyRFC string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if claims.CompanyRFC != companyRFC {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "token emitido para otra empresa"})
		}
		c.Locals(LocalSubject, claims.Subject)
		return c.Next()
	}
}

// GetSubject devuelve el subject del token (después del middleware de auth).
func GetSubject(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSubject).(string)
	return s
}
