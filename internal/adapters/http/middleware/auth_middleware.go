package middleware

import (
	"strings"

	"hdb-bto-portal/internal/config"
	"hdb-bto-portal/internal/core/domain"
	"hdb-bto-portal/internal/pkg/jwt"
	"hdb-bto-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("nric", claims.NRIC)
		c.Locals("name", claims.Name)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// ManagerOnly middleware allows only MANAGER role
func ManagerOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleManager))
}

// OfficerOnly middleware allows only OFFICER role
func OfficerOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleOfficer))
}

// StaffOnly middleware allows OFFICER or MANAGER roles
func StaffOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleOfficer), string(domain.RoleManager))
}

// ApplicantSide middleware allows the roles that can hold an application
func ApplicantSide() fiber.Handler {
	return RoleMiddleware(string(domain.RoleApplicant), string(domain.RoleOfficer))
}
