package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"Backend-Schoolhub/src/utils"
)

const (
	LocalUserID = "userId"
	LocalRole   = "role"
)

// AuthJWT ตรวจ Bearer token และเก็บ userId ไว้เป็นผู้บันทึกรายการ
func AuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Missing or invalid Authorization header")
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired token: "+err.Error())
	}

	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalRole, claims.Role)

	return c.Next()
}

// ActorID returns the authenticated user id, or "" outside AuthJWT.
func ActorID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
