package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Schoolhub/src/controllers"
	"Backend-Schoolhub/src/middleware"
)

func personRoutes(router fiber.Router, pc *controllers.PersonController) {
	persons := router.Group("/persons")
	persons.Use(middleware.AuthJWT)

	persons.Get("/:id/badge.png", pc.Badge) // QR badge สำหรับสแกนเช็คชื่อ
}
