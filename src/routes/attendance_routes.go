package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Schoolhub/src/controllers"
	"Backend-Schoolhub/src/middleware"
)

// attendanceRoutes เช็คชื่อแบบ manual / QR scan และ scan session
func attendanceRoutes(router fiber.Router, ac *controllers.AttendanceController) {
	attendance := router.Group("/attendance")
	attendance.Use(middleware.AuthJWT)

	attendance.Post("/manual", ac.MarkManual)
	attendance.Post("/scan", ac.ProcessScan)
	attendance.Get("/summary", ac.DailySummary)

	attendance.Post("/sessions", ac.StartSession)
	attendance.Get("/sessions/:id", ac.GetSession)
	attendance.Post("/sessions/:id/confirm", ac.ConfirmScan)
}
