package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Schoolhub/src/controllers"
)

// Handlers รวม controller ทุกตัวที่ main สร้างไว้
type Handlers struct {
	Attendance *controllers.AttendanceController
	Fees       *controllers.FeesController
	Persons    *controllers.PersonController
}

func InitRoutes(app *fiber.App, h Handlers) {
	attendanceRoutes(app, h.Attendance)
	feesRoutes(app, h.Fees)
	personRoutes(app, h.Persons)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
