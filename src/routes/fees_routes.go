package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Schoolhub/src/controllers"
	"Backend-Schoolhub/src/middleware"
)

func feesRoutes(router fiber.Router, fc *controllers.FeesController) {
	fees := router.Group("/fees")
	fees.Use(middleware.AuthJWT)

	fees.Post("/collect", fc.Collect)
	fees.Post("/preview", fc.Preview)
	fees.Get("/summary", fc.ClassSummary)
	fees.Get("/ledger", fc.ListLedger)
}
