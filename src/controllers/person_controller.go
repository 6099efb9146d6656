package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/qrcode"
	"Backend-Schoolhub/src/services/attendance"
	"Backend-Schoolhub/src/utils"
)

type PersonController struct {
	Roster attendance.RosterStore
}

func NewPersonController(roster attendance.RosterStore) *PersonController {
	return &PersonController{Roster: roster}
}

// Badge godoc
// @Summary      QR badge whose payload resolves to the person on scan
// @Tags         persons
// @Produce      png
// @Param        id path string true "person id"
// @Param        size query int false "pixels, default 256"
// @Success      200 {file} binary
// @Failure      404 {object} models.ErrorResponse
// @Router       /persons/{id}/badge.png [get]
func (pc *PersonController) Badge(c *fiber.Ctx) error {
	id := c.Params("id")
	person, err := pc.Roster.GetPerson(c.UserContext(), id)
	if err != nil {
		return utils.HandleServiceError(c, models.NewStorageError("get person", err))
	}
	if person == nil {
		return utils.HandleServiceError(c, fmt.Errorf("%w: %s", models.ErrPersonNotFound, id))
	}

	png, err := qrcode.BadgePNG(person.ID, c.QueryInt("size", qrcode.DefaultBadgeSize))
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to generate QR badge")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
