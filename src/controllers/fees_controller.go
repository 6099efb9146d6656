package controllers

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Schoolhub/src/middleware"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/services/fees"
	"Backend-Schoolhub/src/utils"
)

type FeesController struct {
	Collector *fees.Collector
	Ledger    fees.LedgerStore
	Summaries *fees.SummaryRefresher
}

func NewFeesController(collector *fees.Collector, ledger fees.LedgerStore, summaries *fees.SummaryRefresher) *FeesController {
	return &FeesController{Collector: collector, Ledger: ledger, Summaries: summaries}
}

// Collect godoc
// @Summary      Collect a (multi-month) fee payment
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        body body models.PaymentInstruction true "payment"
// @Success      201 {object} fees.CollectResult
// @Failure      400 {object} models.ErrorResponse
// @Failure      503 {object} models.ErrorResponse
// @Router       /fees/collect [post]
func (fc *FeesController) Collect(c *fiber.Ctx) error {
	var in models.PaymentInstruction
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if in.CollectedBy == "" {
		in.CollectedBy = middleware.ActorID(c)
	}

	result, err := fc.Collector.Collect(c.UserContext(), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Preview godoc
// @Summary      Preview the monthly split of a payment without saving
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        body body models.PaymentInstruction true "payment"
// @Success      200 {object} models.Proration
// @Router       /fees/preview [post]
func (fc *FeesController) Preview(c *fiber.Ctx) error {
	var in models.PaymentInstruction
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if in.CollectedBy == "" {
		in.CollectedBy = middleware.ActorID(c)
	}

	proration, err := fc.Collector.Preview(in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(proration)
}

// ClassSummary godoc
// @Summary      Per-class paid/donation/due summary
// @Tags         fees
// @Produce      json
// @Param        from query string false "YYYY-MM-DD"
// @Param        to query string false "YYYY-MM-DD"
// @Success      200 {object} map[string]models.ClassFeeSummary
// @Router       /fees/summary [get]
func (fc *FeesController) ClassSummary(c *fiber.Ctx) error {
	var window models.ReportWindow
	if err := c.QueryParser(&window); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query")
	}
	for _, d := range []string{window.From, window.To} {
		if d == "" {
			continue
		}
		if _, err := models.ParseDateKey(d); err != nil {
			return utils.HandleServiceError(c, err)
		}
	}

	summaries, err := fc.Summaries.Summaries(c.UserContext(), window)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(summaries)
}

// ListLedger godoc
// @Summary      Paginated ledger entries
// @Tags         fees
// @Produce      json
// @Param        personId query string false "person"
// @Param        className query string false "class"
// @Param        from query string false "YYYY-MM-DD"
// @Param        to query string false "YYYY-MM-DD"
// @Param        page query int false "page"
// @Param        limit query int false "limit"
// @Success      200 {object} models.PaginatedResponse
// @Router       /fees/ledger [get]
func (fc *FeesController) ListLedger(c *fiber.Ctx) error {
	var q models.LedgerQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if err := validateBody(q); err != nil {
		return utils.HandleServiceError(c, err)
	}

	params := q.Pagination()
	entries, total, err := fc.Ledger.ListLedgerEntries(c.UserContext(), fees.LedgerFilter{
		PersonID:  q.PersonID,
		ClassName: q.ClassName,
		Window:    models.ReportWindow{From: q.From, To: q.To},
		Skip:      params.GetSkip(),
		Limit:     int64(params.Limit),
	})
	if err != nil {
		return utils.HandleServiceError(c, models.NewStorageError("list ledger entries", err))
	}
	return c.JSON(models.NewPaginatedResponse(entries, total, params))
}
