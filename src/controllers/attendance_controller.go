package controllers

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/middleware"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/services/attendance"
	"Backend-Schoolhub/src/utils"
)

var validate = validator.New()

func validateBody(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return nil
}

// AttendanceController เชื่อม HTTP เข้ากับ attendance ledger และ scan session
type AttendanceController struct {
	Ledger   *attendance.Ledger
	Roster   attendance.RosterStore
	Sessions attendance.SessionStore
	Locker   attendance.Locker // optional; guards session read-modify-write
	log      *logrus.Entry
}

func NewAttendanceController(ledger *attendance.Ledger, roster attendance.RosterStore, sessions attendance.SessionStore, locker attendance.Locker) *AttendanceController {
	return &AttendanceController{
		Ledger:   ledger,
		Roster:   roster,
		Sessions: sessions,
		Locker:   locker,
		log:      logger.Module("attendance-controller"),
	}
}

// MarkManual godoc
// @Summary      Mark attendance manually
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body body models.ManualMarkRequest true "manual mark"
// @Success      200 {object} models.AttendanceRecord
// @Failure      400 {object} models.ErrorResponse
// @Router       /attendance/manual [post]
func (ac *AttendanceController) MarkManual(c *fiber.Ctx) error {
	var req models.ManualMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateBody(req); err != nil {
		return utils.HandleServiceError(c, err)
	}

	rec, err := ac.Ledger.MarkManual(c.UserContext(), req.PersonID, req.Date, req.Status, middleware.ActorID(c))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(rec)
}

// ProcessScan godoc
// @Summary      Process one QR scan
// @Description  Duplicate scans return 200 with outcome already_marked or duplicate_exit.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body body models.ScanRequest true "scan"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} models.ErrorResponse
// @Router       /attendance/scan [post]
func (ac *AttendanceController) ProcessScan(c *fiber.Ctx) error {
	var req models.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateBody(req); err != nil {
		return utils.HandleServiceError(c, err)
	}

	ctx := c.UserContext()
	now := ac.Ledger.Now()
	date := req.Date
	if date == "" {
		date = models.DateKey(now)
	}

	// roster อ่านสดทุกครั้ง
	roster, err := ac.Roster.GetRoster(ctx, req.Scope())
	if err != nil {
		return utils.HandleServiceError(c, models.NewStorageError("get roster", err))
	}

	outcome, err := ac.Ledger.ProcessScan(ctx, req.Payload, roster, date, now, middleware.ActorID(c))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	resp := fiber.Map{"scan": outcome}
	if req.SessionID != "" {
		progress, err := ac.confirm(ctx, req.SessionID, outcome.Person.ID)
		if err != nil {
			return utils.HandleServiceError(c, err)
		}
		resp["session"] = progress
	}
	return c.JSON(resp)
}

// DailySummary godoc
// @Summary      Daily attendance summary for a roster scope
// @Tags         attendance
// @Produce      json
// @Param        date query string false "YYYY-MM-DD, default today"
// @Param        kind query string true "student|teacher"
// @Param        className query string false "class"
// @Param        section query string false "section"
// @Success      200 {object} models.DailyAttendanceSummary
// @Router       /attendance/summary [get]
func (ac *AttendanceController) DailySummary(c *fiber.Ctx) error {
	var scope models.RosterScope
	if err := c.QueryParser(&scope); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query")
	}
	date := c.Query("date", models.DateKey(ac.Ledger.Now()))

	ctx := c.UserContext()
	roster, err := ac.Roster.GetRoster(ctx, scope)
	if err != nil {
		return utils.HandleServiceError(c, models.NewStorageError("get roster", err))
	}
	summary, err := ac.Ledger.DailySummary(ctx, roster, date)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(summary)
}

// StartSession godoc
// @Summary      Start a sequential scan session over a roster scope
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body body models.StartSessionRequest true "scope"
// @Success      201 {object} attendance.SessionProgress
// @Failure      400 {object} models.ErrorResponse
// @Router       /attendance/sessions [post]
func (ac *AttendanceController) StartSession(c *fiber.Ctx) error {
	var req models.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateBody(req); err != nil {
		return utils.HandleServiceError(c, err)
	}

	ctx := c.UserContext()
	roster, err := ac.Roster.GetRoster(ctx, req.Scope())
	if err != nil {
		return utils.HandleServiceError(c, models.NewStorageError("get roster", err))
	}
	session, err := attendance.StartSession(roster)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if err := ac.Sessions.SaveSession(ctx, session.Snapshot()); err != nil {
		return utils.HandleServiceError(c, models.NewStorageError("save session", err))
	}

	ac.log.WithFields(logrus.Fields{"sessionId": session.ID(), "size": len(roster)}).Info("scan session started")
	return c.Status(fiber.StatusCreated).JSON(session.Progress())
}

// ConfirmScan godoc
// @Summary      Confirm a scanned person in a session
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        id path string true "session id"
// @Param        body body models.ConfirmScanRequest true "person"
// @Success      200 {object} attendance.SessionProgress
// @Failure      404 {object} models.ErrorResponse
// @Router       /attendance/sessions/{id}/confirm [post]
func (ac *AttendanceController) ConfirmScan(c *fiber.Ctx) error {
	var req models.ConfirmScanRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateBody(req); err != nil {
		return utils.HandleServiceError(c, err)
	}

	progress, err := ac.confirm(c.UserContext(), c.Params("id"), req.PersonID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(progress)
}

// GetSession godoc
// @Summary      Scan session progress
// @Tags         attendance
// @Produce      json
// @Param        id path string true "session id"
// @Success      200 {object} attendance.SessionProgress
// @Failure      404 {object} models.ErrorResponse
// @Router       /attendance/sessions/{id} [get]
func (ac *AttendanceController) GetSession(c *fiber.Ctx) error {
	session, err := ac.loadSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(session.Progress())
}

func (ac *AttendanceController) confirm(ctx context.Context, sessionID, personID string) (attendance.SessionProgress, error) {
	if ac.Locker != nil {
		unlock, err := ac.Locker.Lock(ctx, "session:"+sessionID)
		if err != nil {
			return attendance.SessionProgress{}, models.NewStorageError("lock session", err)
		}
		defer unlock()
	}

	session, err := ac.loadSession(ctx, sessionID)
	if err != nil {
		return attendance.SessionProgress{}, err
	}
	session.OnConfirmedScan(personID)
	if err := ac.Sessions.SaveSession(ctx, session.Snapshot()); err != nil {
		return attendance.SessionProgress{}, models.NewStorageError("save session", err)
	}
	return session.Progress(), nil
}

func (ac *AttendanceController) loadSession(ctx context.Context, id string) (*attendance.ScanSession, error) {
	snap, err := ac.Sessions.LoadSession(ctx, id)
	if err != nil {
		return nil, models.NewStorageError("load session", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	return attendance.RestoreSession(*snap)
}
