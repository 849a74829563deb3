// file: internals/features/payroll/worklogs/controller/worklog_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dto "educenter_backend/internals/features/payroll/worklogs/dto"
	repository "educenter_backend/internals/features/payroll/worklogs/repository"
	service "educenter_backend/internals/features/payroll/worklogs/service"
	helper "educenter_backend/internals/helpers"
)

type WorkLogController struct {
	DB      *gorm.DB
	Service *service.WorkLogService
}

func NewWorkLogController(db *gorm.DB) *WorkLogController {
	return &WorkLogController{
		DB:      db,
		Service: service.NewWorkLogService(repository.NewGormWorkLogStore(db)),
	}
}

/* ======================= APPEND ======================= */
// POST /admin/payroll/worklogs
func (h *WorkLogController) Append(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.AppendWorkLogRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "work_date harus berformat YYYY-MM-DD")
	}
	hours, err := decimal.NewFromString(req.Hours)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "hours tidak valid")
	}

	row, err := h.Service.Append(c.UserContext(), schoolID, req.PayeeID, req.GroupID, workDate, hours, req.Note)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonCreated(c, "Jam kerja dicatat", dto.FromWorkLogModel(row))
}

/* ======================= LIST + TOTAL ======================= */
// GET /admin/payroll/worklogs?payee_id=&month=&year=
func (h *WorkLogController) ListPeriod(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var q dto.WorkLogPeriodQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validator.New().Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rows, err := h.Service.List(c.UserContext(), schoolID, q.PayeeID, q.Month, q.Year)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	total, err := h.Service.TotalHours(c.UserContext(), schoolID, q.PayeeID, q.Month, q.Year)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}

	return helper.JsonOK(c, "Jam kerja periode", fiber.Map{
		"work_logs":   dto.FromWorkLogModels(rows),
		"total_hours": total.String(),
	})
}
