// file: internals/features/payroll/records/controller/payroll_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "educenter_backend/internals/features/payroll/records/dto"
	repository "educenter_backend/internals/features/payroll/records/repository"
	service "educenter_backend/internals/features/payroll/records/service"
	helper "educenter_backend/internals/helpers"
)

type PayrollController struct {
	DB         *gorm.DB
	Calculator *service.Calculator
}

func NewPayrollController(db *gorm.DB) *PayrollController {
	return &PayrollController{
		DB:         db,
		Calculator: service.NewCalculator(repository.NewGormPayrollStore(db)),
	}
}

/* ======================= CALCULATE ======================= */
// POST /admin/payroll/records/calculate
func (h *PayrollController) Calculate(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CalculateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rec, err := h.Calculator.Calculate(c.UserContext(), schoolID, req.PayeeID, req.Month, req.Year)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonOK(c, "Payroll dihitung", rec)
}

/* ======================= BONUS / DENDA ======================= */
// POST /admin/payroll/records/:id/bonus-fine
func (h *PayrollController) AddBonusFine(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID record tidak valid")
	}

	var req dto.BonusFineRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	bonus, err := dto.ParseAmount(req.BonusAmount)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "bonus_amount tidak valid")
	}
	fine, err := dto.ParseAmount(req.FineAmount)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "fine_amount tidak valid")
	}

	rec, err := h.Calculator.AddBonusFine(c.UserContext(), schoolID, recordID, bonus, req.BonusReason, fine, req.FineReason)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonUpdated(c, "Bonus/denda dicatat", rec)
}

/* ======================= TRANSISI ======================= */
// POST /admin/payroll/records/:id/approve
func (h *PayrollController) Approve(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID record tidak valid")
	}

	rec, err := h.Calculator.Approve(c.UserContext(), schoolID, recordID)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonUpdated(c, "Payroll di-approve", rec)
}

// POST /admin/payroll/records/:id/pay
func (h *PayrollController) MarkPaid(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID record tidak valid")
	}

	var req dto.MarkPaidRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rec, err := h.Calculator.MarkPaid(c.UserContext(), schoolID, recordID, req.PaymentMethod, req.Note)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonUpdated(c, "Payroll ditandai terbayar", rec)
}

// POST /admin/payroll/records/:id/cancel
func (h *PayrollController) Cancel(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID record tidak valid")
	}

	rec, err := h.Calculator.Cancel(c.UserContext(), schoolID, recordID)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonUpdated(c, "Payroll dibatalkan", rec)
}

/* ======================= READ ======================= */
// GET /admin/payroll/records?month=&year=
func (h *PayrollController) ListPeriod(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var q dto.PeriodQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validator.New().Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rows, err := h.Calculator.ListPeriod(c.UserContext(), schoolID, q.Month, q.Year)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonOK(c, "Daftar payroll periode", rows)
}
