// file: internals/features/payroll/advances/controller/advance_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dto "educenter_backend/internals/features/payroll/advances/dto"
	repository "educenter_backend/internals/features/payroll/advances/repository"
	service "educenter_backend/internals/features/payroll/advances/service"
	helper "educenter_backend/internals/helpers"
)

type AdvanceController struct {
	DB      *gorm.DB
	Service *service.AdvanceService
}

func NewAdvanceController(db *gorm.DB) *AdvanceController {
	return &AdvanceController{
		DB:      db,
		Service: service.NewAdvanceService(repository.NewGormAdvanceStore(db)),
	}
}

/* ======================= GIVE ======================= */
// POST /admin/payroll/advances
func (h *AdvanceController) Give(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.GiveAdvanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "amount tidak valid")
	}

	row, err := h.Service.Give(c.UserContext(), schoolID, req.PayeeID, amount, req.Reason, req.TargetMonth, req.TargetYear)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonCreated(c, "Kasbon dicatat", dto.FromAdvanceModel(row))
}

/* ======================= CANCEL ======================= */
// POST /admin/payroll/advances/:id/cancel
func (h *AdvanceController) Cancel(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	advanceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID kasbon tidak valid")
	}

	row, err := h.Service.Cancel(c.UserContext(), schoolID, advanceID)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonUpdated(c, "Kasbon dibatalkan", dto.FromAdvanceModel(row))
}

/* ======================= LIST ======================= */
// GET /admin/payroll/advances?payee_id=
func (h *AdvanceController) ListByPayee(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	payeeID, err := uuid.Parse(c.Query("payee_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "payee_id tidak valid")
	}

	rows, err := h.Service.ListByPayee(c.UserContext(), schoolID, payeeID)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonOK(c, "Daftar kasbon", dto.FromAdvanceModels(rows))
}
