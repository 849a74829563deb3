// file: internals/features/finance/charges/controller/charge_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "educenter_backend/internals/features/finance/charges/dto"
	repository "educenter_backend/internals/features/finance/charges/repository"
	service "educenter_backend/internals/features/finance/charges/service"
	notifsvc "educenter_backend/internals/features/notifications/service"
	helper "educenter_backend/internals/helpers"
)

type ChargeController struct {
	DB        *gorm.DB
	Processor *service.ChargeProcessor
}

func NewChargeController(db *gorm.DB) *ChargeController {
	return &ChargeController{
		DB:        db,
		Processor: service.NewChargeProcessor(repository.NewGormChargeStore(db), notifsvc.NewLogNotifier(db)),
	}
}

/* ======================= CHARGE SATU SISWA ======================= */
// POST /admin/charges/monthly
// InsufficientFunds adalah outcome bisnis normal, bukan error → tetap 200.
func (h *ChargeController) ChargeMonthly(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ChargeMonthlyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := h.Processor.ChargeMonthly(c.UserContext(), schoolID, req.StudentID, req.GroupID, req.Month, req.Year)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonOK(c, "Charge diproses", res)
}

/* ======================= BATCH PER GRUP ======================= */
// POST /admin/charges/batch
func (h *ChargeController) ChargeBatch(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ChargeBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	agg, err := h.Processor.ChargeBatch(c.UserContext(), schoolID, req.GroupID, req.Month, req.Year)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonOK(c, "Batch charge selesai", agg)
}
