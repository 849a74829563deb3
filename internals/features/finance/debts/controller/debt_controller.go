// file: internals/features/finance/debts/controller/debt_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "educenter_backend/internals/features/finance/debts/dto"
	repository "educenter_backend/internals/features/finance/debts/repository"
	service "educenter_backend/internals/features/finance/debts/service"
	helper "educenter_backend/internals/helpers"
)

type DebtController struct {
	DB         *gorm.DB
	Aggregator *service.Aggregator
}

func NewDebtController(db *gorm.DB) *DebtController {
	return &DebtController{
		DB:         db,
		Aggregator: service.NewAggregator(repository.NewGormDebtStore(db)),
	}
}

/* ======================= DAFTAR TUNGGAKAN ======================= */
// GET /admin/debts?student_id=&group_id=&month=&year=
func (h *DebtController) GetDebts(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	filter, err := dto.ParseDebtFilter(c)
	if err != nil {
		return err
	}

	debts, totals, err := h.Aggregator.GetDebts(c.UserContext(), schoolID, filter)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonOK(c, "Daftar tunggakan", fiber.Map{
		"debts":  debts,
		"totals": totals,
	})
}

/* ======================= ROLLUP PER SISWA ======================= */
// GET /admin/debts/by-student
func (h *DebtController) SummarizeByStudent(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	filter, err := dto.ParseDebtFilter(c)
	if err != nil {
		return err
	}

	out, err := h.Aggregator.SummarizeByStudent(c.UserContext(), schoolID, filter)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonOK(c, "Rekap tunggakan per siswa", out)
}

/* ======================= ROLLUP PER GRUP ======================= */
// GET /admin/debts/by-group
func (h *DebtController) SummarizeByGroup(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	filter, err := dto.ParseDebtFilter(c)
	if err != nil {
		return err
	}

	out, err := h.Aggregator.SummarizeByGroup(c.UserContext(), schoolID, filter)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonOK(c, "Rekap tunggakan per grup", out)
}
