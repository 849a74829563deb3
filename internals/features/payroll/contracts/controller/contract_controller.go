// file: internals/features/payroll/contracts/controller/contract_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "educenter_backend/internals/features/payroll/contracts/dto"
	model "educenter_backend/internals/features/payroll/contracts/model"
	repository "educenter_backend/internals/features/payroll/contracts/repository"
	service "educenter_backend/internals/features/payroll/contracts/service"
	helper "educenter_backend/internals/helpers"
)

type ContractController struct {
	DB       *gorm.DB
	Resolver *service.Resolver
}

func NewContractController(db *gorm.DB) *ContractController {
	return &ContractController{
		DB:       db,
		Resolver: service.NewResolver(repository.NewGormContractStore(db)),
	}
}

/* ======================= CREATE ======================= */
// POST /admin/payroll/contracts
func (h *ContractController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	effectiveFrom, err := dto.ParseDate(req.EffectiveFrom)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "effective_from harus berformat YYYY-MM-DD")
	}
	fixed, err := dto.ParseAmount(req.FixedAmount)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "fixed_amount tidak valid")
	}
	rate, err := dto.ParseAmount(req.HourlyRate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "hourly_rate tidak valid")
	}
	pct, err := dto.ParseAmount(req.StudentPercentage)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "student_percentage tidak valid")
	}

	row, err := h.Resolver.Create(c.UserContext(), schoolID, service.CreateContractInput{
		MentorID:          req.MentorID,
		EmployeeUserID:    req.EmployeeUserID,
		SalaryType:        model.PayrollSalaryType(req.SalaryType),
		FixedAmount:       fixed,
		HourlyRate:        rate,
		StudentPercentage: pct,
		EffectiveFrom:     effectiveFrom,
	})
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonCreated(c, "Kontrak payroll dibuat", dto.FromContractModel(row))
}

/* ======================= CLOSE ======================= */
// POST /admin/payroll/contracts/:id/close
func (h *ContractController) Close(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID kontrak tidak valid")
	}

	var req dto.CloseContractRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	effectiveTo, err := dto.ParseDate(req.EffectiveTo)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "effective_to harus berformat YYYY-MM-DD")
	}

	row, err := h.Resolver.Close(c.UserContext(), schoolID, contractID, effectiveTo)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonUpdated(c, "Kontrak ditutup", dto.FromContractModel(row))
}

/* ======================= RESOLVE ======================= */
// GET /admin/payroll/contracts/resolve?payee_id=&month=&year=
func (h *ContractController) ResolveActive(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var q dto.ResolveContractQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validator.New().Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	row, err := h.Resolver.ResolveActive(c.UserContext(), schoolID, q.PayeeID, q.Month, q.Year)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonOK(c, "Kontrak aktif", dto.FromContractModel(row))
}

/* ======================= LIST ======================= */
// GET /admin/payroll/contracts?payee_id=
func (h *ContractController) ListByPayee(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	payeeID, err := uuid.Parse(c.Query("payee_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "payee_id tidak valid")
	}

	rows, err := h.Resolver.ListByPayee(c.UserContext(), schoolID, payeeID)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonOK(c, "Daftar kontrak", dto.FromContractModels(rows))
}
