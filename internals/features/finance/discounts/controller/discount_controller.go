// file: internals/features/finance/discounts/controller/discount_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "educenter_backend/internals/features/finance/discounts/dto"
	repository "educenter_backend/internals/features/finance/discounts/repository"
	service "educenter_backend/internals/features/finance/discounts/service"
	helper "educenter_backend/internals/helpers"
)

type DiscountController struct {
	DB       *gorm.DB
	Store    *repository.GormDiscountStore
	Resolver *service.Resolver
}

func NewDiscountController(db *gorm.DB) *DiscountController {
	store := repository.NewGormDiscountStore(db)
	return &DiscountController{
		DB:       db,
		Store:    store,
		Resolver: service.NewResolver(store),
	}
}

/* ======================= UPSERT ======================= */
// PUT /admin/discounts
func (h *DiscountController) Upsert(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpsertDiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.StudentGroupDiscountAmount.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "Diskon tidak boleh negatif")
	}

	row := req.ToModel(schoolID)
	if err := h.Store.Upsert(c.UserContext(), row); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan diskon")
	}
	return helper.JsonUpdated(c, "Diskon tersimpan", dto.FromModel(*row))
}

/* ======================= LIST ======================= */
// GET /admin/discounts?group_id=&page=&per_page=
func (h *DiscountController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var groupID *uuid.UUID
	if raw := c.Query("group_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "group_id tidak valid")
		}
		groupID = &id
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Store.List(c.UserContext(), schoolID, groupID, p.Limit, p.Offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* ======================= DELETE ======================= */
// DELETE /admin/discounts/:id
func (h *DiscountController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := h.Store.Delete(c.UserContext(), schoolID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Diskon tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Diskon dihapus", fiber.Map{"student_group_discount_id": id})
}

/* ======================= PREVIEW ======================= */
// GET /admin/discounts/preview?student_id=&group_id=&price=
func (h *DiscountController) PreviewPayable(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var q dto.PreviewPayableQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validator.New().Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	preview, err := h.Resolver.PreviewPayable(c.UserContext(), q.Price, schoolID, q.StudentID, q.GroupID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", preview)
}
