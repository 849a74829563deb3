// file: internals/features/finance/debts/dto/debt_dto.go
package dto

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	service "educenter_backend/internals/features/finance/debts/service"
)

// ParseDebtFilter membaca query param opsional: student_id, group_id, month, year.
// Param yang kosong dibiarkan nil (tanpa filter).
func ParseDebtFilter(c *fiber.Ctx) (service.DebtFilter, error) {
	var filter service.DebtFilter

	if raw := c.Query("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "student_id tidak valid")
		}
		filter.StudentID = &id
	}
	if raw := c.Query("group_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "group_id tidak valid")
		}
		filter.GroupID = &id
	}
	if raw := c.QueryInt("month", 0); raw != 0 {
		if raw < 1 || raw > 12 {
			return filter, fiber.NewError(fiber.StatusBadRequest, "month harus 1..12")
		}
		m := int16(raw)
		filter.Month = &m
	}
	if raw := c.QueryInt("year", 0); raw != 0 {
		y := int16(raw)
		filter.Year = &y
	}
	return filter, nil
}
