// file: internals/features/finance/debts/routes/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	debtCtl "educenter_backend/internals/features/finance/debts/controller"
)

func DebtAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := debtCtl.NewDebtController(db)

	debts := r.Group("/debts")

	debts.Get("/", ctl.GetDebts)                     // GET /debts
	debts.Get("/by-student", ctl.SummarizeByStudent) // GET /debts/by-student
	debts.Get("/by-group", ctl.SummarizeByGroup)     // GET /debts/by-group
}
