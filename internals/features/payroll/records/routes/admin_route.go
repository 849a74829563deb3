// file: internals/features/payroll/records/routes/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	payrollCtl "educenter_backend/internals/features/payroll/records/controller"
)

func PayrollAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := payrollCtl.NewPayrollController(db)

	records := r.Group("/payroll/records")

	records.Post("/calculate", ctl.Calculate)         // POST /payroll/records/calculate
	records.Get("/", ctl.ListPeriod)                  // GET  /payroll/records?month=&year=
	records.Post("/:id/bonus-fine", ctl.AddBonusFine) // POST /payroll/records/:id/bonus-fine
	records.Post("/:id/approve", ctl.Approve)         // POST /payroll/records/:id/approve
	records.Post("/:id/pay", ctl.MarkPaid)            // POST /payroll/records/:id/pay
	records.Post("/:id/cancel", ctl.Cancel)           // POST /payroll/records/:id/cancel
}
