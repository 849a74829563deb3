// file: internals/features/payroll/advances/routes/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	advanceCtl "educenter_backend/internals/features/payroll/advances/controller"
)

func AdvanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := advanceCtl.NewAdvanceController(db)

	advances := r.Group("/payroll/advances")

	advances.Post("/", ctl.Give)             // POST /payroll/advances
	advances.Get("/", ctl.ListByPayee)       // GET  /payroll/advances?payee_id=
	advances.Post("/:id/cancel", ctl.Cancel) // POST /payroll/advances/:id/cancel
}
