// file: internals/features/payroll/worklogs/routes/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	worklogCtl "educenter_backend/internals/features/payroll/worklogs/controller"
)

func WorkLogAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := worklogCtl.NewWorkLogController(db)

	worklogs := r.Group("/payroll/worklogs")

	worklogs.Post("/", ctl.Append)    // POST /payroll/worklogs
	worklogs.Get("/", ctl.ListPeriod) // GET  /payroll/worklogs?payee_id=&month=&year=
}
