// file: internals/features/payroll/contracts/routes/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	contractCtl "educenter_backend/internals/features/payroll/contracts/controller"
)

func ContractAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := contractCtl.NewContractController(db)

	contracts := r.Group("/payroll/contracts")

	contracts.Post("/", ctl.Create)              // POST /payroll/contracts
	contracts.Get("/", ctl.ListByPayee)          // GET  /payroll/contracts?payee_id=
	contracts.Get("/resolve", ctl.ResolveActive) // GET  /payroll/contracts/resolve
	contracts.Post("/:id/close", ctl.Close)      // POST /payroll/contracts/:id/close
}
