// file: internals/features/finance/charges/routes/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	chargeCtl "educenter_backend/internals/features/finance/charges/controller"
)

func ChargeAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := chargeCtl.NewChargeController(db)

	charges := r.Group("/charges")

	charges.Post("/monthly", ctl.ChargeMonthly) // POST /charges/monthly
	charges.Post("/batch", ctl.ChargeBatch)     // POST /charges/batch
}
