// file: internals/features/finance/discounts/routes/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	discountCtl "educenter_backend/internals/features/finance/discounts/controller"
)

func DiscountAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := discountCtl.NewDiscountController(db)

	disc := r.Group("/discounts")

	disc.Put("/", ctl.Upsert)               // PUT    /discounts
	disc.Get("/", ctl.List)                 // GET    /discounts
	disc.Get("/preview", ctl.PreviewPayable) // GET   /discounts/preview
	disc.Delete("/:id", ctl.Delete)         // DELETE /discounts/:id
}
