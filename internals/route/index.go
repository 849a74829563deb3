// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "educenter_backend/internals/middlewares/auth"

	chargeRoutes "educenter_backend/internals/features/finance/charges/routes"
	debtRoutes "educenter_backend/internals/features/finance/debts/routes"
	discountRoutes "educenter_backend/internals/features/finance/discounts/routes"
	walletRoutes "educenter_backend/internals/features/finance/wallet/routes"
	advanceRoutes "educenter_backend/internals/features/payroll/advances/routes"
	contractRoutes "educenter_backend/internals/features/payroll/contracts/routes"
	payrollRoutes "educenter_backend/internals/features/payroll/records/routes"
	worklogRoutes "educenter_backend/internals/features/payroll/worklogs/routes"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== WEBHOOK (tanpa JWT) =====================
	// Gateway pembayaran memanggil tanpa token; tenant dari path param.
	log.Println("[INFO] Setting up WEBHOOK group...")
	webhook := app.Group("/api/webhooks")
	walletRoutes.WalletWebhookRoutes(webhook, db)

	// ===================== ADMIN (per school) =====================
	log.Println("[INFO] Setting up ADMIN group (AuthJWT)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Finance routes...")
	walletRoutes.WalletAdminRoutes(admin, db)
	discountRoutes.DiscountAdminRoutes(admin, db)
	chargeRoutes.ChargeAdminRoutes(admin, db)
	debtRoutes.DebtAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Payroll routes...")
	contractRoutes.ContractAdminRoutes(admin, db)
	worklogRoutes.WorkLogAdminRoutes(admin, db)
	advanceRoutes.AdvanceAdminRoutes(admin, db)
	payrollRoutes.PayrollAdminRoutes(admin, db)
}
