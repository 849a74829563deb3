// file: internals/features/finance/wallet/routes/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	walletCtl "educenter_backend/internals/features/finance/wallet/controller"
)

func WalletAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := walletCtl.NewWalletController(db)

	wallet := r.Group("/wallet")

	wallet.Post("/accounts", ctl.CreateAccount)          // POST   /wallet/accounts
	wallet.Get("/accounts/:code", ctl.GetByCode)         // GET    /wallet/accounts/:code
	wallet.Get("/accounts/:code/logs", ctl.ListLogs)     // GET    /wallet/accounts/:code/logs
	wallet.Get("/accounts/:code/verify", ctl.VerifyBalance)
	wallet.Delete("/accounts/:code", ctl.Deactivate)     // nonaktifkan, bukan hapus
	wallet.Post("/topup", ctl.TopUp)                     // POST   /wallet/topup
	wallet.Post("/topup/snap", ctl.CreateTopUpSnap)      // POST   /wallet/topup/snap
	wallet.Post("/withdraw", ctl.Withdraw)               // POST   /wallet/withdraw
}

// WalletWebhookRoutes didaftarkan di luar group ber-JWT.
func WalletWebhookRoutes(r fiber.Router, db *gorm.DB) {
	ctl := walletCtl.NewWalletController(db)
	r.Post("/midtrans/topup/:school_id", ctl.MidtransWebhook)
}
