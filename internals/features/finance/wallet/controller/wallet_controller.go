// file: internals/features/finance/wallet/controller/wallet_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "educenter_backend/internals/features/finance/wallet/dto"
	repository "educenter_backend/internals/features/finance/wallet/repository"
	service "educenter_backend/internals/features/finance/wallet/service"
	notifsvc "educenter_backend/internals/features/notifications/service"
	helper "educenter_backend/internals/helpers"
)

type WalletController struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
}

func NewWalletController(db *gorm.DB) *WalletController {
	return &WalletController{
		DB:     db,
		Ledger: service.NewLedgerService(repository.NewGormStore(db), notifsvc.NewLogNotifier(db)),
	}
}

/* ======================= CREATE ACCOUNT ======================= */
// POST /admin/wallet/accounts
func (h *WalletController) CreateAccount(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	acc, err := h.Ledger.CreateAccount(c.UserContext(), schoolID, req.StudentAccountStudentID)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonCreated(c, "Akun wallet siswa berhasil dibuat", dto.FromAccountModel(*acc))
}

/* ======================= TOP UP ======================= */
// POST /admin/wallet/topup
func (h *WalletController) TopUp(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	performedBy, _ := helper.GetUserIDFromToken(c)

	var req dto.TopUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	row, err := h.Ledger.TopUp(c.UserContext(), schoolID, req.AccountCode, req.Amount, req.Method, req.Notes, &performedBy)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonCreated(c, "Top-up berhasil", dto.FromLogModel(*row))
}

/* ======================= WITHDRAW ======================= */
// POST /admin/wallet/withdraw
func (h *WalletController) Withdraw(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}
	performedBy, _ := helper.GetUserIDFromToken(c)

	var req dto.WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	row, err := h.Ledger.Withdraw(c.UserContext(), schoolID, req.AccountCode, req.Amount, req.Reason, &performedBy)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonCreated(c, "Penarikan berhasil", dto.FromLogModel(*row))
}

/* ======================= GET BY CODE ======================= */
// GET /admin/wallet/accounts/:code
func (h *WalletController) GetByCode(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	acc, err := h.Ledger.GetByCode(c.UserContext(), schoolID, c.Params("code"))
	if err != nil {
		return helper.FromServiceError(err, "Akun tidak ditemukan")
	}
	return helper.JsonOK(c, "OK", dto.FromAccountModel(*acc))
}

/* ======================= LIST LOGS ======================= */
// GET /admin/wallet/accounts/:code/logs?page=&per_page=
func (h *WalletController) ListLogs(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Ledger.ListLogs(c.UserContext(), schoolID, c.Params("code"), p.Limit, p.Offset)
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonList(c, "OK", dto.FromLogModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* ======================= VERIFY ======================= */
// GET /admin/wallet/accounts/:code/verify — audit: saldo vs SUM(log)
func (h *WalletController) VerifyBalance(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	ok, balance, sum, err := h.Ledger.VerifyBalance(c.UserContext(), schoolID, c.Params("code"))
	if err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"consistent": ok,
		"balance":    balance,
		"sum_logs":   sum,
	})
}

/* ======================= DEACTIVATE ======================= */
// DELETE /admin/wallet/accounts/:code — soft, akun tidak pernah dihapus
func (h *WalletController) Deactivate(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	if err := h.Ledger.Deactivate(c.UserContext(), schoolID, c.Params("code")); err != nil {
		return helper.FromServiceError(err, err.Error())
	}
	return helper.JsonDeleted(c, "Akun dinonaktifkan", fiber.Map{"account_code": c.Params("code")})
}

/* ======================= TOP UP VIA GATEWAY ======================= */
// POST /admin/wallet/topup/snap
func (h *WalletController) CreateTopUpSnap(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.TopUpSnapRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// pastikan akun ada & aktif sebelum bikin order gateway
	if _, err := h.Ledger.GetByCode(c.UserContext(), schoolID, req.AccountCode); err != nil {
		return helper.FromServiceError(err, "Akun tidak ditemukan")
	}

	orderID := service.BuildTopUpOrderID(req.AccountCode)
	token, err := service.GenerateTopUpSnapToken(orderID, req.Amount, req.PayerName, req.PayerEmail)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Gagal membuat transaksi gateway: "+err.Error())
	}
	return helper.JsonCreated(c, "Snap token dibuat", fiber.Map{
		"order_id":   orderID,
		"snap_token": token,
	})
}

/* ======================= WEBHOOK ======================= */
// POST /webhooks/midtrans/topup/:school_id
// Dipanggil gateway tanpa token; tenant dibawa di path.
func (h *WalletController) MidtransWebhook(c *fiber.Ctx) error {
	schoolID, err := uuid.Parse(c.Params("school_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "school_id tidak valid")
	}

	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Ledger.HandleTopUpStatusWebhook(c.UserContext(), schoolID, body); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Webhook diproses", nil)
}
