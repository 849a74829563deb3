package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware menangkap panic supaya satu request yang meledak tidak
// menjatuhkan proses; scheduler billing & payroll harus tetap jalan.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Printf("[PANIC] %s %s reqid=%v: %v", c.Method(), c.Path(), c.Locals("reqid"), e)
		},
	})
}
