package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"
)

// CronSecretHeader carries the shared secret for unattended callers.
const CronSecretHeader = "X-Cron-Secret"

// RequireCronSecret guards endpoints meant for unattended schedulers. Requests
// must present the shared secret in the X-Cron-Secret header. An empty
// configured secret rejects everything, so the endpoint is off unless
// explicitly provisioned.
func RequireCronSecret(secret string) fiber.Handler {
	return func(c fiber.Ctx) error {
		presented := c.Get(CronSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": "error",
				"error":  "unauthorized",
			})
		}
		return c.Next()
	}
}
