package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func cronApp(secret string) *fiber.App {
	app := fiber.New()
	app.Post("/track", RequireCronSecret(secret), func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequireCronSecret(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
	}{
		{"correct secret", "cron-secret", "cron-secret", http.StatusOK},
		{"wrong secret", "cron-secret", "guessed", http.StatusUnauthorized},
		{"missing header", "cron-secret", "", http.StatusUnauthorized},
		{"unconfigured secret rejects everything", "", "", http.StatusUnauthorized},
		{"unconfigured secret rejects even empty match", "", "anything", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := cronApp(tt.secret)

			req := httptest.NewRequest(http.MethodPost, "/track", nil)
			if tt.header != "" {
				req.Header.Set(CronSecretHeader, tt.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
