package server

import (
	"encoding/json"
	"log/slog"

	"muro/internal/mercadopago"
	"muro/internal/middleware"
	"muro/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PaymentWebhook receives payment notifications from Mercado Pago. Except for
// a failed signature check, every delivery is acknowledged with 200 so the
// gateway stops retrying; processing problems are logged, never surfaced.
func (s *Server) PaymentWebhook(c *fiber.Ctx) error {
	var notification mercadopago.Notification
	if err := json.Unmarshal(c.Body(), &notification); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "Webhook body not parseable",
			slog.String("error", err.Error()),
		)
		return c.SendStatus(fiber.StatusOK)
	}

	if secret := s.config.MPWebhookSecret; secret != "" {
		ok := mercadopago.VerifySignature(
			secret,
			c.Get("x-signature"),
			c.Get("x-request-id"),
			notification.Data.ID,
		)
		if !ok {
			middleware.Logger.WarnContext(c.UserContext(), "Webhook signature verification failed",
				slog.String("payment_id", notification.Data.ID.String()),
			)
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid webhook signature"))
		}
	}

	outcome := s.webhookService.HandleNotification(c.UserContext(), &notification)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"outcome": string(outcome)})
}
