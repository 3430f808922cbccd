package server

import (
	"errors"

	"muro/internal/mercadopago"
	"muro/internal/models"
	"muro/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePreferenceRequest is the body for starting a gateway checkout.
type CreatePreferenceRequest struct {
	Title      string  `json:"title"`
	Amount     float64 `json:"amount"`
	GraffitiID uint    `json:"graffiti_id"`
}

// CreatePreference creates a Mercado Pago checkout preference for a pending
// graffiti. The amount is re-read from the stored record so a tampered client
// value never reaches the gateway.
func (s *Server) CreatePreference(c *fiber.Ctx) error {
	var req CreatePreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	amount := req.Amount
	if req.GraffitiID != 0 {
		graffiti, err := s.graffitiService.GetGraffiti(c.UserContext(), req.GraffitiID)
		if err != nil {
			return respondServiceError(c, err)
		}
		amount = graffiti.Amount
	}

	result, err := s.paymentService.CreatePreference(c.UserContext(), service.CreatePreferenceInput{
		Title:      req.Title,
		Amount:     amount,
		GraffitiID: req.GraffitiID,
	})
	if err != nil {
		// A gateway rejection is forwarded as-is: same status, same body.
		var gwErr *mercadopago.GatewayError
		if errors.As(err, &gwErr) {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(gwErr.Status).Send(gwErr.Body)
		}
		if errors.Is(err, mercadopago.ErrNoCredentials) {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusCreated).Send(result.Raw)
}
