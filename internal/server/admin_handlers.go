package server

import (
	"muro/internal/models"
	"muro/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllGraffitis returns every graffiti including pending ones, for the
// moderation queue.
func (s *Server) GetAllGraffitis(c *fiber.Ctx) error {
	pagination := parsePagination(c, 50)

	graffitis, err := s.graffitiService.ListAll(c.UserContext(), service.ListGraffitiInput{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(graffitis)
}

// ApproveGraffiti publishes a graffiti onto the wall. Used for manual crypto
// payments; repeating the call on an approved graffiti is a no-op.
func (s *Server) ApproveGraffiti(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.graffitiService.GetGraffiti(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}

	transitioned, err := s.graffitiService.Approve(c.UserContext(), id, "admin")
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":       id,
		"approved": true,
		"changed":  transitioned,
	})
}

// DeleteGraffiti removes a graffiti from the wall and the moderation queue.
func (s *Server) DeleteGraffiti(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.graffitiService.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Graffiti deleted successfully"})
}

// GetSettings returns the full settings row, wallets included.
func (s *Server) GetSettings(c *fiber.Ctx) error {
	settings, err := s.settingsService.GetSettings(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(settings)
}

// UpdateSettingsRequest is the body for a partial settings update. Pointer
// fields distinguish "leave unchanged" from "set to zero value".
type UpdateSettingsRequest struct {
	PriceSimple    *float64 `json:"price_simple"`
	PriceWithImage *float64 `json:"price_with_image"`
	TRXWallet      *string  `json:"trx_wallet"`
	USDTWallet     *string  `json:"usdt_wallet"`
	BUSDWallet     *string  `json:"busd_wallet"`
}

// UpdateSettings applies a partial update to pricing and wallet addresses.
func (s *Server) UpdateSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	settings, err := s.settingsService.UpdateSettings(c.UserContext(), service.UpdateSettingsInput{
		PriceSimple:    req.PriceSimple,
		PriceWithImage: req.PriceWithImage,
		TRXWallet:      req.TRXWallet,
		USDTWallet:     req.USDTWallet,
		BUSDWallet:     req.BUSDWallet,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(settings)
}
