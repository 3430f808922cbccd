package server

import (
	"io"

	"muro/internal/models"
	"muro/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateGraffitiRequest is the body for submitting a new graffiti.
type CreateGraffitiRequest struct {
	Content       string `json:"content"`
	ImageURL      string `json:"image_url"`
	PaymentMethod string `json:"payment_method"`
}

// GetWall returns approved graffitis, newest first.
func (s *Server) GetWall(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)

	graffitis, err := s.graffitiService.ListWall(c.UserContext(), service.ListGraffitiInput{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(graffitis)
}

// CreateGraffiti records a submission in the pending state. The response
// carries the resolved amount so the client can start the payment flow.
func (s *Server) CreateGraffiti(c *fiber.Ctx) error {
	var req CreateGraffitiRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	graffiti, err := s.graffitiService.CreateGraffiti(c.UserContext(), service.CreateGraffitiInput{
		Content:       req.Content,
		ImageURL:      req.ImageURL,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(graffiti)
}

// UploadImage stores a graffiti image and returns its public URL. The upload
// happens before the graffiti record is created, so a failed upload leaves no
// orphan record behind.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	url, err := s.imageService.Upload(c.UserContext(), service.UploadImageInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

// GetPublicSettings exposes pricing and wallet addresses to the submission
// form. Internal fields stay private; only what the form needs is returned.
func (s *Server) GetPublicSettings(c *fiber.Ctx) error {
	settings, err := s.settingsService.GetSettings(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"price_simple":     settings.PriceSimple,
		"price_with_image": settings.PriceWithImage,
		"wallets":          settings.Wallets(),
	})
}
