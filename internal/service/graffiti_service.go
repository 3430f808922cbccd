// Package service contains business logic between handlers and repositories.
package service

import (
	"context"
	"errors"
	"strings"

	"muro/internal/cache"
	"muro/internal/models"
	"muro/internal/observability"
	"muro/internal/repository"
	"muro/internal/validation"

	"gorm.io/gorm"
)

type GraffitiService struct {
	graffitiRepo repository.GraffitiRepository
	settingsRepo repository.SettingsRepository
}

type CreateGraffitiInput struct {
	Content       string
	ImageURL      string
	PaymentMethod string
}

type ListGraffitiInput struct {
	Limit  int
	Offset int
}

func NewGraffitiService(graffitiRepo repository.GraffitiRepository, settingsRepo repository.SettingsRepository) *GraffitiService {
	return &GraffitiService{
		graffitiRepo: graffitiRepo,
		settingsRepo: settingsRepo,
	}
}

// CreateGraffiti records a new submission in the pending (unapproved) state.
// The amount owed is resolved server-side from current pricing so clients
// cannot choose their own price.
func (s *GraffitiService) CreateGraffiti(ctx context.Context, in CreateGraffitiInput) (*models.Graffiti, error) {
	if err := validation.ValidateContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	method := models.PaymentMethod(in.PaymentMethod)
	if !method.Valid() {
		return nil, models.NewValidationError("Invalid payment_method")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	graffiti := &models.Graffiti{
		Content:       strings.TrimSpace(in.Content),
		ImageURL:      in.ImageURL,
		PaymentMethod: method,
		Amount:        settings.PriceFor(in.ImageURL != ""),
		Approved:      false,
	}
	if err := s.graffitiRepo.Create(ctx, graffiti); err != nil {
		return nil, err
	}
	return graffiti, nil
}

// ListWall returns approved graffitis, newest first. The first page is served
// through the cache since it is what every visitor requests.
func (s *GraffitiService) ListWall(ctx context.Context, in ListGraffitiInput) ([]*models.Graffiti, error) {
	if in.Offset == 0 {
		var graffitis []*models.Graffiti
		err := cache.Aside(ctx, cache.WallFirstPage, &graffitis, cache.WallTTL, func() error {
			var fetchErr error
			graffitis, fetchErr = s.graffitiRepo.ListApproved(ctx, in.Limit, 0)
			return fetchErr
		})
		return graffitis, err
	}
	return s.graffitiRepo.ListApproved(ctx, in.Limit, in.Offset)
}

// ListAll returns every graffiti regardless of approval state. Admin only.
func (s *GraffitiService) ListAll(ctx context.Context, in ListGraffitiInput) ([]*models.Graffiti, error) {
	return s.graffitiRepo.ListAll(ctx, in.Limit, in.Offset)
}

// GetGraffiti fetches a single graffiti by id.
func (s *GraffitiService) GetGraffiti(ctx context.Context, id uint) (*models.Graffiti, error) {
	graffiti, err := s.graffitiRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Graffiti not found")
		}
		return nil, err
	}
	return graffiti, nil
}

// Approve publishes a graffiti onto the wall. Idempotent: approving an
// already-approved graffiti is a no-op and the bool return reports whether
// this call made the transition. source labels who triggered the approval
// ("webhook" or "admin") for the metrics.
func (s *GraffitiService) Approve(ctx context.Context, id uint, source string) (bool, error) {
	transitioned, err := s.graffitiRepo.Approve(ctx, id)
	if err != nil {
		return false, err
	}
	if transitioned {
		observability.GraffitiApprovals.WithLabelValues(source).Inc()
	}
	return transitioned, nil
}

// Delete removes a graffiti. Admin only.
func (s *GraffitiService) Delete(ctx context.Context, id uint) error {
	if _, err := s.graffitiRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Graffiti not found")
		}
		return err
	}
	return s.graffitiRepo.Delete(ctx, id)
}
