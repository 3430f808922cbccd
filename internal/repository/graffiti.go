// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"muro/internal/cache"
	"muro/internal/models"

	"gorm.io/gorm"
)

// GraffitiRepository defines the interface for graffiti data operations
type GraffitiRepository interface {
	Create(ctx context.Context, graffiti *models.Graffiti) error
	GetByID(ctx context.Context, id uint) (*models.Graffiti, error)
	ListApproved(ctx context.Context, limit, offset int) ([]*models.Graffiti, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Graffiti, error)
	Approve(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// graffitiRepository implements GraffitiRepository
type graffitiRepository struct {
	db *gorm.DB
}

// NewGraffitiRepository creates a new graffiti repository
func NewGraffitiRepository(db *gorm.DB) GraffitiRepository {
	return &graffitiRepository{db: db}
}

func (r *graffitiRepository) Create(ctx context.Context, graffiti *models.Graffiti) error {
	return r.db.WithContext(ctx).Create(graffiti).Error
}

func (r *graffitiRepository) GetByID(ctx context.Context, id uint) (*models.Graffiti, error) {
	var graffiti models.Graffiti
	if err := r.db.WithContext(ctx).First(&graffiti, id).Error; err != nil {
		return nil, err
	}
	return &graffiti, nil
}

func (r *graffitiRepository) ListApproved(ctx context.Context, limit, offset int) ([]*models.Graffiti, error) {
	var graffitis []*models.Graffiti
	err := r.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&graffitis).Error
	return graffitis, err
}

func (r *graffitiRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Graffiti, error) {
	var graffitis []*models.Graffiti
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&graffitis).Error
	return graffitis, err
}

// Approve marks a graffiti as approved. The WHERE clause guards against
// re-approval so duplicate payment notifications are no-ops; the bool return
// reports whether this call performed the transition.
func (r *graffitiRepository) Approve(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Graffiti{}).
		Where("id = ? AND approved = ?", id, false).
		Update("approved", true)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		cache.InvalidateWall(ctx)
		return true, nil
	}
	return false, nil
}

func (r *graffitiRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Graffiti{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateWall(ctx)
	return nil
}
