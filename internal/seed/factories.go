// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"math/rand"
	"time"

	"muro/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildGraffiti constructs a graffiti without persisting it.
func (f *Factory) BuildGraffiti(overrides ...func(*models.Graffiti)) *models.Graffiti {
	method := models.PaymentMethodMercadoPago
	amount := 200.0
	imageURL := ""

	if f.rand.Intn(3) == 0 {
		method = models.PaymentMethodCrypto
	}
	if f.rand.Intn(4) == 0 {
		imageURL = "https://picsum.photos/seed/" + gofakeit.UUID() + "/640/480"
		amount = 1000.0
	}

	g := &models.Graffiti{
		Content:       gofakeit.HipsterSentence(f.rand.Intn(8) + 3),
		ImageURL:      imageURL,
		PaymentMethod: method,
		Amount:        amount,
		Approved:      f.rand.Intn(4) != 0, // mostly approved, a few pending
	}

	// realistic created_at spread over the last 60 days
	daysBack := f.rand.Intn(60)
	hoursBack := f.rand.Intn(24)
	g.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(g)
	}
	return g
}

// CreateGraffitisBatch persists multiple graffitis in a single DB call.
func (f *Factory) CreateGraffitisBatch(graffitis []*models.Graffiti) error {
	return f.db.Create(&graffitis).Error
}
