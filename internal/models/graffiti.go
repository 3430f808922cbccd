// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMethod identifies how a graffiti submission is paid for.
type PaymentMethod string

const (
	// PaymentMethodMercadoPago is the automated checkout path: the submitter
	// is redirected to the gateway and the webhook confirms the payment.
	PaymentMethodMercadoPago PaymentMethod = "mercadopago"
	// PaymentMethodCrypto is the manual path: the submitter transfers to one
	// of the configured wallets and an administrator approves by hand.
	PaymentMethodCrypto PaymentMethod = "crypto"
)

// Valid reports whether m is one of the supported payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodMercadoPago, PaymentMethodCrypto:
		return true
	}
	return false
}

// Graffiti is a single submitted wall entry. A record is publicly visible if
// and only if Approved is true; the transition to approved happens exactly
// once, either through the payment webhook or by an administrator.
type Graffiti struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PublicID      uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"public_id"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	ImageURL      string         `json:"image_url,omitempty"`
	PaymentMethod PaymentMethod  `gorm:"type:varchar(20);not null;index" json:"payment_method"`
	Amount        float64        `gorm:"not null" json:"amount"`
	Approved      bool           `gorm:"not null;default:false;index" json:"approved"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the public identifier. The numeric PK is enumerable, so
// anything shown to browsers references the record by PublicID instead.
func (g *Graffiti) BeforeCreate(tx *gorm.DB) error {
	if g.PublicID == uuid.Nil {
		g.PublicID = uuid.New()
	}
	return nil
}

// MaxContentLength bounds the text of a single graffiti.
const MaxContentLength = 500
