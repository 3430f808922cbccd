package service

import (
	"context"

	"muro/internal/mercadopago"
	"muro/internal/models"
	"muro/internal/validation"
)

// PaymentGateway abstracts the checkout provider so handlers and tests can
// swap in fakes.
type PaymentGateway interface {
	HasCredentials() bool
	CreatePreference(ctx context.Context, title string, amount float64, graffitiID uint) (*mercadopago.Preference, []byte, error)
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
}

type PaymentService struct {
	gateway PaymentGateway
}

type CreatePreferenceInput struct {
	Title      string
	Amount     float64
	GraffitiID uint
}

// CreatePreferenceResult carries both the parsed preference and the gateway's
// raw response body for clients that want the full payload.
type CreatePreferenceResult struct {
	Preference *mercadopago.Preference
	Raw        []byte
}

func NewPaymentService(gateway PaymentGateway) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// CreatePreference creates a checkout preference for a pending graffiti.
// Validation happens before any gateway call so an invalid amount never
// reaches the provider.
func (s *PaymentService) CreatePreference(ctx context.Context, in CreatePreferenceInput) (*CreatePreferenceResult, error) {
	if err := validation.ValidateAmount(in.Amount); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	title := in.Title
	if title == "" {
		title = "Graffiti en el muro"
	}

	pref, raw, err := s.gateway.CreatePreference(ctx, title, in.Amount, in.GraffitiID)
	if err != nil {
		return nil, err
	}
	return &CreatePreferenceResult{Preference: pref, Raw: raw}, nil
}
