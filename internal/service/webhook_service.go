package service

import (
	"context"
	"log/slog"
	"strconv"

	"muro/internal/mercadopago"
	"muro/internal/middleware"
	"muro/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// WebhookOutcome describes what a notification resolved to. Every outcome is
// acknowledged with 200 so the gateway stops retrying; the outcome drives
// logging and metrics only.
type WebhookOutcome string

const (
	OutcomeIgnored         WebhookOutcome = "ignored"
	OutcomeUnresolved      WebhookOutcome = "unresolved"
	OutcomeNotApproved     WebhookOutcome = "not_approved"
	OutcomeMissingMetadata WebhookOutcome = "missing_metadata"
	OutcomeApproved        WebhookOutcome = "approved"
	OutcomeAlreadyApproved WebhookOutcome = "already_approved"
	OutcomeStorageError    WebhookOutcome = "storage_error"
)

type WebhookService struct {
	gateway  PaymentGateway
	graffiti *GraffitiService
}

func NewWebhookService(gateway PaymentGateway, graffiti *GraffitiService) *WebhookService {
	return &WebhookService{gateway: gateway, graffiti: graffiti}
}

// HandleNotification processes one webhook delivery: payment notifications
// are resolved against the gateway and, when the payment is approved, the
// referenced graffiti is published. Failures are logged and swallowed; the
// caller always acknowledges the delivery.
func (s *WebhookService) HandleNotification(ctx context.Context, n *mercadopago.Notification) WebhookOutcome {
	span, ctx := observability.NewSpan(ctx, "webhook.handle_notification")
	defer span.End()

	outcome := s.resolve(ctx, n)

	span.AddAttributes(
		attribute.String("notification.type", n.Type),
		attribute.String("notification.outcome", string(outcome)),
	)
	observability.WebhookNotifications.WithLabelValues(string(outcome)).Inc()
	return outcome
}

func (s *WebhookService) resolve(ctx context.Context, n *mercadopago.Notification) WebhookOutcome {
	if !n.IsPayment() {
		return OutcomeIgnored
	}

	payment, err := s.gateway.GetPayment(ctx, n.Data.ID.String())
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "Webhook payment lookup failed",
			slog.String("payment_id", n.Data.ID.String()),
			slog.String("error", err.Error()),
		)
		return OutcomeUnresolved
	}

	if payment.Status != "approved" {
		middleware.Logger.InfoContext(ctx, "Webhook payment not approved",
			slog.String("payment_id", n.Data.ID.String()),
			slog.String("status", payment.Status),
		)
		return OutcomeNotApproved
	}

	graffitiID, err := strconv.ParseUint(payment.Metadata.GraffitiID.String(), 10, 64)
	if err != nil || graffitiID == 0 {
		middleware.Logger.WarnContext(ctx, "Webhook payment missing graffiti metadata",
			slog.String("payment_id", n.Data.ID.String()),
		)
		return OutcomeMissingMetadata
	}

	transitioned, err := s.graffiti.Approve(ctx, uint(graffitiID), "webhook")
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "Webhook approval failed",
			slog.Uint64("graffiti_id", graffitiID),
			slog.String("error", err.Error()),
		)
		return OutcomeStorageError
	}
	if !transitioned {
		return OutcomeAlreadyApproved
	}

	middleware.Logger.InfoContext(ctx, "Graffiti approved via payment webhook",
		slog.Uint64("graffiti_id", graffitiID),
		slog.String("payment_id", n.Data.ID.String()),
	)
	return OutcomeApproved
}
