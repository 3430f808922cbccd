package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GatewayRequests counts outbound payment gateway calls by operation and outcome.
	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "muro_gateway_requests_total",
		Help: "Total number of payment gateway requests by operation and outcome",
	}, []string{"operation", "outcome"})

	// WebhookNotifications counts processed webhook notifications by outcome.
	WebhookNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "muro_webhook_notifications_total",
		Help: "Total number of payment webhook notifications by outcome",
	}, []string{"outcome"})

	// GraffitiApprovals counts pending-to-approved transitions by source.
	GraffitiApprovals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "muro_graffiti_approvals_total",
		Help: "Total number of graffiti approvals by source (webhook or admin)",
	}, []string{"source"})
)
