package constants

// Static route constants
const (
	HealthRoute   = "/healthz"
	WebhooksRoute = "/webhooks"
	APIRoute      = "/api"
)
