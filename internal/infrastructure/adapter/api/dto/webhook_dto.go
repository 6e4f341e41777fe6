package dto

// WebhookResponse acknowledges a verified webhook delivery
type WebhookResponse struct {
	Received bool `json:"received"`
}
