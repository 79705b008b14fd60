package dto

// IdentityWebhookEvent is the provider's user lifecycle event envelope
// (user.created, user.updated, user.deleted).
type IdentityWebhookEvent struct {
	Type string              `json:"type"`
	Data IdentityWebhookUser `json:"data"`
}

type IdentityWebhookUser struct {
	ID             string                 `json:"id"`
	EmailAddresses []IdentityWebhookEmail `json:"email_addresses"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	ImageURL       string                 `json:"image_url"`
}

type IdentityWebhookEmail struct {
	EmailAddress string `json:"email_address"`
}
