package dto

// SettingsResponse reports key presence only; the stored key is never
// echoed back to clients.
type SettingsResponse struct {
	HasAPIKey bool   `json:"has_api_key"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type SetAPIKeyRequest struct {
	APIKey string `json:"api_key"`
}

type SettingsMessageResponse struct {
	Message string `json:"message"`
}
