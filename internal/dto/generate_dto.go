package dto

type GenerateRequest struct {
	Mode         string `json:"mode"`
	Category     string `json:"category"`
	ExistingText string `json:"existing_text,omitempty"`
	IdeaText     string `json:"idea_text,omitempty"`
}

type GenerateResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}
