package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"promptvault/internal/config"
	"promptvault/internal/repository"
)

// GenerateMode selects how the completion API is used.
type GenerateMode string

const (
	ModeImprove  GenerateMode = "improve"
	ModeGenerate GenerateMode = "generate"
)

var (
	ErrAPIKeyMissing       = errors.New("no OpenAI API key found, add your API key in settings")
	ErrAPIKeyInvalid       = errors.New("invalid OpenAI API key, check your API key in settings")
	ErrEmptyCompletion     = errors.New("no response from completion API")
	ErrInvalidMode         = errors.New("mode must be improve or generate")
	ErrMissingExistingText = errors.New("existing text is required for improve mode")
	ErrMissingIdeaText     = errors.New("idea text is required for generate mode")
)

const systemPrompt = `You are an expert prompt engineer specializing in creating high-quality, detailed, and comprehensive prompts for AI models. Your task is to craft thorough, well-structured, and production-ready prompts that are clear, specific, and actionable. Include relevant context, constraints, and examples when appropriate.`

// GenerationService proxies a single completion call using the caller's
// own API key. The decoded key goes straight into the Authorization header
// and nowhere else: it is never persisted or logged. No retries; failures
// surface to the caller with enough detail to route corrective action.
type GenerationService struct {
	users    repository.UserRepository
	settings *SettingsService
	client   *http.Client
	apiURL   string
	model    string
}

func NewGenerationService(users repository.UserRepository, settings *SettingsService, cfg *config.Config) *GenerationService {
	return &GenerationService{
		users:    users,
		settings: settings,
		client:   &http.Client{Timeout: cfg.AITimeout},
		apiURL:   cfg.OpenAIAPIURL,
		model:    cfg.OpenAIModel,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate produces new prompt text for the caller. ModeImprove rewrites
// existingText; ModeGenerate expands ideaText into a full prompt.
func (s *GenerationService) Generate(ctx context.Context, externalID string, mode GenerateMode, category, existingText, ideaText string) (string, error) {
	userPrompt, err := buildUserPrompt(mode, category, existingText, ideaText)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByExternalID(ctx, externalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve user: %w", err)
	}

	apiKey, err := s.settings.GetAPIKeyPlaintext(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if apiKey == "" {
		return "", ErrAPIKeyMissing
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrAPIKeyInvalid
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr chatResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("completion API returned %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("completion API returned %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func buildUserPrompt(mode GenerateMode, category, existingText, ideaText string) (string, error) {
	switch mode {
	case ModeImprove:
		if existingText == "" {
			return "", ErrMissingExistingText
		}
		return fmt.Sprintf("Please improve and enhance this %s prompt to make it more effective, detailed, and comprehensive:\n\n%s\n\nProvide a thoroughly improved version with better structure, clarity, and detail. Include any relevant context or examples that would make the prompt more effective. Provide only the improved prompt text, without any explanation or preamble.", category, existingText), nil
	case ModeGenerate:
		if ideaText == "" {
			return "", ErrMissingIdeaText
		}
		return fmt.Sprintf("Create a comprehensive, detailed, and well-structured %s prompt based on this idea:\n\n%s\n\nGenerate a thorough prompt that includes clear instructions, relevant context, specific requirements, and examples where applicable. The prompt should be production-ready and highly effective for AI models. Provide only the generated prompt text, without any explanation or preamble.", category, ideaText), nil
	default:
		return "", ErrInvalidMode
	}
}
