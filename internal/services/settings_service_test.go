package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"promptvault/internal/models"
	"promptvault/internal/secrets"
)

func TestSetAPIKeyStoresEncodedValue(t *testing.T) {
	repo := new(MockSettingsRepository)
	codec := secrets.NewCodec("")
	service := NewSettingsService(repo, codec)
	ctx := context.Background()
	userID := uuid.New()

	settings := &models.UserSettings{ID: uuid.New(), UserID: userID}
	repo.On("FindByUserID", ctx, userID).Return(settings, nil).Once()
	repo.On("Save", ctx, settings).Return(nil).Once()

	require.NoError(t, service.SetAPIKey(ctx, userID, "sk-abc123"))

	require.NotNil(t, settings.OpenAIAPIKey)
	assert.NotEqual(t, "sk-abc123", *settings.OpenAIAPIKey)
	assert.NotContains(t, *settings.OpenAIAPIKey, "sk-abc123")
	repo.AssertExpectations(t)
}

// A missing settings row (lost to a partial sync) is recreated on write.
func TestSetAPIKeyRecreatesMissingRow(t *testing.T) {
	repo := new(MockSettingsRepository)
	service := NewSettingsService(repo, secrets.NewCodec(""))
	ctx := context.Background()
	userID := uuid.New()

	repo.On("FindByUserID", ctx, userID).Return(nil, gorm.ErrRecordNotFound).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(s *models.UserSettings) bool {
		return s.UserID == userID && s.OpenAIAPIKey != nil && *s.OpenAIAPIKey != ""
	})).Return(nil).Once()

	require.NoError(t, service.SetAPIKey(ctx, userID, "sk-abc123"))
	repo.AssertExpectations(t)
}

func TestAPIKeyRoundTrip(t *testing.T) {
	repo := new(MockSettingsRepository)
	codec := secrets.NewCodec("")
	service := NewSettingsService(repo, codec)
	ctx := context.Background()
	userID := uuid.New()

	encoded := codec.Encode("sk-abc123")
	settings := &models.UserSettings{ID: uuid.New(), UserID: userID, OpenAIAPIKey: &encoded}
	repo.On("FindByUserID", ctx, userID).Return(settings, nil)

	has, err := service.HasAPIKey(ctx, userID)
	require.NoError(t, err)
	assert.True(t, has)

	plaintext, err := service.GetAPIKeyPlaintext(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "sk-abc123", plaintext)
}

func TestHasAPIKeyWithoutRowOrKey(t *testing.T) {
	repo := new(MockSettingsRepository)
	service := NewSettingsService(repo, secrets.NewCodec(""))
	ctx := context.Background()

	noRow := uuid.New()
	repo.On("FindByUserID", ctx, noRow).Return(nil, gorm.ErrRecordNotFound).Once()
	has, err := service.HasAPIKey(ctx, noRow)
	require.NoError(t, err)
	assert.False(t, has)

	emptyKey := uuid.New()
	repo.On("FindByUserID", ctx, emptyKey).Return(&models.UserSettings{ID: uuid.New(), UserID: emptyKey}, nil).Once()
	has, err = service.HasAPIKey(ctx, emptyKey)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestClearAPIKeyKeepsRow(t *testing.T) {
	repo := new(MockSettingsRepository)
	codec := secrets.NewCodec("")
	service := NewSettingsService(repo, codec)
	ctx := context.Background()
	userID := uuid.New()

	encoded := codec.Encode("sk-abc123")
	settings := &models.UserSettings{ID: uuid.New(), UserID: userID, OpenAIAPIKey: &encoded}
	repo.On("FindByUserID", ctx, userID).Return(settings, nil)
	repo.On("Save", ctx, settings).Return(nil).Once()

	require.NoError(t, service.ClearAPIKey(ctx, userID))
	assert.Nil(t, settings.OpenAIAPIKey)

	has, err := service.HasAPIKey(ctx, userID)
	require.NoError(t, err)
	assert.False(t, has)
	repo.AssertExpectations(t)
}

func TestClearAPIKeyWithoutRowIsNoOp(t *testing.T) {
	repo := new(MockSettingsRepository)
	service := NewSettingsService(repo, secrets.NewCodec(""))
	ctx := context.Background()
	userID := uuid.New()

	repo.On("FindByUserID", ctx, userID).Return(nil, gorm.ErrRecordNotFound).Once()

	require.NoError(t, service.ClearAPIKey(ctx, userID))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
