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
)

func TestUpsertByExternalIDCreatesNewUser(t *testing.T) {
	users := new(MockUserRepository)
	service := NewUserService(users)
	ctx := context.Background()

	users.On("FindByExternalID", ctx, "user_2abc").Return(nil, gorm.ErrRecordNotFound).Once()
	users.On("CreateWithSettings", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.ExternalID == "user_2abc" &&
			u.Email == "jane@example.com" &&
			u.Name == "Jane Doe" &&
			u.ID != uuid.Nil
	})).Return(nil).Once()

	id, err := service.UpsertByExternalID(ctx, "user_2abc", "jane@example.com", "Jane Doe", nil)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	users.AssertExpectations(t)
}

func TestUpsertByExternalIDUpdatesExistingUser(t *testing.T) {
	users := new(MockUserRepository)
	service := NewUserService(users)
	ctx := context.Background()

	existing := &models.User{
		ID:         uuid.New(),
		ExternalID: "user_2abc",
		Email:      "old@example.com",
		Name:       "Old Name",
	}
	users.On("FindByExternalID", ctx, "user_2abc").Return(existing, nil).Twice()
	users.On("Update", ctx, existing).Return(nil).Twice()

	id, err := service.UpsertByExternalID(ctx, "user_2abc", "new@example.com", "New Name", nil)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, id)
	assert.Equal(t, "new@example.com", existing.Email)
	assert.Equal(t, "New Name", existing.Name)

	// Repeating the same event keeps the same internal id and never creates.
	again, err := service.UpsertByExternalID(ctx, "user_2abc", "new@example.com", "New Name", nil)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	users.AssertNotCalled(t, "CreateWithSettings", mock.Anything, mock.Anything)
	users.AssertExpectations(t)
}

func TestFindByExternalIDAbsentIsNotAnError(t *testing.T) {
	users := new(MockUserRepository)
	service := NewUserService(users)
	ctx := context.Background()

	users.On("FindByExternalID", ctx, "user_gone").Return(nil, gorm.ErrRecordNotFound).Once()

	user, err := service.FindByExternalID(ctx, "user_gone")
	require.NoError(t, err)
	assert.Nil(t, user)
	users.AssertExpectations(t)
}

func TestDeleteByExternalIDCascades(t *testing.T) {
	users := new(MockUserRepository)
	service := NewUserService(users)
	ctx := context.Background()

	user := &models.User{ID: uuid.New(), ExternalID: "user_2abc"}
	users.On("FindByExternalID", ctx, "user_2abc").Return(user, nil).Once()
	users.On("DeleteCascade", ctx, user).Return(nil).Once()

	require.NoError(t, service.DeleteByExternalID(ctx, "user_2abc"))
	users.AssertExpectations(t)
}

func TestDeleteByExternalIDUnknownIsNoOp(t *testing.T) {
	users := new(MockUserRepository)
	service := NewUserService(users)
	ctx := context.Background()

	users.On("FindByExternalID", ctx, "user_gone").Return(nil, gorm.ErrRecordNotFound).Once()

	require.NoError(t, service.DeleteByExternalID(ctx, "user_gone"))
	users.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything)
	users.AssertExpectations(t)
}
