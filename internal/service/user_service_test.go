package service_test

import (
	"context"
	"testing"

	"github.com/dom/account-service/internal/domain"
	"github.com/dom/account-service/internal/repository/postgres"
	"github.com/dom/account-service/internal/service"
	"github.com/dom/account-service/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserService_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	userService := service.NewUserService(repos.User)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.UpdateUserInput
		check   func(*testing.T, *domain.User)
		wantErr error
	}{
		{
			name: "update all fields",
			input: service.UpdateUserInput{
				FirstName: strPtr("Grace"),
				LastName:  strPtr("Hopper"),
				Email:     strPtr("grace@example.com"),
			},
			check: func(t *testing.T, user *domain.User) {
				assert.Equal(t, "Grace", user.FirstName)
				assert.Equal(t, "Hopper", user.LastName)
				assert.Equal(t, "grace@example.com", user.Email)
			},
		},
		{
			name: "omitted fields are left unchanged",
			input: service.UpdateUserInput{
				FirstName: strPtr("OnlyFirst"),
			},
			check: func(t *testing.T, user *domain.User) {
				assert.Equal(t, "OnlyFirst", user.FirstName)
				assert.Equal(t, "User", user.LastName)
			},
		},
		{
			name: "email is lowercased",
			input: service.UpdateUserInput{
				Email: strPtr("MixedCase@Example.COM"),
			},
			check: func(t *testing.T, user *domain.User) {
				assert.Equal(t, "mixedcase@example.com", user.Email)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)
			user, _ := testutil.NewUserBuilder().WithName("Test", "User").Build(t, testDB.DB)

			updated, err := userService.Update(ctx, user.ID, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, updated)
		})
	}
}

func TestUserService_UpdateConflictingEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	userService := service.NewUserService(repos.User)
	ctx := context.Background()

	testutil.NewUserBuilder().WithEmail("first@example.com").Build(t, testDB.DB)
	second, _ := testutil.NewUserBuilder().WithEmail("second@example.com").Build(t, testDB.DB)

	_, err := userService.Update(ctx, second.ID, service.UpdateUserInput{
		Email: strPtr("first@example.com"),
	})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestUserService_GetAndDelete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	userService := service.NewUserService(repos.User)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	got, err := userService.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = userService.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, userService.Delete(ctx, user.ID))
	assert.ErrorIs(t, userService.Delete(ctx, user.ID), domain.ErrUserNotFound)

	_, err = userService.Get(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	userService := service.NewUserService(repos.User)
	ctx := context.Background()

	users, err := userService.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.NewUserBuilder().Build(t, testDB.DB)

	users, err = userService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
