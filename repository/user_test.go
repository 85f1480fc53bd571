package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"disasterreport/model"
	"disasterreport/repository"
)

func setupGormRepo(t *testing.T) *repository.GormUserRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	repo, err := repository.NewGormUserRepository(db)
	require.NoError(t, err)
	return repo
}

func TestUserRepositories(t *testing.T) {
	repos := map[string]func(t *testing.T) repository.UserRepository{
		"memory": func(t *testing.T) repository.UserRepository { return repository.NewMemoryUserRepository() },
		"gorm":   func(t *testing.T) repository.UserRepository { return setupGormRepo(t) },
	}

	for name, newRepo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			alice := &model.User{MobileNumber: "9000000001", Name: "Alice", Email: "alice@example.com", PasswordHash: "x", MpinHash: "y"}
			bob := &model.User{MobileNumber: "9000000002", Name: "Bob", PasswordHash: "x", MpinHash: "y"}
			require.NoError(t, repo.Create(ctx, alice))
			require.NoError(t, repo.Create(ctx, bob))

			dup := &model.User{MobileNumber: "9000000001", Name: "Mallory", PasswordHash: "x", MpinHash: "y"}
			assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrConflict)

			got, err := repo.FindByMobile(ctx, "9000000001")
			require.NoError(t, err)
			assert.Equal(t, "Alice", got.Name)
			assert.Equal(t, "alice@example.com", got.Email)
			assert.Zero(t, got.WalletAmount)

			_, err = repo.FindByMobile(ctx, "0000000000")
			assert.ErrorIs(t, err, repository.ErrNotFound)

			users, err := repo.List(ctx)
			require.NoError(t, err)
			var names []string
			for _, u := range users {
				names = append(names, u.Name)
			}
			assert.ElementsMatch(t, []string{"Alice", "Bob"}, names)
		})
	}
}

func TestMemoryUserRepositoryListKeepsSignupOrder(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUserRepository()
	for _, m := range []string{"3", "1", "2"} {
		require.NoError(t, repo.Create(ctx, &model.User{MobileNumber: m, Name: "user" + m}))
	}
	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "3", users[0].MobileNumber)
	assert.Equal(t, "1", users[1].MobileNumber)
	assert.Equal(t, "2", users[2].MobileNumber)
}
