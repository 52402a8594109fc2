package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/brainbattle/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))
	return db
}

func TestWaitlistRepo_SaveAndList(t *testing.T) {
	repo := NewWaitlistRepo(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, &domain.WaitlistSignup{Email: "B@Example.com ", Mission: "maths-mission", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, repo.Save(ctx, &domain.WaitlistSignup{Email: "a@example.com", Mission: "focus-calm", CreatedAt: base}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a@example.com", list[0].Email)
	assert.Equal(t, "b@example.com", list[1].Email)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestWaitlistRepo_DuplicateIsNoop(t *testing.T) {
	repo := NewWaitlistRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.WaitlistSignup{Email: "a@example.com", Mission: "study-hub"}))
	require.NoError(t, repo.Save(ctx, &domain.WaitlistSignup{Email: "A@example.com", Mission: "study-hub"}))
	require.NoError(t, repo.Save(ctx, &domain.WaitlistSignup{Email: "a@example.com", Mission: "maths-mission"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
