package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/rohits-web03/ideaorbit/internal/config"
	"github.com/rohits-web03/ideaorbit/internal/models"
	"github.com/rohits-web03/ideaorbit/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := repositories.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedIdeaWithLikes(t *testing.T, db *gorm.DB, likeCount int) models.Idea {
	t.Helper()
	creator := models.User{Email: fmt.Sprintf("creator-%s@example.com", uuid.NewString()), Password: "x", FirstName: "C", LastName: "R"}
	require.NoError(t, db.Create(&creator).Error)

	idea := models.Idea{Title: "Solar kettle", Description: "A kettle that boils with sunlight only", CreatorID: creator.ID}
	require.NoError(t, db.Create(&idea).Error)

	for i := 0; i < likeCount; i++ {
		liker := models.User{Email: fmt.Sprintf("liker-%d-%s@example.com", i, uuid.NewString()), Password: "x", FirstName: "L", LastName: "K"}
		require.NoError(t, db.Create(&liker).Error)
		require.NoError(t, db.Create(&models.Like{UserID: liker.ID, IdeaID: idea.ID}).Error)
	}
	return idea
}

func TestCounts_DatabaseFallbackWithoutCache(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	idea := seedIdeaWithLikes(t, db, 2)

	counts := repositories.NewCounts(db, nil)

	likes, err := counts.Likes(ctx, idea.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), likes)

	connections, err := counts.Connections(ctx, idea.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), connections)

	// nil cache invalidate is a no-op
	counts.Invalidate(ctx, idea.ID)
}

func TestCounts_CachePopulatedOnMiss(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	idea := seedIdeaWithLikes(t, db, 3)

	mr := miniredis.RunT(t)
	cache := repositories.NewCountCache(config.RedisConfig{Addr: mr.Addr()})
	counts := repositories.NewCounts(db, cache)

	likes, err := counts.Likes(ctx, idea.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), likes)

	// the DB is now stale relative to the cache on purpose
	require.NoError(t, db.Where("idea_id = ?", idea.ID).Delete(&models.Like{}).Error)

	likes, err = counts.Likes(ctx, idea.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), likes, "expected cached value before invalidation")
}

func TestCounts_InvalidateDropsBothKeys(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	idea := seedIdeaWithLikes(t, db, 1)

	mr := miniredis.RunT(t)
	cache := repositories.NewCountCache(config.RedisConfig{Addr: mr.Addr()})
	counts := repositories.NewCounts(db, cache)

	likes, err := counts.Likes(ctx, idea.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	require.NoError(t, db.Where("idea_id = ?", idea.ID).Delete(&models.Like{}).Error)
	counts.Invalidate(ctx, idea.ID)

	likes, err = counts.Likes(ctx, idea.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), likes)
}

func TestCounts_SurvivesCacheOutage(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	idea := seedIdeaWithLikes(t, db, 2)

	mr := miniredis.RunT(t)
	cache := repositories.NewCountCache(config.RedisConfig{Addr: mr.Addr()})
	counts := repositories.NewCounts(db, cache)

	mr.Close()

	likes, err := counts.Likes(ctx, idea.ID)
	assert.NoError(t, err, "cache outage must not fail the read")
	assert.Equal(t, int64(2), likes)
}
