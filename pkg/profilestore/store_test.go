package profilestore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"accounthub/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func sampleProfile(userID, first string) models.Profile {
	return models.Profile{
		UserID:         userID,
		FirstName:      first,
		LastName:       "Doe",
		Email:          first + "@example.com",
		Phone:          "+1-555-0100",
		Location:       "Berlin",
		Bio:            "Writes backend services.",
		Title:          "Engineer",
		Organization:   "Acme",
		Specialization: "Payments",
		Experience:     "8 years",
		Education:      "BSc Computer Science",
		Certifications: []string{"CKA", "AWS SAA"},
		ProfileImage:   "avatars/" + userID + ".jpg",
		SocialLinks:    models.SocialLinks{GitHub: "https://github.com/" + first, LinkedIn: "https://linkedin.com/in/" + first},
		ShowEmail:      true,
		ShowLocation:   true,
	}
}

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProfileRow{}))
	return db
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return map[string]Store{
		"memory":   NewMemoryStore(),
		"postgres": NewGormStore(newSQLiteDB(t)),
		"redis":    NewRedisStore(rdb),
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "u-missing")
			assert.ErrorIs(t, err, ErrNotFound)

			r1 := sampleProfile("u-1", "jane")
			require.NoError(t, store.Set(ctx, "u-1", r1))
			got, err := store.Get(ctx, "u-1")
			require.NoError(t, err)
			assert.Equal(t, r1, got)

			r2 := sampleProfile("u-1", "john")
			r2.Certifications = nil
			r2.ShowEmail = false
			require.NoError(t, store.Set(ctx, "u-1", r2))
			got, err = store.Get(ctx, "u-1")
			require.NoError(t, err)
			assert.Equal(t, r2, got)

			_, err = store.Get(ctx, "u-2")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreRejectsEmptyUserID(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, store.Set(ctx, "  ", models.Profile{}), ErrInvalidUserID)
			_, err := store.Get(ctx, "")
			assert.ErrorIs(t, err, ErrInvalidUserID)
		})
	}
}

func TestSetStampsUserID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "u-9", models.Profile{FirstName: "Ann"}))
	got, err := store.Get(ctx, "u-9")
	require.NoError(t, err)
	assert.Equal(t, "u-9", got.UserID)
}

func TestSetKeysOnTrimmedUserID(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			rec := sampleProfile("someone-else", "ann")
			require.NoError(t, store.Set(ctx, " u-5 ", rec))

			got, err := store.Get(ctx, "u-5")
			require.NoError(t, err)
			want := rec.Clone()
			want.UserID = "u-5"
			assert.Equal(t, want, got)

			padded, err := store.Get(ctx, "\tu-5\n")
			require.NoError(t, err)
			assert.Equal(t, want, padded)

			_, err = store.Get(ctx, "someone-else")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	p := sampleProfile("u-1", "jane")
	require.NoError(t, store.Set(ctx, "u-1", p))

	p.Certifications[0] = "mutated"
	got, err := store.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "CKA", got.Certifications[0])

	got.Certifications[1] = "mutated"
	again, err := store.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "AWS SAA", again.Certifications[1])
}

func TestMemoryStoreConcurrentWriters(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Set(ctx, "shared", sampleProfile("shared", fmt.Sprintf("w%d", i)))
			_, _ = store.Get(ctx, "shared")
		}(i)
	}
	wg.Wait()
	got, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, "shared", got.UserID)
}

func TestPublicViewHonoursVisibility(t *testing.T) {
	p := sampleProfile("u-1", "jane")
	p.ShowPhone = false
	pub := p.Public()
	assert.Equal(t, p.Email, pub.Email)
	assert.Equal(t, p.Location, pub.Location)
	assert.Empty(t, pub.Phone)
	assert.Equal(t, "+1-555-0100", p.Phone)
}
