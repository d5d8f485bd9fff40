package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
)

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	s := &Session{ID: "s1", Token: "t", ExpiresAt: now.Add(time.Minute), Principal: &entity.Principal{ID: "u"}}
	s.Registration("radiologist").Registered(entity.Registration{UserID: "U", Secret: "S"})
	require.NoError(t, store.Save(context.Background(), s))

	got, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "u", got.Principal.ID)
	assert.Equal(t, screen.StepAwait2FA, got.Registration("radiologist").Step)

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = store.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	n, err := store.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "console:session:abc", redisKey("abc"))
}
