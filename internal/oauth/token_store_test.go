package oauth

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_SetAndGet(t *testing.T) {
	ts := NewTokenStore()

	record := TokenRecord{
		AccessToken:  "access-token-abc",
		RefreshToken: "refresh-token-xyz",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	ts.Set("user-1", record)

	retrieved, ok := ts.Get("user-1")
	require.True(t, ok)
	assert.Equal(t, record, retrieved)
}

func TestTokenStore_GetNonExistent(t *testing.T) {
	ts := NewTokenStore()

	retrieved, ok := ts.Get("non-existent")
	assert.False(t, ok)
	assert.Equal(t, TokenRecord{}, retrieved)
}

func TestTokenStore_SetReplaces(t *testing.T) {
	ts := NewTokenStore()

	ts.Set("user-1", TokenRecord{AccessToken: "AT1", RefreshToken: "RT1"})
	ts.Set("user-1", TokenRecord{AccessToken: "AT2"})

	retrieved, ok := ts.Get("user-1")
	require.True(t, ok)
	assert.Equal(t, "AT2", retrieved.AccessToken)
	assert.Empty(t, retrieved.RefreshToken, "Set replaces the whole record")
	assert.Equal(t, 1, ts.Count())
}

func TestTokenStore_UsersAreIsolated(t *testing.T) {
	ts := NewTokenStore()

	ts.Set("alice", TokenRecord{AccessToken: "alice-token"})
	ts.Set("bob", TokenRecord{AccessToken: "bob-token"})

	alice, _ := ts.Get("alice")
	bob, _ := ts.Get("bob")
	assert.Equal(t, "alice-token", alice.AccessToken)
	assert.Equal(t, "bob-token", bob.AccessToken)
	assert.Equal(t, 2, ts.Count())
}

func TestTokenStore_GetReturnsCopy(t *testing.T) {
	ts := NewTokenStore()
	ts.Set("user-1", TokenRecord{AccessToken: "original"})

	retrieved, _ := ts.Get("user-1")
	retrieved.AccessToken = "mutated"

	again, _ := ts.Get("user-1")
	assert.Equal(t, "original", again.AccessToken)
}

func TestTokenStore_Concurrency(t *testing.T) {
	ts := NewTokenStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i%10)
			ts.Set(userID, TokenRecord{AccessToken: fmt.Sprintf("token-%d", i)})
			_, _ = ts.Get(userID)
			_ = ts.Count()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, ts.Count())
}
