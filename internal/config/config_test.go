package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ADDR", "REMOTE_STORE_URL", "REMOTE_STORE_KEY", "SYNC_INTERVAL", "UPLOAD_MAX_BYTES", "ACTIVITY_LOG_LIMIT"} {
		t.Setenv(k, "")
	}

	c := Load()
	assert.Equal(t, ":8080", c.Addr)
	assert.False(t, c.RemoteConfigured())
	assert.Equal(t, time.Minute, c.SyncInterval)
	assert.Equal(t, 30*time.Second, c.LeaderboardTTL)
	assert.Equal(t, int64(5<<20), c.UploadMaxBytes)
	assert.Equal(t, 500, c.ActivityLogLimit)
	assert.Equal(t, "password123", c.DefaultPassword)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("SYNC_INTERVAL", "15s")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("REMOTE_TIMEOUT", "not-a-duration")

	c := Load()
	assert.Equal(t, ":9090", c.Addr)
	assert.Equal(t, 15*time.Second, c.SyncInterval)
	assert.Equal(t, int64(1024), c.UploadMaxBytes)
	assert.Equal(t, 3*time.Second, c.RemoteTimeout, "bad values fall back")
}

func TestRemoteConfiguredNeedsBothValues(t *testing.T) {
	assert.False(t, Config{RemoteStoreURL: "postgres://db"}.RemoteConfigured())
	assert.False(t, Config{RemoteStoreKey: "key"}.RemoteConfigured())
	assert.True(t, Config{RemoteStoreURL: "postgres://db", RemoteStoreKey: "key"}.RemoteConfigured())
}
