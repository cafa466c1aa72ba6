package redis

import (
	"testing"
	"time"

	"cod-fraud-system/config"
	"cod-fraud-system/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := &config.Config{
		Redis: config.RedisConfig{
			Host: mr.Host(),
			Port: mr.Port(),
		},
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestNewClient_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addrHost, addrPort := mr.Host(), mr.Port()
	mr.Close()

	_, err := NewClient(&config.Config{Redis: config.RedisConfig{Host: addrHost, Port: addrPort}})
	assert.Error(t, err)
}

func TestSeenIPStore_ContainsDoesNotInsert(t *testing.T) {
	client, mr := setupTestRedis(t)
	seen := client.SeenIPs("s1")
	key := seen.(*SeenIPStore).key

	ok, err := seen.Contains("1.1.1.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists(key))

	require.NoError(t, seen.Add("1.1.1.1"))

	ok, err = seen.Contains("1.1.1.1")
	require.NoError(t, err)
	assert.True(t, ok)

	members, err := mr.Members(key)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.1.1.1"}, members)
	assert.Equal(t, 24*time.Hour, mr.TTL(key))
}

func TestSeenIPStore_IsolatedPerSession(t *testing.T) {
	client, _ := setupTestRedis(t)

	require.NoError(t, client.SeenIPs("a").Add("2.2.2.2"))

	ok, err := client.SeenIPs("b").Contains("2.2.2.2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSeenIPStore_FreshAfterRestart(t *testing.T) {
	client, mr := setupTestRedis(t)
	require.NoError(t, client.SeenIPs("stream").Add("5.5.5.5"))

	// Новый клиент на том же Redis, как после перезапуска worker
	cfg := &config.Config{Redis: config.RedisConfig{Host: mr.Host(), Port: mr.Port()}}
	restarted, err := NewClient(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { restarted.Close() })

	ok, err := restarted.SeenIPs("stream").Contains("5.5.5.5")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = client.SeenIPs("stream").Contains("5.5.5.5")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_SaveAndGetVerdict(t *testing.T) {
	client, mr := setupTestRedis(t)

	verdict := &models.Verdict{
		OrderID:     7,
		Email:       "abcde@gmail.com",
		RiskPercent: 12.5,
		Flagged:     true,
		Alerts:      []string{"Repeated Ip"},
		Flags:       map[string]bool{"repeated_ip": true},
	}
	require.NoError(t, client.SaveVerdict("s1", verdict))
	assert.Equal(t, time.Hour, mr.TTL("session:s1:verdict:7"))

	got, err := client.GetVerdict("s1", 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, verdict.RiskPercent, got.RiskPercent)
	assert.Equal(t, verdict.Alerts, got.Alerts)

	missing, err := client.GetVerdict("s1", 8)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClient_VerdictStats(t *testing.T) {
	client, _ := setupTestRedis(t)

	processed, flagged, err := client.GetVerdictStats()
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Zero(t, flagged)

	require.NoError(t, client.IncrementVerdictStats(true))
	require.NoError(t, client.IncrementVerdictStats(false))
	require.NoError(t, client.IncrementVerdictStats(true))

	processed, flagged, err = client.GetVerdictStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), processed)
	assert.Equal(t, int64(2), flagged)
}

func TestClient_ClearSessionData(t *testing.T) {
	client, mr := setupTestRedis(t)

	require.NoError(t, client.SeenIPs("s1").Add("3.3.3.3"))
	require.NoError(t, client.SaveVerdict("s1", &models.Verdict{OrderID: 1}))
	require.NoError(t, client.IncrementVerdictStats(false))
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, client.ClearSessionData())

	assert.False(t, mr.Exists("session:s1:verdict:1"))
	assert.False(t, mr.Exists("verdict_stats:processed"))
	assert.True(t, mr.Exists("unrelated"))

	// Множество IP живого сеанса переживает очистку
	ok, err := client.SeenIPs("s1").Contains("3.3.3.3")
	require.NoError(t, err)
	assert.True(t, ok)
}
