package redis

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salon16/booking/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("LOG_DIR", os.TempDir())
	logger.InitLoggers()
	os.Exit(m.Run())
}

func TestGetRedisClientUnconfiguredReturnsStickyError(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	client, err := GetRedisClient(context.Background())
	require.Error(t, err)
	require.Nil(t, client)
	require.Contains(t, err.Error(), "not initialized")

	// The first outcome is sticky across calls.
	_, again := GetRedisClient(context.Background())
	require.Error(t, again)
	require.Equal(t, err.Error(), again.Error())
}

func TestCloseRedisWithoutClientIsNoOp(t *testing.T) {
	require.NotPanics(t, CloseRedis)
}
