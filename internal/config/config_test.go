package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Queue.MaxBookingsPerSlot)
	assert.False(t, cfg.Queue.UrgentFlagForcesCriticalPath)
	assert.False(t, cfg.Queue.UrgentKeywordEnabled)
	assert.True(t, cfg.Queue.RequireBookingBeforeQueueing)
	assert.Nil(t, cfg.Queue.SlotLabels)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:4000", cfg.App.Addr())
}

func TestLoadQueueOverrides(t *testing.T) {
	t.Setenv("QUEUE_MAX_BOOKINGS_PER_SLOT", "2")
	t.Setenv("QUEUE_URGENT_FLAG_FORCES_CRITICAL", "true")
	t.Setenv("QUEUE_URGENT_KEYWORD", "1")
	t.Setenv("QUEUE_REQUIRE_BOOKING", "false")
	t.Setenv("QUEUE_SLOTS", " 08:00–09:00 , ,09:00–10:00")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Queue.MaxBookingsPerSlot)
	assert.True(t, cfg.Queue.UrgentFlagForcesCriticalPath)
	assert.True(t, cfg.Queue.UrgentKeywordEnabled)
	assert.False(t, cfg.Queue.RequireBookingBeforeQueueing)
	assert.Equal(t, []string{"08:00–09:00", "09:00–10:00"}, cfg.Queue.SlotLabels)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("QUEUE_MAX_BOOKINGS_PER_SLOT", "0")
	t.Setenv("QUEUE_REQUIRE_BOOKING", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Queue.MaxBookingsPerSlot)
	assert.True(t, cfg.Queue.RequireBookingBeforeQueueing)
}

func TestLoadRejectsEmptySlotList(t *testing.T) {
	t.Setenv("QUEUE_SLOTS", " , ")
	_, err := Load()
	assert.Error(t, err)
}

func TestRequestTimeout(t *testing.T) {
	assert.Zero(t, AppConfig{}.RequestTimeout())
	assert.Equal(t, "30s", AppConfig{RequestTimeoutSeconds: 30}.RequestTimeout().String())
}
