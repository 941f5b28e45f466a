package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	today := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	_, ok, err := c.Get(ctx, 1, 2, today)
	require.NoError(t, err)
	assert.False(t, ok)

	slots := []domain.AvailabilitySlot{{TrainerID: 1, DayOfWeek: 2, Start: "09:00", End: "17:00", IsAvailable: true}}
	require.NoError(t, c.Set(ctx, 1, 2, today, slots))

	got, ok, err := c.Get(ctx, 1, 2, today)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, slots, got)

	// Изменение возвращённого среза не портит кэш
	got[0].IsAvailable = false
	again, _, _ := c.Get(ctx, 1, 2, today)
	assert.True(t, again[0].IsAvailable)
}

func TestMemoryCache_DropsPreviousDay(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	require.NoError(t, c.Set(ctx, 1, 2, monday, nil))
	require.NoError(t, c.Set(ctx, 1, 3, monday, nil))
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Set(ctx, 1, 2, tuesday, nil))
	assert.Equal(t, 1, c.Len())

	_, ok, _ := c.Get(ctx, 1, 3, monday)
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	today := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "schedule:availability:7:2:2024-01-02", key(7, 2, today))
}
