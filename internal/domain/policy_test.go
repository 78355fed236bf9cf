package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirstBookableTime(t *testing.T) {
	policy := DefaultBookingPolicy()
	now := time.Date(2026, 9, 4, 21, 0, 0, 0, time.UTC)

	// Клиент: сейчас + буфер + lead time
	assert.Equal(t, now.Add(40*time.Minute), policy.FirstBookableTime(now, false))

	// Специалист может смотреть немного в прошлое
	assert.Equal(t, now.Add(-20*time.Minute), policy.FirstBookableTime(now, true))
}

func TestCommitDeadline(t *testing.T) {
	policy := DefaultBookingPolicy()
	now := time.Date(2026, 9, 4, 21, 0, 0, 0, time.UTC)

	// На финализации буфер не добавляется: слот, показанный с запасом,
	// не должен протухнуть, пока клиент подтверждает
	assert.Equal(t, now.Add(30*time.Minute), policy.CommitDeadline(now, false))
	assert.Equal(t, now.Add(-20*time.Minute), policy.CommitDeadline(now, true))
}

func TestBookingOverlaps(t *testing.T) {
	b := &Booking{StartSlot: 5, LengthSlots: 3}

	assert.True(t, b.CoversSlot(5))
	assert.True(t, b.CoversSlot(7))
	assert.False(t, b.CoversSlot(8))

	assert.True(t, b.OverlapsSlots(7, 10))
	assert.True(t, b.OverlapsSlots(0, 6))
	assert.False(t, b.OverlapsSlots(8, 12))
	assert.False(t, b.OverlapsSlots(0, 5))
}
