package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

// Вечеринка пятницы: с 20:00 до 06:00 субботы, 30 слотов по 20 минут
func fridayParty() *domain.Party {
	return &domain.Party{
		Key:           "friday",
		Title:         "Friday Night",
		StartsAt:      time.Date(2026, 9, 4, 20, 0, 0, 0, time.UTC),
		EndsAt:        time.Date(2026, 9, 5, 6, 0, 0, 0, time.UTC),
		TableCapacity: 1,
	}
}

func TestSlotTime(t *testing.T) {
	party := fridayParty()

	assert.Equal(t, party.StartsAt, SlotTime(party, 0))
	assert.Equal(t, time.Date(2026, 9, 4, 21, 0, 0, 0, time.UTC), SlotTime(party, 3))
	// Слоты уходят за полночь
	assert.Equal(t, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), SlotTime(party, 12))
}

func TestSessionEnd(t *testing.T) {
	party := fridayParty()

	// Сеанс на 3 слота с начала вечеринки: 20:00 - 21:00 минус зазор
	assert.Equal(t, time.Date(2026, 9, 4, 20, 55, 0, 0, time.UTC), SessionEnd(party, 0, 3))
	// Однослотовый сеанс: 20 минут минус зазор = 15 минут полезного времени
	assert.Equal(t, time.Date(2026, 9, 4, 20, 15, 0, 0, time.UTC), SessionEnd(party, 0, 1))
}

func TestSlotIndexFor(t *testing.T) {
	party := fridayParty()

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"начало вечеринки", party.StartsAt, 0},
		{"внутри первого слота", party.StartsAt.Add(19 * time.Minute), 0},
		{"граница второго слота", party.StartsAt.Add(20 * time.Minute), 1},
		{"до начала вечеринки", party.StartsAt.Add(-1 * time.Minute), -1},
		{"полминуты до начала", party.StartsAt.Add(-30 * time.Second), -1},
		{"час до начала", party.StartsAt.Add(-time.Hour), -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SlotIndexFor(party, tt.at))
		})
	}
}

func TestSlotIndexCeil(t *testing.T) {
	party := fridayParty()

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"точно на границе", party.StartsAt, 0},
		{"минута после границы", party.StartsAt.Add(1 * time.Minute), 1},
		{"полминуты после границы", party.StartsAt.Add(30 * time.Second), 1},
		{"чуть раньше начала", party.StartsAt.Add(-19 * time.Minute), 0},
		{"ровно слот до начала", party.StartsAt.Add(-20 * time.Minute), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SlotIndexCeil(party, tt.at))
		})
	}
}

func TestSlotCount(t *testing.T) {
	party := fridayParty()

	// 10 часов по 3 слота в час
	assert.Equal(t, 30, SlotCount(party))
}
