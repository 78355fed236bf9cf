package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

func window(partyKey string, start, end time.Time) domain.WorkWindow {
	return domain.WorkWindow{SpecialistID: 1, PartyKey: partyKey, StartsAt: start, EndsAt: end}
}

func slotSet(slots ...int) map[int]struct{} {
	set := make(map[int]struct{}, len(slots))
	for _, s := range slots {
		set[s] = struct{}{}
	}
	return set
}

func TestWorkingSlots(t *testing.T) {
	party := fridayParty()
	tolerance := 2 * time.Hour

	t.Run("окно внутри вечеринки", func(t *testing.T) {
		// 21:00 - 23:00: слоты 3..8
		windows := []domain.WorkWindow{
			window("friday", party.StartsAt.Add(time.Hour), party.StartsAt.Add(3*time.Hour)),
		}

		got := WorkingSlots(party, windows, tolerance)
		assert.Equal(t, slotSet(3, 4, 5, 6, 7, 8), got)
	})

	t.Run("раннее окно в пределах допуска обрезается нулевым слотом", func(t *testing.T) {
		// 19:00 - 22:00: начинается за час до вечеринки, допуск 2 часа
		windows := []domain.WorkWindow{
			window("friday", party.StartsAt.Add(-time.Hour), party.StartsAt.Add(2*time.Hour)),
		}

		got := WorkingSlots(party, windows, tolerance)
		assert.Equal(t, slotSet(0, 1, 2, 3, 4, 5), got)
	})

	t.Run("окно раньше допуска игнорируется", func(t *testing.T) {
		windows := []domain.WorkWindow{
			window("friday", party.StartsAt.Add(-3*time.Hour), party.StartsAt.Add(time.Hour)),
		}

		got := WorkingSlots(party, windows, tolerance)
		assert.Empty(t, got)
	})

	t.Run("окно после конца вечеринки игнорируется", func(t *testing.T) {
		windows := []domain.WorkWindow{
			window("friday", party.EndsAt.Add(time.Minute), party.EndsAt.Add(time.Hour)),
		}

		got := WorkingSlots(party, windows, tolerance)
		assert.Empty(t, got)
	})

	t.Run("частично накрытые краевые слоты не включаются", func(t *testing.T) {
		// 20:10 - 21:10: слот 0 накрыт частично, слот 3 тоже
		windows := []domain.WorkWindow{
			window("friday", party.StartsAt.Add(10*time.Minute), party.StartsAt.Add(70*time.Minute)),
		}

		got := WorkingSlots(party, windows, tolerance)
		assert.Equal(t, slotSet(1, 2), got)
	})

	t.Run("несколько окон объединяются", func(t *testing.T) {
		windows := []domain.WorkWindow{
			window("friday", party.StartsAt, party.StartsAt.Add(time.Hour)),
			window("friday", party.StartsAt.Add(2*time.Hour), party.StartsAt.Add(3*time.Hour)),
		}

		got := WorkingSlots(party, windows, tolerance)
		assert.Equal(t, slotSet(0, 1, 2, 6, 7, 8), got)
	})
}
