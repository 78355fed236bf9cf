package timetable

import (
	"time"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

// WorkingSlots возвращает множество индексов слотов, покрытых хотя бы одним
// рабочим окном специалиста на вечеринке.
//
// Окно учитывается, только если оно начинается не раньше party.StartsAt - tolerance
// и не позже party.EndsAt (tolerance - допуск для "ранних" окон, начинающихся
// чуть раньше номинального старта вечеринки).
//
// Границы считаются консервативно: ceil для начала окна, floor для конца,
// так что частично накрытые слоты по краям не включаются
func WorkingSlots(party *domain.Party, windows []domain.WorkWindow, tolerance time.Duration) map[int]struct{} {
	slots := make(map[int]struct{})
	earliest := party.StartsAt.Add(-tolerance)

	for _, w := range windows {
		if w.StartsAt.Before(earliest) || w.StartsAt.After(party.EndsAt) {
			continue
		}

		start := SlotIndexCeil(party, w.StartsAt)
		if start < 0 {
			start = 0
		}
		end := SlotIndexFor(party, w.EndsAt)

		for slot := start; slot < end; slot++ {
			slots[slot] = struct{}{}
		}
	}

	return slots
}
