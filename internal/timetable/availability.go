package timetable

import (
	"sort"
	"time"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

// Availability результат расчета доступности по вечеринке:
// для каждого слота - множество свободных и множество занятых специалистов
type Availability struct {
	// Free слот -> специалисты, свободные в этом слоте
	Free map[int]map[int64]struct{}

	// Occupied слот -> специалисты, занятые в этом слоте
	Occupied map[int]map[int64]struct{}
}

// ResolveAvailability считает доступность в два этапа.
//
// Этап A, по каждому специалисту: свободные слоты = рабочие окна минус
// занятые его бронированиями.
//
// Этап B, общий стол: при TableCapacity == 1, если в слоте занят хотя бы один
// специалист, которому нужен стол, все остальные "столовые" специалисты
// в этом слоте убираются из свободных - одновременно может идти только один
// сеанс на столе, независимо от того, кто его держит.
//
// Случай 1 < TableCapacity < числа "столовых" специалистов отсекается
// валидацией конфигурации на старте и сюда не попадает
func ResolveAvailability(
	party *domain.Party,
	specialists []*domain.Specialist,
	bookingsBySpecialist map[int64][]*domain.Booking,
	tolerance time.Duration,
) *Availability {
	av := &Availability{
		Free:     make(map[int]map[int64]struct{}),
		Occupied: make(map[int]map[int64]struct{}),
	}

	tableRequired := make(map[int64]bool, len(specialists))

	// Этап A: свободные слоты каждого специалиста
	for _, sp := range specialists {
		tableRequired[sp.ID] = sp.TableRequired

		working := WorkingSlots(party, sp.WindowsForParty(party.Key), tolerance)
		occupied := OccupiedSlots(bookingsBySpecialist[sp.ID])

		for slot := range working {
			if _, busy := occupied[slot]; busy {
				continue
			}
			addToSlotSet(av.Free, slot, sp.ID)
		}
		for slot := range occupied {
			addToSlotSet(av.Occupied, slot, sp.ID)
		}
	}

	// Этап B: вычитание по общему столу
	if party.TableCapacity == 1 {
		for slot, occupants := range av.Occupied {
			tableBusy := false
			for id := range occupants {
				if tableRequired[id] {
					tableBusy = true
					break
				}
			}
			if !tableBusy {
				continue
			}
			for id := range av.Free[slot] {
				if tableRequired[id] {
					delete(av.Free[slot], id)
				}
			}
			if len(av.Free[slot]) == 0 {
				delete(av.Free, slot)
			}
		}
	}

	return av
}

// FreeSlotsFor возвращает отсортированный список свободных слотов специалиста
func (a *Availability) FreeSlotsFor(specialistID int64) []int {
	slots := make([]int, 0)
	for slot, ids := range a.Free {
		if _, ok := ids[specialistID]; ok {
			slots = append(slots, slot)
		}
	}
	sort.Ints(slots)
	return slots
}

func addToSlotSet(m map[int]map[int64]struct{}, slot int, id int64) {
	if m[slot] == nil {
		m[slot] = make(map[int64]struct{})
	}
	m[slot][id] = struct{}{}
}
