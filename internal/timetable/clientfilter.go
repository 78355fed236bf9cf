package timetable

import (
	"sort"
	"time"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

// CandidateParams параметры сборки окон-кандидатов из сырой доступности
type CandidateParams struct {
	Party *domain.Party

	// DurationSlots запрошенная длина сеанса в слотах
	DurationSlots int

	// FirstBookable самый ранний допустимый момент начала сеанса
	// (уже учитывает lead time для клиента или допуск для специалиста)
	FirstBookable time.Time

	// ClientBookings активные бронирования самого клиента на эту вечеринку,
	// у любых специалистов - клиент не может записаться на два сеанса сразу
	ClientBookings []*domain.Booking

	// MaxWindowSlots потолок длины показываемого окна; длинные свободные
	// блоки режутся на куски этой длины
	MaxWindowSlots int
}

// slotRun непрерывный диапазон свободных слотов одного специалиста [Start, End)
type slotRun struct {
	SpecialistID int64
	Start        int
	End          int
}

func (r slotRun) length() int { return r.End - r.Start }

// BuildCandidates превращает посуточную доступность в короткий список
// показываемых окон.
//
// Из каждого свободного блока предлагаются только самый ранний и самый
// поздний возможные старты: полный перебор стартов внутри длинного блока
// дал бы стену почти одинаковых вариантов. Близкие дубли по одному
// специалисту подавляются порогом в половину запрошенной длительности
func BuildCandidates(free map[int]map[int64]struct{}, p CandidateParams) []domain.Candidate {
	if p.DurationSlots < 1 {
		return nil
	}

	minSlot := SlotIndexCeil(p.Party, p.FirstBookable)
	if minSlot < 0 {
		minSlot = 0
	}

	// 1. Непрерывные диапазоны по каждому специалисту
	runs := collectRuns(free)

	// 2. Обрезка по моменту первой доступной записи
	clipped := make([]slotRun, 0, len(runs))
	for _, r := range runs {
		if r.End <= minSlot {
			continue
		}
		if r.Start < minSlot {
			r.Start = minSlot
		}
		if r.length() >= p.DurationSlots {
			clipped = append(clipped, r)
		}
	}

	// 3. Вычитание собственных бронирований клиента (у любых специалистов)
	withoutOwn := make([]slotRun, 0, len(clipped))
	for _, r := range clipped {
		withoutOwn = append(withoutOwn, subtractBookings(r, p.ClientBookings, p.DurationSlots)...)
	}

	// 4. Слияние по времени начала и нарезка слишком длинных диапазонов
	sort.Slice(withoutOwn, func(i, j int) bool {
		if withoutOwn[i].Start != withoutOwn[j].Start {
			return withoutOwn[i].Start < withoutOwn[j].Start
		}
		return withoutOwn[i].SpecialistID < withoutOwn[j].SpecialistID
	})
	chunked := make([]slotRun, 0, len(withoutOwn))
	for _, r := range withoutOwn {
		chunked = append(chunked, splitRun(r, p.MaxWindowSlots, p.DurationSlots)...)
	}

	// 5. Якоря: начало диапазона и самый поздний старт внутри него
	bySpecialist := make(map[int64][]int)
	for _, r := range chunked {
		bySpecialist[r.SpecialistID] = append(bySpecialist[r.SpecialistID], r.Start)
		if latest := r.End - p.DurationSlots; latest > r.Start {
			bySpecialist[r.SpecialistID] = append(bySpecialist[r.SpecialistID], latest)
		}
	}

	// 6. Подавление близких дублей по каждому специалисту
	threshold := p.DurationSlots / 2
	if threshold < 1 {
		threshold = 1
	}

	candidates := make([]domain.Candidate, 0)
	for id, starts := range bySpecialist {
		sort.Ints(starts)
		lastKept := -1 << 30
		for _, start := range starts {
			if start-lastKept < threshold {
				continue
			}
			lastKept = start
			candidates = append(candidates, domain.Candidate{
				SpecialistID: id,
				StartSlot:    start,
				Start:        SlotTime(p.Party, start),
				End:          SessionEnd(p.Party, start, p.DurationSlots),
			})
		}
	}

	// 7. Итоговая сортировка по времени начала
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].Start.Equal(candidates[j].Start) {
			return candidates[i].Start.Before(candidates[j].Start)
		}
		return candidates[i].SpecialistID < candidates[j].SpecialistID
	})

	return candidates
}

// collectRuns собирает непрерывные диапазоны свободных слотов по специалистам
func collectRuns(free map[int]map[int64]struct{}) []slotRun {
	slotsBySpecialist := make(map[int64][]int)
	for slot, ids := range free {
		for id := range ids {
			slotsBySpecialist[id] = append(slotsBySpecialist[id], slot)
		}
	}

	runs := make([]slotRun, 0)
	for id, slots := range slotsBySpecialist {
		sort.Ints(slots)
		start := slots[0]
		prev := slots[0]
		for _, slot := range slots[1:] {
			if slot == prev+1 {
				prev = slot
				continue
			}
			runs = append(runs, slotRun{SpecialistID: id, Start: start, End: prev + 1})
			start, prev = slot, slot
		}
		runs = append(runs, slotRun{SpecialistID: id, Start: start, End: prev + 1})
	}

	return runs
}

// subtractBookings вырезает из диапазона слоты, пересекающиеся с бронированиями,
// и возвращает оставшиеся куски длиной не меньше запрошенной
func subtractBookings(r slotRun, bookings []*domain.Booking, minLength int) []slotRun {
	pieces := []slotRun{r}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		next := make([]slotRun, 0, len(pieces))
		for _, piece := range pieces {
			if !b.OverlapsSlots(piece.Start, piece.End) {
				next = append(next, piece)
				continue
			}
			if b.StartSlot > piece.Start {
				next = append(next, slotRun{SpecialistID: piece.SpecialistID, Start: piece.Start, End: b.StartSlot})
			}
			if b.EndSlot() < piece.End {
				next = append(next, slotRun{SpecialistID: piece.SpecialistID, Start: b.EndSlot(), End: piece.End})
			}
		}
		pieces = next
	}

	kept := pieces[:0]
	for _, piece := range pieces {
		if piece.length() >= minLength {
			kept = append(kept, piece)
		}
	}
	return kept
}

// splitRun режет диапазон длиннее maxSlots на куски по maxSlots,
// отбрасывая хвосты короче запрошенной длительности
func splitRun(r slotRun, maxSlots, minLength int) []slotRun {
	if maxSlots <= 0 || r.length() <= maxSlots {
		return []slotRun{r}
	}

	chunks := make([]slotRun, 0, r.length()/maxSlots+1)
	for start := r.Start; start < r.End; start += maxSlots {
		end := start + maxSlots
		if end > r.End {
			end = r.End
		}
		if end-start >= minLength {
			chunks = append(chunks, slotRun{SpecialistID: r.SpecialistID, Start: start, End: end})
		}
	}
	return chunks
}
