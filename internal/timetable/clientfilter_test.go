package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

func startSlots(candidates []domain.Candidate) []int {
	slots := make([]int, 0, len(candidates))
	for _, c := range candidates {
		slots = append(slots, c.StartSlot)
	}
	return slots
}

func contiguous(id int64, from, to int) map[int64][]int {
	slots := make([]int, 0, to-from)
	for s := from; s < to; s++ {
		slots = append(slots, s)
	}
	return map[int64][]int{id: slots}
}

func TestBuildCandidates_LongRunSplitAndAnchors(t *testing.T) {
	party := fridayParty()

	// Полностью свободная вечеринка: 30 слотов, сеанс на 3 слота,
	// потолок окна 9 слотов (3 часа)
	candidates := BuildCandidates(freeMap(contiguous(10, 0, 30)), CandidateParams{
		Party:          party,
		DurationSlots:  3,
		FirstBookable:  party.StartsAt,
		MaxWindowSlots: 9,
	})

	// Из каждого куска по 9 слотов предлагаются самый ранний и самый
	// поздний старты; хвост из 3 слотов дает единственный старт
	assert.Equal(t, []int{0, 6, 9, 15, 18, 24, 27}, startSlots(candidates))

	require.NotEmpty(t, candidates)
	first := candidates[0]
	assert.Equal(t, party.StartsAt, first.Start)
	assert.Equal(t, party.StartsAt.Add(time.Hour).Add(-domain.Buffer), first.End)
}

func TestBuildCandidates_FirstBookableClipsRuns(t *testing.T) {
	party := fridayParty()

	candidates := BuildCandidates(freeMap(contiguous(10, 0, 30)), CandidateParams{
		Party:          party,
		DurationSlots:  3,
		FirstBookable:  SlotTime(party, 5),
		MaxWindowSlots: 30,
	})

	assert.Equal(t, []int{5, 27}, startSlots(candidates))
}

func TestBuildCandidates_ClientBookingsSubtracted(t *testing.T) {
	party := fridayParty()

	// Чужой сеанс клиента в слотах 10..12 режет свободный блок надвое,
	// даже если он у другого специалиста
	own := booking(1, 20, 100, 10, 3)

	candidates := BuildCandidates(freeMap(contiguous(10, 0, 30)), CandidateParams{
		Party:          party,
		DurationSlots:  3,
		FirstBookable:  party.StartsAt,
		ClientBookings: []*domain.Booking{own},
		MaxWindowSlots: 30,
	})

	assert.Equal(t, []int{0, 7, 13, 27}, startSlots(candidates))

	// Ни одно предложение не пересекается с собственным сеансом клиента
	for _, c := range candidates {
		assert.False(t, own.OverlapsSlots(c.StartSlot, c.StartSlot+3),
			"candidate at slot %d overlaps the client's own booking", c.StartSlot)
	}
}

func TestBuildCandidates_ShortPiecesDropped(t *testing.T) {
	party := fridayParty()

	// Свободны слоты 0..5, собственный сеанс в 2..3: оба осколка короче
	// запрошенных трех слотов
	own := booking(1, 20, 100, 2, 2)

	candidates := BuildCandidates(freeMap(contiguous(10, 0, 6)), CandidateParams{
		Party:          party,
		DurationSlots:  3,
		FirstBookable:  party.StartsAt,
		ClientBookings: []*domain.Booking{own},
		MaxWindowSlots: 30,
	})

	assert.Empty(t, candidates)
}

func TestBuildCandidates_CancelledClientBookingIgnored(t *testing.T) {
	party := fridayParty()

	own := cancelled(booking(1, 20, 100, 2, 2))

	candidates := BuildCandidates(freeMap(contiguous(10, 0, 6)), CandidateParams{
		Party:          party,
		DurationSlots:  3,
		FirstBookable:  party.StartsAt,
		ClientBookings: []*domain.Booking{own},
		MaxWindowSlots: 30,
	})

	assert.Equal(t, []int{0, 3}, startSlots(candidates))
}

func TestBuildCandidates_NearDuplicatesSuppressed(t *testing.T) {
	party := fridayParty()

	// Блок из 5 слотов под сеанс на 4: якоря 0 и 1 ближе половины
	// длительности, остается только ранний
	candidates := BuildCandidates(freeMap(contiguous(10, 0, 5)), CandidateParams{
		Party:          party,
		DurationSlots:  4,
		FirstBookable:  party.StartsAt,
		MaxWindowSlots: 30,
	})

	assert.Equal(t, []int{0}, startSlots(candidates))
}

func TestBuildCandidates_SortedAcrossSpecialists(t *testing.T) {
	party := fridayParty()

	free := freeMap(map[int64][]int{
		10: {3, 4, 5, 6, 7, 8},
		20: {0, 1, 2, 3, 4, 5},
	})

	candidates := BuildCandidates(free, CandidateParams{
		Party:          party,
		DurationSlots:  2,
		FirstBookable:  party.StartsAt,
		MaxWindowSlots: 9,
	})

	require.Len(t, candidates, 4)
	assert.Equal(t, []int{0, 3, 4, 7}, startSlots(candidates))
	for i := 1; i < len(candidates); i++ {
		assert.False(t, candidates[i].Start.Before(candidates[i-1].Start))
	}
}

func TestBuildCandidates_InvalidDuration(t *testing.T) {
	party := fridayParty()

	assert.Nil(t, BuildCandidates(freeMap(contiguous(10, 0, 6)), CandidateParams{
		Party:         party,
		DurationSlots: 0,
		FirstBookable: party.StartsAt,
	}))
}
