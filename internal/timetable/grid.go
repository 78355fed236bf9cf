package timetable

import (
	"time"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

// Сетка расписания: вся арифметика ведется в индексах слотов фиксированной
// длины, отсчитываемых от начала вечеринки

var slotLengthSeconds = int(domain.SlotLength / time.Second)

// SlotTime возвращает момент начала слота с указанным индексом
func SlotTime(party *domain.Party, slot int) time.Time {
	return party.StartsAt.Add(time.Duration(slot) * domain.SlotLength)
}

// SessionEnd возвращает момент окончания сеанса длиной lengthSlots,
// начинающегося в слоте slot; обязательный зазор вычтен из полезного времени
func SessionEnd(party *domain.Party, slot, lengthSlots int) time.Time {
	return SlotTime(party, slot+lengthSlots).Add(-domain.Buffer)
}

// SlotIndexFor возвращает индекс слота, в который попадает момент времени
// Округление вниз; для моментов до начала вечеринки индекс отрицательный
// Деление ведется в секундах, чтобы неполная минута не съедала знак
func SlotIndexFor(party *domain.Party, t time.Time) int {
	seconds := int(t.Sub(party.StartsAt) / time.Second)
	return floorDiv(seconds, slotLengthSeconds)
}

// SlotIndexCeil возвращает индекс первого слота, начинающегося не раньше t
func SlotIndexCeil(party *domain.Party, t time.Time) int {
	seconds := int(t.Sub(party.StartsAt) / time.Second)
	return ceilDiv(seconds, slotLengthSeconds)
}

// SlotCount возвращает число слотов, целиком помещающихся в окно вечеринки
func SlotCount(party *domain.Party) int {
	seconds := int(party.EndsAt.Sub(party.StartsAt) / time.Second)
	return seconds / slotLengthSeconds
}

// floorDiv целочисленное деление с округлением вниз (в том числе для отрицательных)
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// ceilDiv целочисленное деление с округлением вверх
func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
