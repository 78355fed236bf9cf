package timetable

// FilterDuration оставляет пару (слот, специалист) только если специалист
// свободен во всех lengthSlots последовательных слотах, начиная с этого.
// Бронирование никогда не перекрывает дыру в доступности специалиста.
//
// Для lengthSlots <= 1 вход возвращается без изменений.
//
// Свойство монотонности: любой слот, прошедший фильтр для длины L+1,
// проходит его и для длины L
func FilterDuration(free map[int]map[int64]struct{}, lengthSlots int) map[int]map[int64]struct{} {
	if lengthSlots <= 1 {
		return free
	}

	filtered := make(map[int]map[int64]struct{})

	for slot, ids := range free {
		for id := range ids {
			ok := true
			for offset := 1; offset < lengthSlots; offset++ {
				if _, freeHere := free[slot+offset][id]; !freeHere {
					ok = false
					break
				}
			}
			if ok {
				addToSlotSet(filtered, slot, id)
			}
		}
	}

	return filtered
}
