package timetable

import "github.com/znsteam/ZNS-MassageService/internal/domain"

// OccupiedSlots возвращает множество слотов, занятых активными бронированиями
// Каждое бронирование занимает непрерывный диапазон [StartSlot, StartSlot+LengthSlots)
func OccupiedSlots(bookings []*domain.Booking) map[int]struct{} {
	occupied := make(map[int]struct{})
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		for slot := b.StartSlot; slot < b.EndSlot(); slot++ {
			occupied[slot] = struct{}{}
		}
	}
	return occupied
}

// GroupBySpecialist раскладывает бронирования по специалистам
func GroupBySpecialist(bookings []*domain.Booking) map[int64][]*domain.Booking {
	grouped := make(map[int64][]*domain.Booking)
	for _, b := range bookings {
		grouped[b.SpecialistID] = append(grouped[b.SpecialistID], b)
	}
	return grouped
}
