package models

import (
	"time"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
	"github.com/znsteam/ZNS-MassageService/internal/timetable"
)

// BookingView бронирование с вычисленными временами начала и конца сеанса
type BookingView struct {
	ID                 int64
	SpecialistID       int64
	SpecialistName     string
	ClientID           int64
	PartyKey           string
	StartSlot          int
	LengthSlots        int
	Start              time.Time
	End                time.Time
	Cancelled          bool
	ClientNotified     bool
	SpecialistNotified bool
	CreatedAt          time.Time
}

// FromDomainBooking собирает представление бронирования
// Имя специалиста может быть пустым, если специалист выведен из конфигурации
func FromDomainBooking(b *domain.Booking, party *domain.Party, specialistName string) *BookingView {
	return &BookingView{
		ID:                 b.ID,
		SpecialistID:       b.SpecialistID,
		SpecialistName:     specialistName,
		ClientID:           b.ClientID,
		PartyKey:           b.PartyKey,
		StartSlot:          b.StartSlot,
		LengthSlots:        b.LengthSlots,
		Start:              timetable.SlotTime(party, b.StartSlot),
		End:                timetable.SessionEnd(party, b.StartSlot, b.LengthSlots),
		Cancelled:          !b.IsActive(),
		ClientNotified:     b.ClientNotified,
		SpecialistNotified: b.SpecialistNotified,
		CreatedAt:          b.CreatedAt,
	}
}
