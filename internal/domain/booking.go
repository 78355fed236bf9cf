package domain

import "time"

// Booking бронирование сеанса массажа
// Поля расписания после создания неизменны; мутируют только флаги
// уведомлений и отметка отмены
type Booking struct {
	ID           int64
	SpecialistID int64
	ClientID     int64
	PartyKey     string
	StartSlot    int
	LengthSlots  int

	ClientNotified     bool
	SpecialistNotified bool

	CancelledAt *time.Time
	CreatedAt   time.Time
}

// IsActive возвращает true, если бронирование не отменено
func (b *Booking) IsActive() bool {
	return b.CancelledAt == nil
}

// EndSlot возвращает слот, следующий за последним занятым (полуинтервал)
func (b *Booking) EndSlot() int {
	return b.StartSlot + b.LengthSlots
}

// CoversSlot проверяет, занимает ли бронирование указанный слот
func (b *Booking) CoversSlot(slot int) bool {
	return slot >= b.StartSlot && slot < b.EndSlot()
}

// OverlapsSlots проверяет пересечение бронирования с диапазоном слотов [start, end)
func (b *Booking) OverlapsSlots(start, end int) bool {
	return b.StartSlot < end && start < b.EndSlot()
}
