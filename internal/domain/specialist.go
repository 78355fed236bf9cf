package domain

import "time"

// Specialist массажист. Конфигурационная запись: загружается на старте,
// в рантайме мутируют только флаги уведомлений
type Specialist struct {
	ID                  int64
	Name                string
	TableRequired       bool
	MinDurationSlots    int
	MaxDurationSlots    int
	NotifyOnBooking     bool
	NotifyBeforeSession bool
	WorkWindows         []WorkWindow
}

// WorkWindow рабочее окно специалиста в рамках вечеринки
// Может уходить за полночь в ранние часы следующего дня
type WorkWindow struct {
	ID           int64
	SpecialistID int64
	PartyKey     string
	StartsAt     time.Time
	EndsAt       time.Time
}

// SupportsDuration проверяет, что специалист принимает сеансы такой длины
func (s *Specialist) SupportsDuration(lengthSlots int) bool {
	return lengthSlots >= s.MinDurationSlots && lengthSlots <= s.MaxDurationSlots
}

// WindowsForParty возвращает рабочие окна специалиста на указанную вечеринку
func (s *Specialist) WindowsForParty(partyKey string) []WorkWindow {
	windows := make([]WorkWindow, 0, len(s.WorkWindows))
	for _, w := range s.WorkWindows {
		if w.PartyKey == partyKey {
			windows = append(windows, w)
		}
	}
	return windows
}

// Overlaps проверяет пересечение двух рабочих окон во времени
func (w *WorkWindow) Overlaps(other *WorkWindow) bool {
	return w.StartsAt.Before(other.EndsAt) && other.StartsAt.Before(w.EndsAt)
}
