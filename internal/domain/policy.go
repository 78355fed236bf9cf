package domain

import "time"

// BookingPolicy настройки политики бронирования
// Загружается из конфигурации; нулевые поля заполняются дефолтами
type BookingPolicy struct {
	EarlyComerTolerance time.Duration
	ClientLeadTime      time.Duration
	LeadBuffer          time.Duration
	SpecialistFlyover   time.Duration
	MaxWindowSlots      int
	DailyBookingCap     int
}

// DefaultBookingPolicy возвращает политику с дефолтными значениями
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		EarlyComerTolerance: DefaultEarlyComerToleranceMinutes * time.Minute,
		ClientLeadTime:      DefaultClientLeadTimeMinutes * time.Minute,
		LeadBuffer:          DefaultLeadBufferMinutes * time.Minute,
		SpecialistFlyover:   DefaultSpecialistFlyoverMinutes * time.Minute,
		MaxWindowSlots:      DefaultMaxWindowSlots,
		DailyBookingCap:     DefaultDailyBookingCap,
	}
}

// FirstBookableTime возвращает самый ранний допустимый момент начала сеанса
// для показа кандидатов. Для специалиста (walk-in) допускается запись
// ближе к "сейчас", чем для клиента
func (p BookingPolicy) FirstBookableTime(now time.Time, isSpecialistActor bool) time.Time {
	if isSpecialistActor {
		return now.Add(-p.SpecialistFlyover)
	}
	return now.Add(p.LeadBuffer + p.ClientLeadTime)
}

// CommitDeadline возвращает крайний допустимый момент начала сеанса
// при финализации бронирования
func (p BookingPolicy) CommitDeadline(now time.Time, isSpecialistActor bool) time.Time {
	if isSpecialistActor {
		return now.Add(-p.SpecialistFlyover)
	}
	return now.Add(p.ClientLeadTime)
}
