package get_candidates

import (
	"context"
	"time"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByParty получает все активные бронирования вечеринки
	GetActiveByParty(ctx context.Context, partyKey string) ([]*domain.Booking, error)

	// GetActiveByClientAndParty получает активные бронирования клиента на вечеринке
	GetActiveByClientAndParty(ctx context.Context, clientID int64, partyKey string) ([]*domain.Booking, error)
}

// Roster интерфейс доступа к конфигурации расписания
type Roster interface {
	Party(key string) (*domain.Party, error)
	Specialist(id int64) (*domain.Specialist, error)
	Specialists() []*domain.Specialist
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
