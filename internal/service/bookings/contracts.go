package bookings

import (
	"context"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error)
	GetActiveBySpecialistAndParty(ctx context.Context, specialistID int64, partyKey string) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
	MarkClientNotified(ctx context.Context, id int64) error
	MarkSpecialistNotified(ctx context.Context, id int64) error
	ListUnnotified(ctx context.Context, partyKey string, forSpecialist bool) ([]*domain.Booking, error)
}

// Roster интерфейс доступа к конфигурации расписания
type Roster interface {
	Party(key string) (*domain.Party, error)
	Specialist(id int64) (*domain.Specialist, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
