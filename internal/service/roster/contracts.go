package roster

import (
	"context"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

// RosterRepository интерфейс репозитория конфигурации
type RosterRepository interface {
	GetParties(ctx context.Context) ([]*domain.Party, error)
	GetSpecialists(ctx context.Context) ([]*domain.Specialist, error)
	UpdateNotifyFlags(ctx context.Context, specialistID int64, notifyOnBooking, notifyBeforeSession bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
