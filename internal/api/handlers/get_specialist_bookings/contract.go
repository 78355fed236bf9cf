package get_specialist_bookings

import (
	"context"

	"github.com/znsteam/ZNS-MassageService/internal/service/bookings/models"
)

type BookingsService interface {
	GetSpecialistBookings(ctx context.Context, specialistID int64, partyKey string) ([]*models.BookingView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
