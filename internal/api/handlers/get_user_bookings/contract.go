package get_user_bookings

import (
	"context"

	"github.com/znsteam/ZNS-MassageService/internal/service/bookings/models"
)

type BookingsService interface {
	GetClientBookings(ctx context.Context, clientID int64) ([]*models.BookingView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
