package get_user_bookings

import (
	"time"

	"github.com/znsteam/ZNS-MassageService/internal/service/bookings/models"
)

// BookingResponse HTTP модель бронирования в списке клиента
type BookingResponse struct {
	ID             int64  `json:"id"`
	SpecialistID   int64  `json:"specialistId"`
	SpecialistName string `json:"specialistName,omitempty"`
	PartyKey       string `json:"partyKey"`
	StartSlot      int    `json:"startSlot"`
	LengthSlots    int    `json:"lengthSlots"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Cancelled      bool   `json:"cancelled"`
	CreatedAt      string `json:"createdAt"`
}

// GetUserBookingsResponse HTTP response model
type GetUserBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromViews конвертирует представления сервиса в HTTP response
func FromViews(views []*models.BookingView) *GetUserBookingsResponse {
	bookings := make([]BookingResponse, 0, len(views))
	for _, v := range views {
		bookings = append(bookings, BookingResponse{
			ID:             v.ID,
			SpecialistID:   v.SpecialistID,
			SpecialistName: v.SpecialistName,
			PartyKey:       v.PartyKey,
			StartSlot:      v.StartSlot,
			LengthSlots:    v.LengthSlots,
			Start:          v.Start.Format(time.RFC3339),
			End:            v.End.Format(time.RFC3339),
			Cancelled:      v.Cancelled,
			CreatedAt:      v.CreatedAt.Format(time.RFC3339),
		})
	}

	return &GetUserBookingsResponse{Bookings: bookings}
}
