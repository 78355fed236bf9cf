package get_specialist_bookings

import (
	"time"

	"github.com/znsteam/ZNS-MassageService/internal/service/bookings/models"
)

// BookingResponse HTTP модель бронирования в расписании специалиста
type BookingResponse struct {
	ID          int64  `json:"id"`
	ClientID    int64  `json:"clientId"`
	PartyKey    string `json:"partyKey"`
	StartSlot   int    `json:"startSlot"`
	LengthSlots int    `json:"lengthSlots"`
	Start       string `json:"start"`
	End         string `json:"end"`
	CreatedAt   string `json:"createdAt"`
}

// GetSpecialistBookingsResponse HTTP response model
type GetSpecialistBookingsResponse struct {
	SpecialistID int64             `json:"specialistId"`
	PartyKey     string            `json:"partyKey"`
	Bookings     []BookingResponse `json:"bookings"`
}

// FromViews конвертирует представления сервиса в HTTP response
func FromViews(specialistID int64, partyKey string, views []*models.BookingView) *GetSpecialistBookingsResponse {
	bookings := make([]BookingResponse, 0, len(views))
	for _, v := range views {
		bookings = append(bookings, BookingResponse{
			ID:          v.ID,
			ClientID:    v.ClientID,
			PartyKey:    v.PartyKey,
			StartSlot:   v.StartSlot,
			LengthSlots: v.LengthSlots,
			Start:       v.Start.Format(time.RFC3339),
			End:         v.End.Format(time.RFC3339),
			CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		})
	}

	return &GetSpecialistBookingsResponse{
		SpecialistID: specialistID,
		PartyKey:     partyKey,
		Bookings:     bookings,
	}
}
