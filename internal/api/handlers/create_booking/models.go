package create_booking

import (
	"time"

	createBooking "github.com/znsteam/ZNS-MassageService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// ClientID опционален: специалист может записать клиента, подошедшего лично;
// обычный клиент записывает только себя
type CreateBookingRequest struct {
	SpecialistID  int64  `json:"specialistId"`
	PartyKey      string `json:"partyKey"`
	StartSlot     int    `json:"startSlot"`
	DurationSlots int    `json:"durationSlots"`
	ClientID      *int64 `json:"clientId,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64  `json:"id"`
	SpecialistID int64  `json:"specialistId"`
	ClientID     int64  `json:"clientId"`
	PartyKey     string `json:"partyKey"`
	StartSlot    int    `json:"startSlot"`
	LengthSlots  int    `json:"lengthSlots"`
	Start        string `json:"start"`
	End          string `json:"end"`
	CreatedAt    string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Актор, совпадающий со специалистом бронирования, действует как walk-in
func (r *CreateBookingRequest) ToUseCaseRequest(actorID int64) *createBooking.Request {
	clientID := actorID
	if r.ClientID != nil {
		clientID = *r.ClientID
	}

	return &createBooking.Request{
		ClientID:          clientID,
		SpecialistID:      r.SpecialistID,
		PartyKey:          r.PartyKey,
		StartSlot:         r.StartSlot,
		DurationSlots:     r.DurationSlots,
		IsSpecialistActor: actorID == r.SpecialistID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.BookingID,
		SpecialistID: resp.SpecialistID,
		ClientID:     resp.ClientID,
		PartyKey:     resp.PartyKey,
		StartSlot:    resp.StartSlot,
		LengthSlots:  resp.LengthSlots,
		Start:        resp.Start.Format(time.RFC3339),
		End:          resp.End.Format(time.RFC3339),
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
