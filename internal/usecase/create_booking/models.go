package create_booking

import "time"

// Request модель запроса на финализацию бронирования
type Request struct {
	ClientID     int64
	SpecialistID int64
	PartyKey     string

	// StartSlot индекс слота начала сеанса
	StartSlot int

	// DurationSlots длительность сеанса в слотах
	DurationSlots int

	// IsSpecialistActor true, когда бронирует сам специалист (walk-in):
	// дневной лимит не применяется, дедлайн считается с допуском в прошлое
	IsSpecialistActor bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID    int64
	SpecialistID int64
	ClientID     int64
	PartyKey     string
	StartSlot    int
	LengthSlots  int
	Start        time.Time
	End          time.Time
	CreatedAt    time.Time
}
