package create_booking

import "errors"

var (
	// ErrSlotUnavailable возвращается, когда запрошенный слот занят
	// или не входит в свежепосчитанную доступность специалиста
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrTooManyBookings возвращается при достижении клиентом дневного
	// лимита бронирований на вечеринку
	ErrTooManyBookings = errors.New("too many bookings for this day")

	// ErrDeadlineExceeded возвращается, когда запрошенный слот начинается
	// раньше допустимого времени записи
	ErrDeadlineExceeded = errors.New("slot starts before the booking deadline")

	// ErrPartyNotFound возвращается, когда вечеринка не найдена
	ErrPartyNotFound = errors.New("party not found")

	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("specialist not found")

	// ErrUnsupportedDuration возвращается, когда специалист не принимает
	// сеансы запрошенной длительности
	ErrUnsupportedDuration = errors.New("specialist does not accept this duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
