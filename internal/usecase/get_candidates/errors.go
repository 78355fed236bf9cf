package get_candidates

import "errors"

var (
	// ErrPartyNotFound возвращается, когда вечеринка не найдена
	ErrPartyNotFound = errors.New("party not found")

	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("specialist not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
