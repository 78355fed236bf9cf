package roster

import "errors"

// Ошибки валидации конфигурации - фатальны на старте сервиса,
// до обработки запросов не доходят
var (
	// ErrInvalidParty возвращается при некорректной записи вечеринки
	ErrInvalidParty = errors.New("roster: invalid party definition")

	// ErrOverlappingWindows возвращается, когда рабочие окна специалиста
	// на одной вечеринке пересекаются
	ErrOverlappingWindows = errors.New("roster: overlapping work windows")

	// ErrInvalidWindow возвращается при некорректном рабочем окне
	ErrInvalidWindow = errors.New("roster: invalid work window")

	// ErrInvalidDurationBounds возвращается при некорректных границах
	// длительности сеанса у специалиста
	ErrInvalidDurationBounds = errors.New("roster: invalid duration bounds")

	// ErrUnsupportedTableCapacity возвращается для вместимости стола,
	// которую движок не умеет разрешать: больше одного, но меньше числа
	// специалистов, которым стол нужен
	ErrUnsupportedTableCapacity = errors.New("roster: unsupported table capacity")

	// ErrUnknownPartyKey возвращается, когда рабочее окно ссылается
	// на несуществующую вечеринку
	ErrUnknownPartyKey = errors.New("roster: work window references unknown party")
)

// Ошибки времени выполнения
var (
	// ErrPartyNotFound возвращается, когда вечеринка не найдена
	ErrPartyNotFound = errors.New("roster: party not found")

	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("roster: specialist not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("roster: internal error")
)
