package domain

import "time"

// Сетка расписания
const (
	// SlotLengthMinutes длина одного слота сетки в минутах
	SlotLengthMinutes = 20

	// BufferMinutes обязательный зазор вокруг сеанса; вычитается из полезного
	// времени сеанса, сеансы одного специалиста не ставятся вплотную без него
	BufferMinutes = 5
)

var (
	// SlotLength длина слота как time.Duration
	SlotLength = time.Duration(SlotLengthMinutes) * time.Minute

	// Buffer зазор вокруг сеанса как time.Duration
	Buffer = time.Duration(BufferMinutes) * time.Minute
)

// Дефолтные значения политики бронирования
const (
	// DefaultEarlyComerToleranceMinutes насколько раньше номинального начала
	// вечеринки может начинаться рабочее окно специалиста
	DefaultEarlyComerToleranceMinutes = 120

	// DefaultClientLeadTimeMinutes минимальное время от "сейчас" до начала
	// сеанса при бронировании клиентом
	DefaultClientLeadTimeMinutes = 30

	// DefaultLeadBufferMinutes дополнительный запас к lead time при показе
	// кандидатов (чтобы слот не протух, пока клиент выбирает)
	DefaultLeadBufferMinutes = 10

	// DefaultSpecialistFlyoverMinutes насколько "в прошлое" может бронировать
	// сам специалист (walk-in прямо сейчас)
	DefaultSpecialistFlyoverMinutes = 20

	// DefaultMaxWindowSlots потолок длины показываемого окна в слотах;
	// более длинные свободные блоки режутся на куски этой длины
	DefaultMaxWindowSlots = 9

	// DefaultDailyBookingCap максимум активных бронирований клиента на одну вечеринку
	DefaultDailyBookingCap = 2
)

// Ограничения конфигурации специалистов
const (
	MinDurationSlotsLimit = 1
	MaxDurationSlotsLimit = 12 // 4 часа
)

// Форматы времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)
