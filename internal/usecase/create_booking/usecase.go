package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
	bookingRepo "github.com/znsteam/ZNS-MassageService/internal/infra/storage/booking"
	rosterService "github.com/znsteam/ZNS-MassageService/internal/service/roster"
	"github.com/znsteam/ZNS-MassageService/internal/timetable"
)

// UseCase use case финализации бронирования
//
// Коммиты сериализованы глобально: commitMu держится через всю секцию
// "перечитать доступность - проверить - записать", так что два конкурентных
// запроса на один слот не могут оба увидеть его свободным. Доступность,
// показанная клиенту раньше, здесь не используется - только свежая,
// посчитанная под замком
type UseCase struct {
	bookingRepo  BookingRepository
	roster       Roster
	txManager    TransactionManager
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger

	commitMu sync.Mutex
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roster Roster,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roster:       roster,
		txManager:    txManager,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет финализацию бронирования
// Проверки идут в фиксированном порядке, возвращается первая провалившаяся
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, specialist=%d, party=%s, slot=%d, duration=%d",
		req.ClientID, req.SpecialistID, req.PartyKey, req.StartSlot, req.DurationSlots)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем вечеринку и специалиста
	party, err := uc.roster.Party(req.PartyKey)
	if err != nil {
		if errors.Is(err, rosterService.ErrPartyNotFound) {
			uc.logger.Warn("CreateBooking: party %q not found", req.PartyKey)
			return nil, ErrPartyNotFound
		}
		return nil, fmt.Errorf("%w: failed to get party: %v", ErrInternal, err)
	}

	specialist, err := uc.roster.Specialist(req.SpecialistID)
	if err != nil {
		if errors.Is(err, rosterService.ErrSpecialistNotFound) {
			uc.logger.Warn("CreateBooking: specialist id=%d not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	if !specialist.SupportsDuration(req.DurationSlots) {
		uc.logger.Warn("CreateBooking: specialist id=%d does not accept duration=%d slots",
			req.SpecialistID, req.DurationSlots)
		return nil, ErrUnsupportedDuration
	}

	// 4. Глобальная критическая секция: один коммит в полете на весь сервис
	uc.commitMu.Lock()
	defer uc.commitMu.Unlock()

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return uc.commit(txCtx, req, party, now, &result)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		BookingID:    result.ID,
		SpecialistID: result.SpecialistID,
		ClientID:     result.ClientID,
		PartyKey:     result.PartyKey,
		StartSlot:    result.StartSlot,
		LengthSlots:  result.LengthSlots,
		Start:        timetable.SlotTime(party, result.StartSlot),
		End:          timetable.SessionEnd(party, result.StartSlot, result.LengthSlots),
		CreatedAt:    result.CreatedAt,
	}, nil
}

// commit выполняет проверки и вставку внутри транзакции под глобальным замком
func (uc *UseCase) commit(
	ctx context.Context,
	req *Request,
	party *domain.Party,
	now time.Time,
	result **domain.Booking,
) error {
	// 4.1. Свежий снимок бронирований вечеринки (строки заблокированы)
	partyBookings, err := uc.bookingRepo.GetActiveByParty(ctx, req.PartyKey)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get party bookings: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	clientBookings, err := uc.bookingRepo.GetActiveByClientAndParty(ctx, req.ClientID, req.PartyKey)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get client bookings: %v", err)
		return fmt.Errorf("%w: failed to get client bookings: %v", ErrInternal, err)
	}

	// 4.2. Идемпотентность: точно такое же активное бронирование уже есть
	for _, b := range clientBookings {
		if b.SpecialistID == req.SpecialistID && b.StartSlot == req.StartSlot && b.LengthSlots == req.DurationSlots {
			uc.logger.Info("CreateBooking: identical booking id=%d already exists, returning it", b.ID)
			*result = b
			return nil
		}
	}

	// 4.3. Дневной лимит - только для клиентов, не для самого специалиста
	if !req.IsSpecialistActor && len(clientBookings) >= uc.policy.DailyBookingCap {
		uc.logger.Warn("CreateBooking: client=%d reached daily cap %d on party=%s",
			req.ClientID, uc.policy.DailyBookingCap, req.PartyKey)
		return ErrTooManyBookings
	}

	// 4.4. Ре-валидация доступности по свежему снимку
	availability := timetable.ResolveAvailability(
		party,
		uc.roster.Specialists(),
		timetable.GroupBySpecialist(partyBookings),
		uc.policy.EarlyComerTolerance,
	)
	free := timetable.FilterDuration(availability.Free, req.DurationSlots)

	if !uc.slotBookable(free, req, clientBookings) {
		uc.logger.Warn("CreateBooking: slot=%d not available for specialist=%d on party=%s",
			req.StartSlot, req.SpecialistID, req.PartyKey)
		return ErrSlotUnavailable
	}

	// Окна одного клиента не пересекаются: активное бронирование у другого
	// специалиста блокирует пересекающиеся слоты независимо от занятости
	// запрошенного специалиста
	reqEnd := req.StartSlot + req.DurationSlots
	for _, b := range clientBookings {
		if b.SpecialistID != req.SpecialistID && b.OverlapsSlots(req.StartSlot, reqEnd) {
			uc.logger.Warn("CreateBooking: client=%d already has booking id=%d with specialist=%d overlapping slots [%d, %d)",
				req.ClientID, b.ID, b.SpecialistID, req.StartSlot, reqEnd)
			return ErrSlotUnavailable
		}
	}

	// 4.5. Дедлайн: слот не должен начинаться раньше допустимого времени записи
	deadline := uc.policy.CommitDeadline(now, req.IsSpecialistActor)
	if timetable.SlotTime(party, req.StartSlot).Before(deadline) {
		uc.logger.Warn("CreateBooking: slot=%d on party=%s starts before deadline %s",
			req.StartSlot, req.PartyKey, deadline.Format("15:04"))
		return ErrDeadlineExceeded
	}

	// 4.6. Вставка
	booking := &domain.Booking{
		SpecialistID: req.SpecialistID,
		ClientID:     req.ClientID,
		PartyKey:     req.PartyKey,
		StartSlot:    req.StartSlot,
		LengthSlots:  req.DurationSlots,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			// Подстраховочный уникальный индекс сработал раньше нас
			return ErrSlotUnavailable
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	*result = created
	return nil
}

// slotBookable проверяет, что запрошенный старт входит в свежую доступность
// специалиста, либо целиком накрыт собственными слотами клиента у того же
// специалиста (допуск на перезапись своего же сеанса)
func (uc *UseCase) slotBookable(
	free map[int]map[int64]struct{},
	req *Request,
	clientBookings []*domain.Booking,
) bool {
	if _, ok := free[req.StartSlot][req.SpecialistID]; ok {
		return true
	}

	// Допуск самоперезаписи: каждый запрошенный слот принадлежит клиенту
	// у того же специалиста
	for offset := 0; offset < req.DurationSlots; offset++ {
		slot := req.StartSlot + offset
		covered := false
		for _, b := range clientBookings {
			if b.SpecialistID == req.SpecialistID && b.CoversSlot(slot) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
