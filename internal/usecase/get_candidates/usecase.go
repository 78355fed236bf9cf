package get_candidates

import (
	"context"
	"errors"
	"fmt"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
	rosterService "github.com/znsteam/ZNS-MassageService/internal/service/roster"
	"github.com/znsteam/ZNS-MassageService/internal/timetable"
)

// UseCase use case подбора окон для записи
// Чистый расчет по снимку бронирований; результат может слегка устареть
// к моменту финализации - там доступность пересчитывается заново под замком
type UseCase struct {
	bookingRepo  BookingRepository
	roster       Roster
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roster Roster,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roster:       roster,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет подбор окон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCandidates: client=%d, party=%s, duration=%d slots, specialist=%v",
		req.ClientID, req.PartyKey, req.DurationSlots, req.SpecialistID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCandidates: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем вечеринку
	party, err := uc.roster.Party(req.PartyKey)
	if err != nil {
		if errors.Is(err, rosterService.ErrPartyNotFound) {
			uc.logger.Warn("GetCandidates: party %q not found", req.PartyKey)
			return nil, ErrPartyNotFound
		}
		return nil, fmt.Errorf("%w: failed to get party: %v", ErrInternal, err)
	}

	// 4. Отбираем специалистов: фильтр по ID и по поддерживаемой длительности
	specialists, err := uc.selectSpecialists(req)
	if err != nil {
		return nil, err
	}
	if len(specialists) == 0 {
		uc.logger.Info("GetCandidates: no specialists accept duration=%d slots", req.DurationSlots)
		return &Response{PartyKey: req.PartyKey, Candidates: []domain.Candidate{}}, nil
	}

	// 5. Снимок бронирований вечеринки
	partyBookings, err := uc.bookingRepo.GetActiveByParty(ctx, req.PartyKey)
	if err != nil {
		uc.logger.Error("GetCandidates: failed to get party bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Собственные бронирования клиента (у любых специалистов)
	clientBookings, err := uc.bookingRepo.GetActiveByClientAndParty(ctx, req.ClientID, req.PartyKey)
	if err != nil {
		uc.logger.Error("GetCandidates: failed to get client bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get client bookings: %v", ErrInternal, err)
	}

	// 7. Конвейер: доступность -> фильтр длительности -> окна-кандидаты
	availability := timetable.ResolveAvailability(
		party,
		specialists,
		timetable.GroupBySpecialist(partyBookings),
		uc.policy.EarlyComerTolerance,
	)

	free := timetable.FilterDuration(availability.Free, req.DurationSlots)

	candidates := timetable.BuildCandidates(free, timetable.CandidateParams{
		Party:          party,
		DurationSlots:  req.DurationSlots,
		FirstBookable:  uc.policy.FirstBookableTime(now, req.IsSpecialistActor),
		ClientBookings: clientBookings,
		MaxWindowSlots: uc.policy.MaxWindowSlots,
	})

	uc.logger.Info("GetCandidates: produced %d candidates for client=%d, party=%s",
		len(candidates), req.ClientID, req.PartyKey)

	return &Response{
		PartyKey:   req.PartyKey,
		Candidates: candidates,
	}, nil
}

// selectSpecialists возвращает специалистов под запрос: либо одного по фильтру,
// либо всех, кто принимает сеансы запрошенной длительности
func (uc *UseCase) selectSpecialists(req *Request) ([]*domain.Specialist, error) {
	if req.SpecialistID != nil {
		sp, err := uc.roster.Specialist(*req.SpecialistID)
		if err != nil {
			if errors.Is(err, rosterService.ErrSpecialistNotFound) {
				uc.logger.Warn("GetCandidates: specialist id=%d not found", *req.SpecialistID)
				return nil, ErrSpecialistNotFound
			}
			return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
		}
		if !sp.SupportsDuration(req.DurationSlots) {
			return []*domain.Specialist{}, nil
		}
		return []*domain.Specialist{sp}, nil
	}

	all := uc.roster.Specialists()
	matched := make([]*domain.Specialist, 0, len(all))
	for _, sp := range all {
		if sp.SupportsDuration(req.DurationSlots) {
			matched = append(matched, sp)
		}
	}
	return matched, nil
}
