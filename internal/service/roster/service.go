package roster

import (
	"context"
	"fmt"
	"sync"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
)

// Service хранит загруженную конфигурацию расписания: вечеринки и специалистов.
// Конфигурация читается один раз на старте и валидируется; в рантайме
// мутируют только флаги уведомлений специалистов
type Service struct {
	repo   RosterRepository
	logger Logger

	mu          sync.RWMutex
	parties     map[string]*domain.Party
	partyOrder  []string
	specialists map[int64]*domain.Specialist
	order       []int64
}

// NewService создает новый экземпляр сервиса конфигурации расписания
func NewService(repo RosterRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Load загружает и валидирует конфигурацию
// Ошибка валидации фатальна: сервис не должен стартовать с конфигурацией,
// которую движок не умеет корректно обслуживать
func (s *Service) Load(ctx context.Context) error {
	parties, err := s.repo.GetParties(ctx)
	if err != nil {
		return fmt.Errorf("%w: Load - failed to get parties: %v", ErrInternal, err)
	}

	specialists, err := s.repo.GetSpecialists(ctx)
	if err != nil {
		return fmt.Errorf("%w: Load - failed to get specialists: %v", ErrInternal, err)
	}

	if err := validate(parties, specialists); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.parties = make(map[string]*domain.Party, len(parties))
	s.partyOrder = make([]string, 0, len(parties))
	for _, p := range parties {
		s.parties[p.Key] = p
		s.partyOrder = append(s.partyOrder, p.Key)
	}

	s.specialists = make(map[int64]*domain.Specialist, len(specialists))
	s.order = make([]int64, 0, len(specialists))
	for _, sp := range specialists {
		s.specialists[sp.ID] = sp
		s.order = append(s.order, sp.ID)
	}

	s.logger.Info("Roster loaded: %d parties, %d specialists", len(parties), len(specialists))
	return nil
}

// Party возвращает вечеринку по ключу
func (s *Service) Party(key string) (*domain.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	party, ok := s.parties[key]
	if !ok {
		return nil, ErrPartyNotFound
	}
	return party, nil
}

// Parties возвращает все вечеринки в порядке их начала
func (s *Service) Parties() []*domain.Party {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parties := make([]*domain.Party, 0, len(s.partyOrder))
	for _, key := range s.partyOrder {
		parties = append(parties, s.parties[key])
	}
	return parties
}

// Specialist возвращает специалиста по ID
func (s *Service) Specialist(id int64) (*domain.Specialist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.specialists[id]
	if !ok {
		return nil, ErrSpecialistNotFound
	}
	return sp, nil
}

// Specialists возвращает всех специалистов в стабильном порядке
func (s *Service) Specialists() []*domain.Specialist {
	s.mu.RLock()
	defer s.mu.RUnlock()

	specialists := make([]*domain.Specialist, 0, len(s.order))
	for _, id := range s.order {
		specialists = append(specialists, s.specialists[id])
	}
	return specialists
}

// SetNotifyFlags обновляет флаги уведомлений специалиста в БД и кеше
func (s *Service) SetNotifyFlags(ctx context.Context, specialistID int64, notifyOnBooking, notifyBeforeSession bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.specialists[specialistID]
	if !ok {
		return ErrSpecialistNotFound
	}

	if err := s.repo.UpdateNotifyFlags(ctx, specialistID, notifyOnBooking, notifyBeforeSession); err != nil {
		s.logger.Error("SetNotifyFlags: failed to update specialist id=%d: %v", specialistID, err)
		return fmt.Errorf("%w: SetNotifyFlags - repository error: %v", ErrInternal, err)
	}

	sp.NotifyOnBooking = notifyOnBooking
	sp.NotifyBeforeSession = notifyBeforeSession

	s.logger.Info("SetNotifyFlags: specialist id=%d, on_booking=%t, before_session=%t",
		specialistID, notifyOnBooking, notifyBeforeSession)
	return nil
}

// validate проверяет инварианты конфигурации
func validate(parties []*domain.Party, specialists []*domain.Specialist) error {
	partyKeys := make(map[string]*domain.Party, len(parties))

	for _, p := range parties {
		if !p.IsValid() {
			return fmt.Errorf("%w: party %q", ErrInvalidParty, p.Key)
		}
		if _, dup := partyKeys[p.Key]; dup {
			return fmt.Errorf("%w: duplicate party key %q", ErrInvalidParty, p.Key)
		}
		partyKeys[p.Key] = p
	}

	tableRequiredCount := 0
	for _, sp := range specialists {
		if sp.TableRequired {
			tableRequiredCount++
		}

		if sp.MinDurationSlots < domain.MinDurationSlotsLimit ||
			sp.MaxDurationSlots > domain.MaxDurationSlotsLimit ||
			sp.MinDurationSlots > sp.MaxDurationSlots {
			return fmt.Errorf("%w: specialist id=%d", ErrInvalidDurationBounds, sp.ID)
		}

		if err := validateWindows(sp, partyKeys); err != nil {
			return err
		}
	}

	// Вместимость стола между 1 и числом "столовых" специалистов движок
	// разрешать не умеет; отказ на старте вместо неопределенного поведения
	// на запросах
	for _, p := range parties {
		if p.TableCapacity > 1 && p.TableCapacity < tableRequiredCount {
			return fmt.Errorf("%w: party %q has capacity %d with %d table-required specialists",
				ErrUnsupportedTableCapacity, p.Key, p.TableCapacity, tableRequiredCount)
		}
	}

	return nil
}

func validateWindows(sp *domain.Specialist, parties map[string]*domain.Party) error {
	for i := range sp.WorkWindows {
		w := &sp.WorkWindows[i]

		if !w.StartsAt.Before(w.EndsAt) {
			return fmt.Errorf("%w: specialist id=%d window id=%d", ErrInvalidWindow, sp.ID, w.ID)
		}
		if _, ok := parties[w.PartyKey]; !ok {
			return fmt.Errorf("%w: specialist id=%d window id=%d party %q",
				ErrUnknownPartyKey, sp.ID, w.ID, w.PartyKey)
		}

		for j := i + 1; j < len(sp.WorkWindows); j++ {
			other := &sp.WorkWindows[j]
			if w.PartyKey == other.PartyKey && w.Overlaps(other) {
				return fmt.Errorf("%w: specialist id=%d windows id=%d and id=%d",
					ErrOverlappingWindows, sp.ID, w.ID, other.ID)
			}
		}
	}
	return nil
}
