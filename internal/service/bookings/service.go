package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
	bookingRepo "github.com/znsteam/ZNS-MassageService/internal/infra/storage/booking"
	"github.com/znsteam/ZNS-MassageService/internal/service/bookings/models"
	rosterService "github.com/znsteam/ZNS-MassageService/internal/service/roster"
)

// Service сервис для работы с существующими бронированиями:
// отмена, списки, учет уведомлений
type Service struct {
	bookingRepo BookingRepository
	roster      Roster
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, roster Roster, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		roster:      roster,
		logger:      logger,
	}
}

// Cancel отменяет бронирование
// Клиент может отменить только своё бронирование; специалист - любое своё.
// Повторная отмена уже отмененного бронирования считается no-op
func (s *Service) Cancel(ctx context.Context, bookingID int64, actorID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%d", bookingID, actorID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.ClientID != actorID && booking.SpecialistID != actorID {
		s.logger.Warn("Cancel: access denied for actor=%d to booking id=%d", actorID, bookingID)
		return ErrAccessDenied
	}

	if !booking.IsActive() {
		s.logger.Info("Cancel: booking id=%d already cancelled", bookingID)
		return nil
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Кто-то отменил между чтением и апдейтом; результат тот же
			s.logger.Info("Cancel: booking id=%d already cancelled concurrently", bookingID)
			return nil
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// GetClientBookings возвращает все бронирования клиента
func (s *Service) GetClientBookings(ctx context.Context, clientID int64) ([]*models.BookingView, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d", clientID)

	bookings, err := s.bookingRepo.GetByClient(ctx, clientID)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	return s.toViews(bookings)
}

// GetSpecialistBookings возвращает активные бронирования специалиста на вечеринке
func (s *Service) GetSpecialistBookings(ctx context.Context, specialistID int64, partyKey string) ([]*models.BookingView, error) {
	s.logger.Info("GetSpecialistBookings: specialist=%d, party=%s", specialistID, partyKey)

	if _, err := s.roster.Specialist(specialistID); err != nil {
		s.logger.Warn("GetSpecialistBookings: specialist id=%d not found", specialistID)
		return nil, fmt.Errorf("%w: unknown specialist", ErrInvalidInput)
	}
	if _, err := s.roster.Party(partyKey); err != nil {
		s.logger.Warn("GetSpecialistBookings: party %q not found", partyKey)
		return nil, fmt.Errorf("%w: unknown party", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetActiveBySpecialistAndParty(ctx, specialistID, partyKey)
	if err != nil {
		s.logger.Error("GetSpecialistBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSpecialistBookings - repository error: %v", ErrInternal, err)
	}

	return s.toViews(bookings)
}

// MarkClientNotified отмечает бронирование как доведенное до клиента
func (s *Service) MarkClientNotified(ctx context.Context, bookingID int64) error {
	if err := s.bookingRepo.MarkClientNotified(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: MarkClientNotified - repository error: %v", ErrInternal, err)
	}
	return nil
}

// MarkSpecialistNotified отмечает бронирование как доведенное до специалиста
func (s *Service) MarkSpecialistNotified(ctx context.Context, bookingID int64) error {
	if err := s.bookingRepo.MarkSpecialistNotified(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: MarkSpecialistNotified - repository error: %v", ErrInternal, err)
	}
	return nil
}

// ListPendingSpecialistNotifications возвращает бронирования вечеринки,
// о которых еще не уведомлены специалисты, подписанные на уведомления.
// Читается внешним рассыльщиком; сам движок ничего не шлет
func (s *Service) ListPendingSpecialistNotifications(ctx context.Context, partyKey string) ([]*models.BookingView, error) {
	if _, err := s.roster.Party(partyKey); err != nil {
		return nil, fmt.Errorf("%w: unknown party", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListUnnotified(ctx, partyKey, true)
	if err != nil {
		s.logger.Error("ListPendingSpecialistNotifications: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPendingSpecialistNotifications - repository error: %v", ErrInternal, err)
	}

	subscribed := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		sp, err := s.roster.Specialist(b.SpecialistID)
		if err != nil {
			continue
		}
		if sp.NotifyOnBooking {
			subscribed = append(subscribed, b)
		}
	}

	return s.toViews(subscribed)
}

// ListPendingClientNotifications возвращает бронирования вечеринки,
// о которых еще не уведомлены клиенты
func (s *Service) ListPendingClientNotifications(ctx context.Context, partyKey string) ([]*models.BookingView, error) {
	if _, err := s.roster.Party(partyKey); err != nil {
		return nil, fmt.Errorf("%w: unknown party", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListUnnotified(ctx, partyKey, false)
	if err != nil {
		s.logger.Error("ListPendingClientNotifications: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPendingClientNotifications - repository error: %v", ErrInternal, err)
	}

	return s.toViews(bookings)
}

// toViews конвертирует бронирования в представления с вычисленными временами
func (s *Service) toViews(bookings []*domain.Booking) ([]*models.BookingView, error) {
	views := make([]*models.BookingView, 0, len(bookings))

	for _, b := range bookings {
		party, err := s.roster.Party(b.PartyKey)
		if err != nil {
			if errors.Is(err, rosterService.ErrPartyNotFound) {
				// Бронирование прошлой вечеринки, выведенной из конфигурации
				s.logger.Warn("toViews: booking id=%d references unknown party %q, skipping", b.ID, b.PartyKey)
				continue
			}
			return nil, fmt.Errorf("%w: toViews - roster error: %v", ErrInternal, err)
		}

		name := ""
		if sp, err := s.roster.Specialist(b.SpecialistID); err == nil {
			name = sp.Name
		}

		views = append(views, models.FromDomainBooking(b, party, name))
	}

	return views, nil
}
