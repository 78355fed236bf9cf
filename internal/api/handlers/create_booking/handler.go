package create_booking

import (
	"errors"
	"net/http"

	"github.com/znsteam/ZNS-MassageService/internal/api/handlers"
	"github.com/znsteam/ZNS-MassageService/internal/api/middleware"
	createBooking "github.com/znsteam/ZNS-MassageService/internal/usecase/create_booking"
)

const (
	msgMissingAuth          = "не удалось определить пользователя"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgBookingForOther      = "записывать другого клиента может только специалист на своё время"
	msgSlotUnavailable      = "выбранный временной слот недоступен"
	msgTooManyBookings      = "достигнут лимит бронирований на эту вечеринку"
	msgDeadlineExceeded     = "слишком поздно для записи на этот слот"
	msgPartyNotFound        = "вечеринка не найдена"
	msgSpecialistNotFound   = "специалист не найден"
	msgUnsupportedDuration  = "специалист не принимает сеансы такой длительности"
	msgInvalidRequestParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingAuth)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Запись чужого клиента разрешена только специалисту на его же время
	if req.ClientID != nil && *req.ClientID != actorID && actorID != req.SpecialistID {
		h.logger.Warn("POST /bookings - actor=%d tried to book for client=%d with specialist=%d",
			actorID, *req.ClientID, req.SpecialistID)
		handlers.RespondError(w, http.StatusForbidden, msgBookingForOther)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actorID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - slot unavailable: actor=%d, specialist=%d, party=%s, slot=%d",
				actorID, req.SpecialistID, req.PartyKey, req.StartSlot)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrTooManyBookings):
			h.logger.Warn("POST /bookings - daily cap reached: actor=%d, party=%s", actorID, req.PartyKey)
			handlers.RespondError(w, http.StatusConflict, msgTooManyBookings)

		case errors.Is(err, createBooking.ErrDeadlineExceeded):
			h.logger.Warn("POST /bookings - deadline exceeded: actor=%d, party=%s, slot=%d",
				actorID, req.PartyKey, req.StartSlot)
			handlers.RespondBadRequest(w, msgDeadlineExceeded)

		case errors.Is(err, createBooking.ErrPartyNotFound):
			h.logger.Warn("POST /bookings - party not found: %s", req.PartyKey)
			handlers.RespondNotFound(w, msgPartyNotFound)

		case errors.Is(err, createBooking.ErrSpecialistNotFound):
			h.logger.Warn("POST /bookings - specialist not found: %d", req.SpecialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, createBooking.ErrUnsupportedDuration):
			h.logger.Warn("POST /bookings - unsupported duration: specialist=%d, duration=%d",
				req.SpecialistID, req.DurationSlots)
			handlers.RespondBadRequest(w, msgUnsupportedDuration)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestParams)

		default:
			h.logger.Error("POST /bookings - failed to create booking: actor=%d, specialist=%d, party=%s, error=%v",
				actorID, req.SpecialistID, req.PartyKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - booking created: booking_id=%d, client=%d, specialist=%d, party=%s, slot=%d",
		result.BookingID, result.ClientID, result.SpecialistID, result.PartyKey, result.StartSlot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
