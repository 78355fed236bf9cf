package get_specialist_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/znsteam/ZNS-MassageService/internal/api/handlers"
	"github.com/znsteam/ZNS-MassageService/internal/api/middleware"
	"github.com/znsteam/ZNS-MassageService/internal/service/bookings"
)

const (
	msgMissingAuth         = "не удалось определить пользователя"
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgMissingParty        = "не указана вечеринка, ожидается параметр party"
	msgAccessDenied        = "нет доступа к расписанию этого специалиста"
	msgUnknownPartyOrSpec  = "специалист или вечеринка не найдены"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/specialists/{specialistId}/bookings?party=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingAuth)
		return
	}

	specialistID, err := strconv.ParseInt(mux.Vars(r)["specialistId"], 10, 64)
	if err != nil || specialistID <= 0 {
		h.logger.Warn("GET /specialists/{id}/bookings - invalid specialist id: %q", mux.Vars(r)["specialistId"])
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	partyKey := r.URL.Query().Get("party")
	if partyKey == "" {
		h.logger.Warn("GET /specialists/%d/bookings - missing party parameter", specialistID)
		handlers.RespondBadRequest(w, msgMissingParty)
		return
	}

	// Специалист видит только собственное расписание
	if specialistID != actorID {
		h.logger.Warn("GET /specialists/%d/bookings - access denied for actor=%d", specialistID, actorID)
		handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)
		return
	}

	views, err := h.service.GetSpecialistBookings(r.Context(), specialistID, partyKey)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /specialists/%d/bookings - unknown specialist or party %q", specialistID, partyKey)
			handlers.RespondNotFound(w, msgUnknownPartyOrSpec)

		default:
			h.logger.Error("GET /specialists/%d/bookings - failed: %v", specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/%d/bookings - returned %d bookings for party=%s", specialistID, len(views), partyKey)
	handlers.RespondJSON(w, http.StatusOK, FromViews(specialistID, partyKey, views))
}
