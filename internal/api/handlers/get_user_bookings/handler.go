package get_user_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/znsteam/ZNS-MassageService/internal/api/handlers"
	"github.com/znsteam/ZNS-MassageService/internal/api/middleware"
)

const (
	msgMissingAuth   = "не удалось определить пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
	msgAccessDenied  = "нет доступа к бронированиям этого пользователя"
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

// Handle GET /api/v1/users/{userId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingAuth)
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		h.logger.Warn("GET /users/{id}/bookings - invalid user id: %q", mux.Vars(r)["userId"])
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Клиент видит только собственные бронирования
	if userID != actorID {
		h.logger.Warn("GET /users/%d/bookings - access denied for actor=%d", userID, actorID)
		handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)
		return
	}

	views, err := h.service.GetClientBookings(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/%d/bookings - failed: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/%d/bookings - returned %d bookings", userID, len(views))
	handlers.RespondJSON(w, http.StatusOK, FromViews(views))
}
