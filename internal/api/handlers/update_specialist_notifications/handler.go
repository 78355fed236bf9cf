package update_specialist_notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/znsteam/ZNS-MassageService/internal/api/handlers"
	"github.com/znsteam/ZNS-MassageService/internal/api/middleware"
	"github.com/znsteam/ZNS-MassageService/internal/service/roster"
)

const (
	msgMissingAuth         = "не удалось определить пользователя"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgAccessDenied        = "менять уведомления может только сам специалист"
	msgSpecialistNotFound  = "специалист не найден"
)

type Handler struct {
	roster Roster
	logger Logger
}

func NewHandler(roster Roster, logger Logger) *Handler {
	return &Handler{
		roster: roster,
		logger: logger,
	}
}

// Handle PUT /api/v1/specialists/{specialistId}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingAuth)
		return
	}

	specialistID, err := strconv.ParseInt(mux.Vars(r)["specialistId"], 10, 64)
	if err != nil || specialistID <= 0 {
		h.logger.Warn("PUT /specialists/{id}/notifications - invalid specialist id: %q", mux.Vars(r)["specialistId"])
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	if specialistID != actorID {
		h.logger.Warn("PUT /specialists/%d/notifications - access denied for actor=%d", specialistID, actorID)
		handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)
		return
	}

	var req UpdateNotificationsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /specialists/%d/notifications - invalid request body: %v", specialistID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.roster.SetNotifyFlags(r.Context(), specialistID, req.NotifyOnBooking, req.NotifyBeforeSession); err != nil {
		switch {
		case errors.Is(err, roster.ErrSpecialistNotFound):
			h.logger.Warn("PUT /specialists/%d/notifications - specialist not found", specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		default:
			h.logger.Error("PUT /specialists/%d/notifications - failed: %v", specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /specialists/%d/notifications - updated: on_booking=%t, before_session=%t",
		specialistID, req.NotifyOnBooking, req.NotifyBeforeSession)
	handlers.RespondJSON(w, http.StatusOK, UpdateNotificationsResponse{
		SpecialistID:        specialistID,
		NotifyOnBooking:     req.NotifyOnBooking,
		NotifyBeforeSession: req.NotifyBeforeSession,
	})
}
