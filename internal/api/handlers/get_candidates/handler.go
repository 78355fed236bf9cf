package get_candidates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/znsteam/ZNS-MassageService/internal/api/handlers"
	"github.com/znsteam/ZNS-MassageService/internal/api/middleware"
	getCandidates "github.com/znsteam/ZNS-MassageService/internal/usecase/get_candidates"
)

const (
	msgMissingAuth          = "не удалось определить пользователя"
	msgInvalidDuration      = "некорректная длительность сеанса, ожидается durationSlots > 0"
	msgInvalidSpecialistID  = "некорректный ID специалиста"
	msgPartyNotFound        = "вечеринка не найдена"
	msgSpecialistNotFound   = "специалист не найден"
	msgInvalidRequestParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetCandidatesUseCase
	logger  Logger
}

func NewHandler(useCase GetCandidatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/parties/{partyKey}/candidates?durationSlots=&specialistId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingAuth)
		return
	}

	partyKey := mux.Vars(r)["partyKey"]

	durationSlots, err := strconv.Atoi(r.URL.Query().Get("durationSlots"))
	if err != nil || durationSlots <= 0 {
		h.logger.Warn("GET /parties/%s/candidates - invalid durationSlots: %q", partyKey, r.URL.Query().Get("durationSlots"))
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	// Опциональный фильтр по специалисту
	var specialistID *int64
	if raw := r.URL.Query().Get("specialistId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /parties/%s/candidates - invalid specialistId: %q", partyKey, raw)
			handlers.RespondBadRequest(w, msgInvalidSpecialistID)
			return
		}
		specialistID = &id
	}

	// Специалист, подбирающий окно у самого себя, действует как walk-in
	isSpecialistActor := specialistID != nil && *specialistID == actorID

	result, err := h.useCase.Execute(r.Context(), &getCandidates.Request{
		ClientID:          actorID,
		PartyKey:          partyKey,
		SpecialistID:      specialistID,
		DurationSlots:     durationSlots,
		IsSpecialistActor: isSpecialistActor,
	})
	if err != nil {
		switch {
		case errors.Is(err, getCandidates.ErrPartyNotFound):
			h.logger.Warn("GET /parties/%s/candidates - party not found", partyKey)
			handlers.RespondNotFound(w, msgPartyNotFound)

		case errors.Is(err, getCandidates.ErrSpecialistNotFound):
			h.logger.Warn("GET /parties/%s/candidates - specialist not found", partyKey)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, getCandidates.ErrInvalidInput):
			h.logger.Warn("GET /parties/%s/candidates - invalid input: %v", partyKey, err)
			handlers.RespondBadRequest(w, msgInvalidRequestParams)

		default:
			h.logger.Error("GET /parties/%s/candidates - failed: user_id=%d, error=%v", partyKey, actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /parties/%s/candidates - found %d candidates: user_id=%d, duration=%d",
		partyKey, len(result.Candidates), actorID, durationSlots)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
