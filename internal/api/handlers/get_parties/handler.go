package get_parties

import (
	"net/http"

	"github.com/znsteam/ZNS-MassageService/internal/api/handlers"
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

// Handle GET /api/v1/parties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	parties := h.roster.Parties()

	h.logger.Info("GET /parties - returned %d parties", len(parties))
	handlers.RespondJSON(w, http.StatusOK, FromDomainParties(parties))
}
