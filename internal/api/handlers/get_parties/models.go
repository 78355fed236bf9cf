package get_parties

import (
	"time"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
	"github.com/znsteam/ZNS-MassageService/internal/timetable"
)

// PartyResponse HTTP модель вечеринки
type PartyResponse struct {
	Key           string `json:"key"`
	Title         string `json:"title"`
	StartsAt      string `json:"startsAt"`
	EndsAt        string `json:"endsAt"`
	TableCapacity int    `json:"tableCapacity"`
	SlotCount     int    `json:"slotCount"`
}

// GetPartiesResponse HTTP response model
type GetPartiesResponse struct {
	Parties []PartyResponse `json:"parties"`
}

// FromDomainParties конвертирует вечеринки в HTTP response
func FromDomainParties(parties []*domain.Party) *GetPartiesResponse {
	items := make([]PartyResponse, 0, len(parties))
	for _, p := range parties {
		items = append(items, PartyResponse{
			Key:           p.Key,
			Title:         p.Title,
			StartsAt:      p.StartsAt.Format(time.RFC3339),
			EndsAt:        p.EndsAt.Format(time.RFC3339),
			TableCapacity: p.TableCapacity,
			SlotCount:     timetable.SlotCount(p),
		})
	}

	return &GetPartiesResponse{Parties: items}
}
