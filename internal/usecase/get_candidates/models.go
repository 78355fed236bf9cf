package get_candidates

import "github.com/znsteam/ZNS-MassageService/internal/domain"

// Request модель запроса на подбор окон для записи
type Request struct {
	ClientID int64 // ID клиента (его собственные бронирования исключаются)
	PartyKey string

	// SpecialistID фильтр по специалисту; nil - все специалисты
	SpecialistID *int64

	// DurationSlots запрошенная длительность сеанса в слотах
	DurationSlots int

	// IsSpecialistActor true, когда записывает сам специалист (walk-in):
	// для него действует более короткий lead time
	IsSpecialistActor bool
}

// Response модель ответа со списком окон-кандидатов
type Response struct {
	PartyKey   string
	Candidates []domain.Candidate
}
