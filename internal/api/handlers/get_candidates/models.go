package get_candidates

import (
	"time"

	getCandidates "github.com/znsteam/ZNS-MassageService/internal/usecase/get_candidates"
)

// CandidateResponse одно окно-кандидат в HTTP ответе
type CandidateResponse struct {
	SpecialistID int64  `json:"specialistId"`
	StartSlot    int    `json:"startSlot"`
	Start        string `json:"start"`
	End          string `json:"end"`
}

// GetCandidatesResponse HTTP response model
type GetCandidatesResponse struct {
	PartyKey   string              `json:"partyKey"`
	Candidates []CandidateResponse `json:"candidates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCandidates.Response) *GetCandidatesResponse {
	candidates := make([]CandidateResponse, 0, len(resp.Candidates))
	for _, c := range resp.Candidates {
		candidates = append(candidates, CandidateResponse{
			SpecialistID: c.SpecialistID,
			StartSlot:    c.StartSlot,
			Start:        c.Start.Format(time.RFC3339),
			End:          c.End.Format(time.RFC3339),
		})
	}

	return &GetCandidatesResponse{
		PartyKey:   resp.PartyKey,
		Candidates: candidates,
	}
}
