package get_candidates

import (
	"context"

	getCandidates "github.com/znsteam/ZNS-MassageService/internal/usecase/get_candidates"
)

type GetCandidatesUseCase interface {
	Execute(ctx context.Context, req *getCandidates.Request) (*getCandidates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
