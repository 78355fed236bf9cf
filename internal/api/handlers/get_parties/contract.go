package get_parties

import "github.com/znsteam/ZNS-MassageService/internal/domain"

type Roster interface {
	Parties() []*domain.Party
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
