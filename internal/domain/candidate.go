package domain

import "time"

// Candidate предлагаемое клиенту окно для записи
type Candidate struct {
	SpecialistID int64
	StartSlot    int
	Start        time.Time
	End          time.Time
}
