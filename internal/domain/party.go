package domain

import "time"

// Party вечеринка - многодневное окно события, в рамках которого
// идет запись на массаж. Вечеринки не пересекаются по времени;
// ключом служит день недели её начала ("friday", "saturday", ...)
type Party struct {
	Key           string
	Title         string
	StartsAt      time.Time
	EndsAt        time.Time
	TableCapacity int
}

// IsValid проверяет базовый инвариант вечеринки
func (p *Party) IsValid() bool {
	return p.Key != "" && p.StartsAt.Before(p.EndsAt) && p.TableCapacity >= 1
}

// Contains проверяет, что момент времени попадает в окно вечеринки
func (p *Party) Contains(t time.Time) bool {
	return !t.Before(p.StartsAt) && t.Before(p.EndsAt)
}
