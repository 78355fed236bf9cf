package get_candidates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
	rosterService "github.com/znsteam/ZNS-MassageService/internal/service/roster"
	"github.com/znsteam/ZNS-MassageService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ at time.Time }

func (p fixedTime) Now() time.Time { return p.at }

type fakeRoster struct {
	parties     map[string]*domain.Party
	specialists map[int64]*domain.Specialist
	order       []int64
}

func (f *fakeRoster) Party(key string) (*domain.Party, error) {
	p, ok := f.parties[key]
	if !ok {
		return nil, rosterService.ErrPartyNotFound
	}
	return p, nil
}

func (f *fakeRoster) Specialist(id int64) (*domain.Specialist, error) {
	sp, ok := f.specialists[id]
	if !ok {
		return nil, rosterService.ErrSpecialistNotFound
	}
	return sp, nil
}

func (f *fakeRoster) Specialists() []*domain.Specialist {
	all := make([]*domain.Specialist, 0, len(f.order))
	for _, id := range f.order {
		all = append(all, f.specialists[id])
	}
	return all
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByParty(_ context.Context, partyKey string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.PartyKey == partyKey && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetActiveByClientAndParty(_ context.Context, clientID int64, partyKey string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.PartyKey == partyKey && b.ClientID == clientID && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func newFixture() (*UseCase, *fakeBookingRepo, *domain.Party) {
	party := &domain.Party{
		Key:           "friday",
		StartsAt:      time.Date(2026, 9, 4, 20, 0, 0, 0, time.UTC),
		EndsAt:        time.Date(2026, 9, 5, 6, 0, 0, 0, time.UTC),
		TableCapacity: 1,
	}

	fullNight := func(id int64) []domain.WorkWindow {
		return []domain.WorkWindow{
			{ID: id, SpecialistID: id, PartyKey: "friday", StartsAt: party.StartsAt, EndsAt: party.EndsAt},
		}
	}

	roster := &fakeRoster{
		parties: map[string]*domain.Party{"friday": party},
		specialists: map[int64]*domain.Specialist{
			10: {ID: 10, Name: "Anna", MinDurationSlots: 1, MaxDurationSlots: 6, WorkWindows: fullNight(10)},
			20: {ID: 20, Name: "Boris", MinDurationSlots: 2, MaxDurationSlots: 3, WorkWindows: fullNight(20)},
		},
		order: []int64{10, 20},
	}

	repo := &fakeBookingRepo{}
	uc := NewUseCase(repo, roster, domain.DefaultBookingPolicy(), nopLogger{})
	uc.timeProvider = fixedTime{at: time.Date(2026, 9, 4, 18, 0, 0, 0, time.UTC)}

	return uc, repo, party
}

func TestExecute_AllSpecialists(t *testing.T) {
	uc, _, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:      100,
		PartyKey:      "friday",
		DurationSlots: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, "friday", resp.PartyKey)
	require.NotEmpty(t, resp.Candidates)

	seen := make(map[int64]bool)
	for i, c := range resp.Candidates {
		seen[c.SpecialistID] = true
		if i > 0 {
			assert.False(t, c.Start.Before(resp.Candidates[i-1].Start), "candidates must be sorted by start")
		}
	}
	assert.True(t, seen[10])
	assert.True(t, seen[20])
}

func TestExecute_SpecialistFilter(t *testing.T) {
	uc, _, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:      100,
		PartyKey:      "friday",
		SpecialistID:  ptr.Ptr(int64(20)),
		DurationSlots: 2,
	})

	require.NoError(t, err)
	for _, c := range resp.Candidates {
		assert.Equal(t, int64(20), c.SpecialistID)
	}
}

func TestExecute_DurationFiltersSpecialists(t *testing.T) {
	uc, _, _ := newFixture()

	// Длительность 5 принимает только специалист 10
	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:      100,
		PartyKey:      "friday",
		DurationSlots: 5,
	})

	require.NoError(t, err)
	for _, c := range resp.Candidates {
		assert.Equal(t, int64(10), c.SpecialistID)
	}

	// Фильтр по специалисту, не принимающему длительность: пустой ответ
	resp, err = uc.Execute(context.Background(), &Request{
		ClientID:      100,
		PartyKey:      "friday",
		SpecialistID:  ptr.Ptr(int64(20)),
		DurationSlots: 5,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)
}

func TestExecute_OwnBookingExcluded(t *testing.T) {
	uc, repo, _ := newFixture()

	// Собственный сеанс клиента в слотах 10..12 у специалиста 20
	repo.bookings = []*domain.Booking{
		{ID: 1, SpecialistID: 20, ClientID: 100, PartyKey: "friday", StartSlot: 10, LengthSlots: 3},
	}

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:      100,
		PartyKey:      "friday",
		DurationSlots: 2,
	})

	require.NoError(t, err)
	for _, c := range resp.Candidates {
		overlap := c.StartSlot < 13 && 10 < c.StartSlot+2
		assert.False(t, overlap, "candidate at slot %d overlaps the client's own booking", c.StartSlot)
	}
}

func TestExecute_NotFoundAndValidation(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		ClientID: 100, PartyKey: "sunday", DurationSlots: 1,
	})
	assert.ErrorIs(t, err, ErrPartyNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		ClientID: 100, PartyKey: "friday", SpecialistID: ptr.Ptr(int64(99)), DurationSlots: 1,
	})
	assert.ErrorIs(t, err, ErrSpecialistNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		ClientID: 100, PartyKey: "friday", DurationSlots: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
