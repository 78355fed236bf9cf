package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/znsteam/ZNS-MassageService/internal/domain"
	rosterService "github.com/znsteam/ZNS-MassageService/internal/service/roster"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ at time.Time }

func (p fixedTime) Now() time.Time { return p.at }

// fakeTxManager просто вызывает fn: сериализуемость в юнит-тестах
// обеспечивает глобальный замок use case
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRoster struct {
	parties     map[string]*domain.Party
	specialists map[int64]*domain.Specialist
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
	all := make([]*domain.Specialist, 0, len(f.specialists))
	for _, sp := range f.specialists {
		all = append(all, sp)
	}
	return all
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
	creates  int
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creates++
	f.nextID++
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Date(2026, 9, 4, 12, 0, 0, 0, time.UTC)
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) GetActiveByParty(_ context.Context, partyKey string) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.PartyKey == partyKey && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetActiveByClientAndParty(_ context.Context, clientID int64, partyKey string) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.PartyKey == partyKey && b.ClientID == clientID && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

// Вечеринка пятницы 20:00 - 06:00; специалист 10 работает всю ночь
func newFixture() (*UseCase, *fakeBookingRepo, *domain.Party) {
	party := &domain.Party{
		Key:           "friday",
		StartsAt:      time.Date(2026, 9, 4, 20, 0, 0, 0, time.UTC),
		EndsAt:        time.Date(2026, 9, 5, 6, 0, 0, 0, time.UTC),
		TableCapacity: 1,
	}

	sp := &domain.Specialist{
		ID:               10,
		Name:             "Anna",
		MinDurationSlots: 1,
		MaxDurationSlots: 6,
		WorkWindows: []domain.WorkWindow{
			{ID: 1, SpecialistID: 10, PartyKey: "friday", StartsAt: party.StartsAt, EndsAt: party.EndsAt},
		},
	}

	roster := &fakeRoster{
		parties:     map[string]*domain.Party{"friday": party},
		specialists: map[int64]*domain.Specialist{10: sp},
	}

	repo := &fakeBookingRepo{}
	uc := NewUseCase(repo, roster, fakeTxManager{}, domain.DefaultBookingPolicy(), nopLogger{})
	// За два часа до вечеринки: дедлайн клиента не мешает ни одному слоту
	uc.timeProvider = fixedTime{at: time.Date(2026, 9, 4, 18, 0, 0, 0, time.UTC)}

	return uc, repo, party
}

func TestExecute_Success(t *testing.T) {
	uc, repo, party := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:      100,
		SpecialistID:  10,
		PartyKey:      "friday",
		StartSlot:     3,
		DurationSlots: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, 3, resp.StartSlot)
	assert.Equal(t, 3, resp.LengthSlots)
	assert.Equal(t, party.StartsAt.Add(time.Hour), resp.Start)
	assert.Equal(t, party.StartsAt.Add(2*time.Hour).Add(-domain.Buffer), resp.End)
	assert.Equal(t, 1, repo.creates)
}

func TestExecute_IdenticalBookingIsIdempotent(t *testing.T) {
	uc, repo, _ := newFixture()

	req := &Request{
		ClientID:      100,
		SpecialistID:  10,
		PartyKey:      "friday",
		StartSlot:     3,
		DurationSlots: 3,
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.BookingID, second.BookingID)
	assert.Equal(t, 1, repo.creates, "repeated request must not insert a second row")
}

func TestExecute_SlotUnavailable(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 10, PartyKey: "friday", StartSlot: 3, DurationSlots: 3,
	})
	require.NoError(t, err)

	// Другой клиент на пересекающийся диапазон
	_, err = uc.Execute(context.Background(), &Request{
		ClientID: 200, SpecialistID: 10, PartyKey: "friday", StartSlot: 4, DurationSlots: 2,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_DailyCap(t *testing.T) {
	uc, _, _ := newFixture()

	for slot := 0; slot < 2; slot++ {
		_, err := uc.Execute(context.Background(), &Request{
			ClientID: 100, SpecialistID: 10, PartyKey: "friday", StartSlot: slot * 6, DurationSlots: 2,
		})
		require.NoError(t, err)
	}

	_, err := uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 10, PartyKey: "friday", StartSlot: 20, DurationSlots: 2,
	})
	assert.ErrorIs(t, err, ErrTooManyBookings)
}

func TestExecute_SpecialistActorBypassesDailyCap(t *testing.T) {
	uc, _, _ := newFixture()

	for slot := 0; slot < 3; slot++ {
		_, err := uc.Execute(context.Background(), &Request{
			ClientID:          100,
			SpecialistID:      10,
			PartyKey:          "friday",
			StartSlot:         slot * 6,
			DurationSlots:     2,
			IsSpecialistActor: true,
		})
		require.NoError(t, err, "slot %d", slot*6)
	}
}

func TestExecute_DeadlineExceeded(t *testing.T) {
	uc, _, party := newFixture()

	// Сейчас 20:30, дедлайн клиента 21:00: слот 2 (20:40) уже недоступен
	uc.timeProvider = fixedTime{at: party.StartsAt.Add(30 * time.Minute)}

	_, err := uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 10, PartyKey: "friday", StartSlot: 2, DurationSlots: 2,
	})
	assert.ErrorIs(t, err, ErrDeadlineExceeded)

	// Слот 3 (21:00) ровно на дедлайне - проходит
	_, err = uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 10, PartyKey: "friday", StartSlot: 3, DurationSlots: 2,
	})
	assert.NoError(t, err)
}

func TestExecute_SpecialistFlyover(t *testing.T) {
	uc, _, party := newFixture()

	// Сейчас 20:30: специалист может записать слот, начавшийся до 20 минут назад
	uc.timeProvider = fixedTime{at: party.StartsAt.Add(30 * time.Minute)}

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:          200,
		SpecialistID:      10,
		PartyKey:          "friday",
		StartSlot:         1, // 20:20, десять минут назад
		DurationSlots:     2,
		IsSpecialistActor: true,
	})
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		ClientID:          300,
		SpecialistID:      10,
		PartyKey:          "friday",
		StartSlot:         0, // 20:00, раньше допуска
		DurationSlots:     1,
		IsSpecialistActor: true,
	})
	assert.ErrorIs(t, err, ErrDeadlineExceeded)
}

func TestExecute_SelfRebookingTolerance(t *testing.T) {
	uc, repo, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 10, PartyKey: "friday", StartSlot: 3, DurationSlots: 3,
	})
	require.NoError(t, err)

	// Тот же старт, короче: слоты целиком накрыты собственным сеансом
	resp, err := uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 10, PartyKey: "friday", StartSlot: 3, DurationSlots: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.LengthSlots)
	assert.Equal(t, 2, repo.creates)
}

func TestExecute_ClientOverlapAcrossSpecialists(t *testing.T) {
	uc, repo, party := newFixture()

	uc.roster.(*fakeRoster).specialists[20] = &domain.Specialist{
		ID:               20,
		Name:             "Boris",
		MinDurationSlots: 1,
		MaxDurationSlots: 6,
		WorkWindows: []domain.WorkWindow{
			{ID: 2, SpecialistID: 20, PartyKey: "friday", StartsAt: party.StartsAt, EndsAt: party.EndsAt},
		},
	}

	_, err := uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 20, PartyKey: "friday", StartSlot: 5, DurationSlots: 2,
	})
	require.NoError(t, err)

	// Специалист 10 свободен, но у клиента уже есть сеанс на эти слоты
	// у специалиста 20
	_, err = uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 10, PartyKey: "friday", StartSlot: 5, DurationSlots: 2,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Частичное пересечение тоже блокируется
	_, err = uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 10, PartyKey: "friday", StartSlot: 4, DurationSlots: 2,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, 1, repo.creates)

	// Непересекающееся окно у другого специалиста проходит
	_, err = uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 10, PartyKey: "friday", StartSlot: 7, DurationSlots: 2,
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, repo.creates)
}

func TestExecute_NotFoundAndValidation(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 10, PartyKey: "sunday", StartSlot: 0, DurationSlots: 1,
	})
	assert.ErrorIs(t, err, ErrPartyNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 99, PartyKey: "friday", StartSlot: 0, DurationSlots: 1,
	})
	assert.ErrorIs(t, err, ErrSpecialistNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		ClientID: 100, SpecialistID: 10, PartyKey: "friday", StartSlot: 0, DurationSlots: 7,
	})
	assert.ErrorIs(t, err, ErrUnsupportedDuration)

	_, err = uc.Execute(context.Background(), &Request{
		ClientID: 0, SpecialistID: 10, PartyKey: "friday", StartSlot: 0, DurationSlots: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConcurrentCommitsOnSameSlot(t *testing.T) {
	uc, repo, _ := newFixture()

	results := make(chan error, 2)
	var wg sync.WaitGroup

	for _, clientID := range []int64{100, 200} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{
				ClientID: id, SpecialistID: 10, PartyKey: "friday", StartSlot: 3, DurationSlots: 3,
			})
			results <- err
		}(clientID)
	}

	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotUnavailable):
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one commit must win")
	assert.Equal(t, 1, conflicted)
	assert.Equal(t, 1, repo.creates)
}
