package reservation

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/mesa-scheduler/internal/audit"
	"github.com/BruksfildServices01/mesa-scheduler/internal/clock"
	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

// ======================================================
// REPOSITORY
// ======================================================

type mockRepo struct {
	mock.Mock
}

var _ domain.Repository = (*mockRepo)(nil)

func (m *mockRepo) GetRestaurantByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Restaurant), args.Error(1)
}

func (m *mockRepo) GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Restaurant), args.Error(1)
}

func (m *mockRepo) ListShifts(ctx context.Context, restaurantID uint) ([]models.Shift, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]models.Shift), args.Error(1)
}

func (m *mockRepo) ListTables(ctx context.Context, restaurantID uint) ([]models.Table, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]models.Table), args.Error(1)
}

func (m *mockRepo) ListReservationsForDate(ctx context.Context, restaurantID uint, date string) ([]models.Reservation, error) {
	args := m.Called(ctx, restaurantID, date)
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *mockRepo) GetOrCreateCustomer(ctx context.Context, restaurantID uint, name, phone, email string) (*models.Customer, error) {
	args := m.Called(ctx, restaurantID, name, phone, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *mockRepo) ReservationCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) CreateReservation(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRepo) GetReservation(ctx context.Context, restaurantID, id uint) (*models.Reservation, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *mockRepo) GetReservationByCode(ctx context.Context, restaurantID uint, code string) (*models.Reservation, error) {
	args := m.Called(ctx, restaurantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *mockRepo) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRepo) UpdateReservationStatus(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

// WithinBookingLock roda fn com o próprio mock como transação.
func (m *mockRepo) WithinBookingLock(ctx context.Context, restaurantID uint, date string, fn func(tx domain.Repository) error) error {
	if err := m.Called(ctx, restaurantID, date).Error(0); err != nil {
		return err
	}
	return fn(m)
}

// ======================================================
// AUDITOR / CACHE / STORAGE
// ======================================================

type fakeAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (f *fakeAuditor) Dispatch(ev audit.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeAuditor) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, ev := range f.events {
		out[i] = ev.Action
	}
	return out
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, restaurantID uint, date string, partySize int) ([]availability.ShiftSlots, bool, error) {
	args := m.Called(ctx, restaurantID, date, partySize)
	var v []availability.ShiftSlots
	if got := args.Get(0); got != nil {
		v = got.([]availability.ShiftSlots)
	}
	return v, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, restaurantID uint, date string, partySize int, value []availability.ShiftSlots) error {
	return m.Called(ctx, restaurantID, date, partySize, value).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, restaurantID uint, date string) error {
	return m.Called(ctx, restaurantID, date).Error(0)
}

type fakeStorage struct {
	key         string
	body        []byte
	contentType string
	err         error
}

func (f *fakeStorage) Put(_ context.Context, key string, body []byte, contentType string) error {
	f.key, f.body, f.contentType = key, body, contentType
	return f.err
}

// ======================================================
// FIXTURES
// ======================================================

// 2026-10-20 é uma terça-feira.
const tuesday = "2026-10-20"

var mondayNoon = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func testRestaurant() *models.Restaurant {
	return &models.Restaurant{
		ID:                      1,
		Name:                    "Cantina",
		Slug:                    "cantina",
		Timezone:                "UTC",
		MaxPartySize:            12,
		BookingCutoffHours:      2,
		CancellationCutoffHours: 24,
		ModificationCutoffHours: 24,
		EnableTableJoining:      true,
	}
}

func testDinner() models.Shift {
	return models.Shift{
		ID:                   2,
		RestaurantID:         1,
		Name:                 "Jantar",
		StartTime:            "19:00",
		EndTime:              "22:00",
		SlotIntervalMinutes:  30,
		DefaultDwellMinutes:  120,
		DefaultBufferMinutes: 15,
		DaysOfWeek:           []int{2, 3, 4, 5, 6},
		Active:               true,
	}
}

func testTables() []models.Table {
	mk := func(id uint, seats int) models.Table {
		return models.Table{
			ID:           id,
			RestaurantID: 1,
			Name:         "Mesa",
			Seats:        seats,
			IsActive:     true,
			Status:       models.TableStatusAvailable,
		}
	}
	return []models.Table{mk(1, 2), mk(2, 4), mk(3, 6)}
}

func testReservation(id, tableID uint, status string) *models.Reservation {
	return &models.Reservation{
		ID:              id,
		RestaurantID:    1,
		ShiftID:         2,
		TableID:         tableID,
		Date:            tuesday,
		SlotTime:        "20:00",
		PartySize:       2,
		Status:          status,
		Source:          models.SourcePhone,
		ReservationCode: "ABCD2345",
		Customer:        models.Customer{Name: "Ana", Phone: "11999990000"},
	}
}

type fixture struct {
	repo    *mockRepo
	auditor *fakeAuditor
	clock   *clock.MockClock
	deps    *Deps
}

func newFixture() *fixture {
	f := &fixture{
		repo:    new(mockRepo),
		auditor: &fakeAuditor{},
		clock:   clock.NewMockClock(mondayNoon),
	}
	f.deps = &Deps{
		Repo:   f.repo,
		Audit:  f.auditor,
		Clock:  f.clock,
		Logger: zerolog.New(io.Discard),
	}
	return f
}

// snapshot registra o retrato que o motor lê para a data.
func (f *fixture) snapshot(existing ...models.Reservation) {
	f.repo.On("ListShifts", mock.Anything, uint(1)).Return([]models.Shift{testDinner()}, nil)
	f.repo.On("ListTables", mock.Anything, uint(1)).Return(testTables(), nil)
	if existing == nil {
		existing = []models.Reservation{}
	}
	f.repo.On("ListReservationsForDate", mock.Anything, uint(1), tuesday).Return(existing, nil)
}

func ptr[T any](v T) *T { return &v }
