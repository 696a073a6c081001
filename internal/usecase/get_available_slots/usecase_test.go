package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carservice/internal/domain"
	catalogRepo "carservice/internal/infra/storage/catalog"
)

// --- test doubles ---

type fakeBookingRepo struct {
	bookings []*domain.Booking

	queryFrom time.Time
	queryTo   time.Time
}

func (r *fakeBookingRepo) GetActiveByStationAndService(_ context.Context, _, _ int64, from, to time.Time) ([]*domain.Booking, error) {
	r.queryFrom = from
	r.queryTo = to
	return r.bookings, nil
}

type fakeCatalogRepo struct {
	station *domain.Station
	service *domain.Service
	price   *domain.StationServicePrice
}

func (r *fakeCatalogRepo) GetStationByID(_ context.Context, _ int64) (*domain.Station, error) {
	if r.station == nil {
		return nil, catalogRepo.ErrStationNotFound
	}
	return r.station, nil
}

func (r *fakeCatalogRepo) GetServiceByID(_ context.Context, _ int64) (*domain.Service, error) {
	if r.service == nil {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return r.service, nil
}

func (r *fakeCatalogRepo) GetActivePrice(_ context.Context, _, _ int64) (*domain.StationServicePrice, error) {
	if r.price == nil {
		return nil, catalogRepo.ErrPriceNotFound
	}
	return r.price, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- fixture ---

// Текущее время в тестах: 9 марта 2026, 12:00 UTC; слоты смотрим на завтра
var testNow = time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)

var testDate = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

func tomorrowAt(hour, min int) time.Time {
	return time.Date(2026, time.March, 10, hour, min, 0, 0, time.UTC)
}

func confirmedBookingAt(hour, min, durationMinutes int) *domain.Booking {
	return &domain.Booking{
		StationID:       1,
		ServiceID:       2,
		ScheduledDate:   tomorrowAt(hour, min),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(bookingRepo *fakeBookingRepo) *UseCase {
	catalog := &fakeCatalogRepo{
		station: &domain.Station{ID: 1, Name: "Центральная станция", IsActive: true},
		service: &domain.Service{ID: 2, Name: "Замена масла", EstimatedDurationMinutes: 60, IsActive: true},
		price:   &domain.StationServicePrice{StationID: 1, ServiceID: 2, Price: 3500, IsActive: true},
	}
	uc := NewUseCase(bookingRepo, catalog, domain.DefaultOperatingWindow(), nopLogger{})
	uc.timeProvider = fixedTime{t: testNow}
	return uc
}

func slotByDisplay(t *testing.T, slots []domain.TimeSlot, display string) domain.TimeSlot {
	t.Helper()
	for _, s := range slots {
		if s.DisplayTime == display {
			return s
		}
	}
	t.Fatalf("slot %s not found", display)
	return domain.TimeSlot{}
}

// --- tests ---

func TestUseCase_Execute_FullGrid(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{StationID: 1, ServiceID: 2, Date: testDate})
	require.NoError(t, err)

	// Сетка 8:00-18:00 с шагом 30 минут: ровно 20 слотов
	require.Len(t, resp.Slots, 20)

	assert.Equal(t, "08:00", resp.Slots[0].DisplayTime)
	assert.Equal(t, "17:30", resp.Slots[19].DisplayTime)

	// Сетка упорядочена, без пропусков, конец слота = начало + длительность услуги
	for i, s := range resp.Slots {
		assert.Equal(t, tomorrowAt(8, 0).Add(time.Duration(i)*30*time.Minute), s.StartTime)
		assert.Equal(t, s.StartTime.Add(60*time.Minute), s.EndTime)
		assert.True(t, s.IsAvailable, "slot %s", s.DisplayTime)
	}
}

func TestUseCase_Execute_BookedSlotBlocksNeighbours(t *testing.T) {
	// Бронирование 10:00-11:00 (услуга 60 минут)
	repo := &fakeBookingRepo{bookings: []*domain.Booking{confirmedBookingAt(10, 0, 60)}}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{StationID: 1, ServiceID: 2, Date: testDate})
	require.NoError(t, err)

	// Слоты, чей интервал [start, start+60m) пересекает 10:00-11:00, заняты:
	// 09:30 (конец 10:30), 10:00, 10:30. Граничные 09:00 и 11:00 свободны
	assert.True(t, slotByDisplay(t, resp.Slots, "09:00").IsAvailable)
	assert.False(t, slotByDisplay(t, resp.Slots, "09:30").IsAvailable)
	assert.False(t, slotByDisplay(t, resp.Slots, "10:00").IsAvailable)
	assert.False(t, slotByDisplay(t, resp.Slots, "10:30").IsAvailable)
	assert.True(t, slotByDisplay(t, resp.Slots, "11:00").IsAvailable)
}

func TestUseCase_Execute_PastSlotsUnavailable(t *testing.T) {
	// Запрашиваем слоты на сегодня: все, что не строго в будущем, занято
	uc := newTestUseCase(&fakeBookingRepo{})
	today := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{StationID: 1, ServiceID: 2, Date: today})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 20)

	for _, s := range resp.Slots {
		if !s.StartTime.After(testNow) {
			assert.False(t, s.IsAvailable, "slot %s", s.DisplayTime)
		} else {
			assert.True(t, s.IsAvailable, "slot %s", s.DisplayTime)
		}
	}

	// 12:00 ровно сейчас, не строго в будущем
	assert.False(t, slotByDisplay(t, resp.Slots, "12:00").IsAvailable)
	assert.True(t, slotByDisplay(t, resp.Slots, "12:30").IsAvailable)
}

func TestUseCase_Execute_CancelledBookingIgnored(t *testing.T) {
	cancelled := confirmedBookingAt(10, 0, 60)
	cancelled.Status = domain.StatusCancelled

	uc := newTestUseCase(&fakeBookingRepo{bookings: []*domain.Booking{cancelled}})

	resp, err := uc.Execute(context.Background(), &Request{StationID: 1, ServiceID: 2, Date: testDate})
	require.NoError(t, err)

	assert.True(t, slotByDisplay(t, resp.Slots, "10:00").IsAvailable)
}

func TestUseCase_Execute_Idempotent(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{confirmedBookingAt(14, 30, 60)}}
	uc := newTestUseCase(repo)
	req := &Request{StationID: 1, ServiceID: 2, Date: testDate}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestUseCase_Execute_CatalogFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(c *fakeCatalogRepo)
		wantErr error
	}{
		{
			name:    "station missing",
			setup:   func(c *fakeCatalogRepo) { c.station = nil },
			wantErr: ErrStationNotFound,
		},
		{
			name:    "service inactive",
			setup:   func(c *fakeCatalogRepo) { c.service.IsActive = false },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "no active price at station",
			setup:   func(c *fakeCatalogRepo) { c.price = nil },
			wantErr: ErrServiceNotAvailableAtStation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeBookingRepo{})
			tt.setup(uc.catalogRepo.(*fakeCatalogRepo))

			_, err := uc.Execute(context.Background(), &Request{StationID: 1, ServiceID: 2, Date: testDate})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, validateRequest(&Request{StationID: 1, ServiceID: 2, Date: testDate}))
	assert.ErrorIs(t, validateRequest(&Request{StationID: 0, ServiceID: 2, Date: testDate}), ErrInvalidInput)
	assert.ErrorIs(t, validateRequest(&Request{StationID: 1, ServiceID: -5, Date: testDate}), ErrInvalidInput)
	assert.ErrorIs(t, validateRequest(&Request{StationID: 1, ServiceID: 2}), ErrInvalidInput)
}

func TestBuildSlotGrid_LongServiceOverlapsManySlots(t *testing.T) {
	// Услуга 120 минут: бронирование 10:00-12:00 закрывает слоты 08:30-11:30
	window := domain.DefaultOperatingWindow()
	bookings := []*domain.Booking{confirmedBookingAt(10, 0, 120)}

	slots := buildSlotGrid(window, testDate, 120, testNow, bookings)
	require.Len(t, slots, 20)

	assert.True(t, slotByDisplay(t, slots, "08:00").IsAvailable)
	assert.False(t, slotByDisplay(t, slots, "08:30").IsAvailable)
	assert.False(t, slotByDisplay(t, slots, "11:30").IsAvailable)
	assert.True(t, slotByDisplay(t, slots, "12:00").IsAvailable)
}
