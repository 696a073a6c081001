package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carservice/internal/domain"
	bookingStorage "carservice/internal/infra/storage/booking"
	catalogRepo "carservice/internal/infra/storage/catalog"
)

// --- test doubles ---

type fakeBookingRepo struct {
	existing []*domain.Booking

	getActiveErr error
	createErr    error
	historyErr   error

	created       *domain.Booking
	historyWrites []*domain.BookingStatusHistory

	queryFrom time.Time
	queryTo   time.Time
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	out := *b
	out.ID = 42
	out.CreatedAt = time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)
	out.UpdatedAt = out.CreatedAt
	r.created = &out
	return &out, nil
}

func (r *fakeBookingRepo) GetActiveInWindow(_ context.Context, _ int64, from, to time.Time) ([]*domain.Booking, error) {
	if r.getActiveErr != nil {
		return nil, r.getActiveErr
	}
	r.queryFrom = from
	r.queryTo = to
	return r.existing, nil
}

func (r *fakeBookingRepo) AppendStatusHistory(_ context.Context, e *domain.BookingStatusHistory) (*domain.BookingStatusHistory, error) {
	if r.historyErr != nil {
		return nil, r.historyErr
	}
	r.historyWrites = append(r.historyWrites, e)
	return e, nil
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- fixture ---

// Текущее время в тестах: 9 марта 2026, 12:00 UTC
var testNow = time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)

// tomorrowAt завтрашний день относительно testNow
func tomorrowAt(hour, min int) time.Time {
	return time.Date(2026, time.March, 10, hour, min, 0, 0, time.UTC)
}

func newTestUseCase(bookingRepo *fakeBookingRepo, catalog *fakeCatalogRepo) *UseCase {
	uc := NewUseCase(
		bookingRepo,
		catalog,
		fakeTxManager{},
		domain.DefaultOperatingWindow(),
		domain.SymmetricWindowPolicy{},
		nopLogger{},
	)
	uc.timeProvider = fixedTime{t: testNow}
	return uc
}

func newTestCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		station: &domain.Station{ID: 1, Name: "Центральная станция", IsActive: true},
		service: &domain.Service{ID: 2, Name: "Замена масла", EstimatedDurationMinutes: 60, IsActive: true},
		price:   &domain.StationServicePrice{StationID: 1, ServiceID: 2, Price: 3500, IsActive: true},
	}
}

func newTestRequest(scheduled time.Time) *Request {
	return &Request{
		UserID:        7,
		ServiceID:     2,
		StationID:     1,
		ScheduledDate: scheduled,
		VehicleDetails: domain.VehicleDetails{
			Make:         "Toyota",
			Model:        "Camry",
			Year:         2021,
			LicensePlate: "А123БВ77",
		},
	}
}

// --- tests ---

func TestUseCase_Execute_Success(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	uc := newTestUseCase(bookingRepo, newTestCatalog())

	resp, err := uc.Execute(context.Background(), newTestRequest(tomorrowAt(11, 30)))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 3500.0, resp.TotalPrice)
	assert.Equal(t, "Замена масла", resp.ServiceName)
	assert.Equal(t, "Центральная станция", resp.StationName)

	// Окно выборки симметричное: +-длительность услуги
	assert.Equal(t, tomorrowAt(10, 30), bookingRepo.queryFrom)
	assert.Equal(t, tomorrowAt(12, 30), bookingRepo.queryTo)

	// Первая запись истории создается в той же транзакции
	require.Len(t, bookingRepo.historyWrites, 1)
	entry := bookingRepo.historyWrites[0]
	assert.Equal(t, int64(42), entry.BookingID)
	assert.Equal(t, domain.StatusPending, entry.Status)
	assert.Equal(t, int64(7), entry.ChangedBy)
	require.NotNil(t, entry.Notes)
	assert.Equal(t, historyNoteCreated, *entry.Notes)
}

// Сквозной сценарий: услуга 60 минут, существующее активное бронирование на 09:00
func TestUseCase_Execute_EndToEndScenario(t *testing.T) {
	existing := &domain.Booking{
		ID:              10,
		StationID:       1,
		ServiceID:       2,
		ScheduledDate:   tomorrowAt(9, 0),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}

	tests := []struct {
		name      string
		scheduled time.Time
		wantErr   error
	}{
		{
			name:      "09:30 rejected, inside widened window of 09:00 booking",
			scheduled: tomorrowAt(9, 30),
			wantErr:   ErrSlotNotAvailable,
		},
		{
			name:      "11:30 accepted, outside widened window",
			scheduled: tomorrowAt(11, 30),
			wantErr:   nil,
		},
		{
			name:      "07:00 rejected, outside operating hours",
			scheduled: tomorrowAt(7, 0),
			wantErr:   ErrOutsideOperatingHours,
		},
		{
			name:      "yesterday 10:00 rejected as past",
			scheduled: time.Date(2026, time.March, 8, 10, 0, 0, 0, time.UTC),
			wantErr:   ErrPastSchedule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookingRepo := &fakeBookingRepo{existing: []*domain.Booking{existing}}
			uc := newTestUseCase(bookingRepo, newTestCatalog())

			resp, err := uc.Execute(context.Background(), newTestRequest(tt.scheduled))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				// При отказе ничего не пишется
				assert.Nil(t, bookingRepo.created)
				assert.Empty(t, bookingRepo.historyWrites)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, resp)
		})
	}
}

func TestUseCase_Execute_CancelledBookingDoesNotBlock(t *testing.T) {
	cancelled := &domain.Booking{
		ID:              11,
		StationID:       1,
		ServiceID:       2,
		ScheduledDate:   tomorrowAt(9, 30),
		DurationMinutes: 60,
		Status:          domain.StatusCancelled,
	}
	bookingRepo := &fakeBookingRepo{existing: []*domain.Booking{cancelled}}
	uc := newTestUseCase(bookingRepo, newTestCatalog())

	_, err := uc.Execute(context.Background(), newTestRequest(tomorrowAt(9, 30)))
	require.NoError(t, err)
}

func TestUseCase_Execute_BoundaryQuirk(t *testing.T) {
	// 18:45 проходит проверку рабочих часов: сравнивается только час
	bookingRepo := &fakeBookingRepo{}
	uc := newTestUseCase(bookingRepo, newTestCatalog())

	_, err := uc.Execute(context.Background(), newTestRequest(tomorrowAt(18, 45)))
	require.NoError(t, err)
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
			name:    "station inactive",
			setup:   func(c *fakeCatalogRepo) { c.station.IsActive = false },
			wantErr: ErrStationNotFound,
		},
		{
			name:    "service missing",
			setup:   func(c *fakeCatalogRepo) { c.service = nil },
			wantErr: ErrServiceNotFound,
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
			catalog := newTestCatalog()
			tt.setup(catalog)
			uc := newTestUseCase(&fakeBookingRepo{}, catalog)

			_, err := uc.Execute(context.Background(), newTestRequest(tomorrowAt(11, 0)))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		ok     bool
	}{
		{name: "valid", mutate: func(r *Request) {}, ok: true},
		{name: "zero userID", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "negative serviceID", mutate: func(r *Request) { r.ServiceID = -1 }},
		{name: "zero stationID", mutate: func(r *Request) { r.StationID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.ScheduledDate = time.Time{} }},
		{name: "missing vehicle make", mutate: func(r *Request) { r.VehicleDetails.Make = "" }},
		{name: "missing vehicle model", mutate: func(r *Request) { r.VehicleDetails.Model = "" }},
		{name: "zero vehicle year", mutate: func(r *Request) { r.VehicleDetails.Year = 0 }},
		{name: "missing license plate", mutate: func(r *Request) { r.VehicleDetails.LicensePlate = "" }},
		{
			name: "special instructions too long",
			mutate: func(r *Request) {
				long := make([]byte, domain.MaxSpecialInstructionsLength+1)
				for i := range long {
					long[i] = 'x'
				}
				s := string(long)
				r.SpecialInstructions = &s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newTestRequest(tomorrowAt(10, 0))
			tt.mutate(req)

			err := validateRequest(req)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestValidateSchedule(t *testing.T) {
	window := domain.DefaultOperatingWindow()

	tests := []struct {
		name      string
		scheduled time.Time
		wantErr   error
	}{
		{name: "future inside hours", scheduled: tomorrowAt(10, 0)},
		{name: "exactly now is past", scheduled: testNow, wantErr: ErrPastSchedule},
		{name: "before now is past", scheduled: testNow.Add(-time.Minute), wantErr: ErrPastSchedule},
		{name: "before opening", scheduled: tomorrowAt(7, 59), wantErr: ErrOutsideOperatingHours},
		{name: "after closing hour", scheduled: tomorrowAt(19, 0), wantErr: ErrOutsideOperatingHours},
		{name: "opening hour allowed", scheduled: tomorrowAt(8, 0)},
		{name: "closing hour still allowed", scheduled: tomorrowAt(18, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSchedule(tt.scheduled, testNow, window)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Ошибка сериализации (40001) означает, что конкурентная транзакция
// успела занять слот: клиент должен получить конфликт слота, а не 500
func TestUseCase_Execute_SerializationConflict(t *testing.T) {
	pqSerialization := &pq.Error{Code: "40001", Message: "could not serialize access"}

	tests := []struct {
		name  string
		setup func(r *fakeBookingRepo)
	}{
		{
			name: "on select for update",
			setup: func(r *fakeBookingRepo) {
				r.getActiveErr = fmt.Errorf("%w: GetActiveInWindow - execute query: %w",
					bookingStorage.ErrExecQuery, pqSerialization)
			},
		},
		{
			name: "on insert",
			setup: func(r *fakeBookingRepo) {
				r.createErr = fmt.Errorf("%w: Create - execute insert: %w",
					bookingStorage.ErrExecQuery, pqSerialization)
			},
		},
		{
			name: "on history insert",
			setup: func(r *fakeBookingRepo) {
				r.historyErr = fmt.Errorf("%w: AppendStatusHistory - execute insert: %w",
					bookingStorage.ErrExecQuery, pqSerialization)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{}
			tt.setup(repo)
			uc := newTestUseCase(repo, newTestCatalog())

			_, err := uc.Execute(context.Background(), newTestRequest(tomorrowAt(11, 30)))

			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.NotErrorIs(t, err, ErrInternal)
		})
	}
}

// Та же ошибка может прийти на Commit сериализуемой транзакции
func TestUseCase_Execute_SerializationConflictOnCommit(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, newTestCatalog())
	uc.txManager = commitFailTxManager{
		err: fmt.Errorf("txmanager: failed to commit transaction: %w",
			&pq.Error{Code: "40001"}),
	}

	_, err := uc.Execute(context.Background(), newTestRequest(tomorrowAt(11, 30)))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

type commitFailTxManager struct{ err error }

func (m commitFailTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.err
}
