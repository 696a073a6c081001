package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"carservice/internal/domain"
	"carservice/pkg/dbmetrics"
	"carservice/pkg/psqlbuilder"
)

var stationColumns = []string{
	"id",
	"name",
	"address",
	"phone",
	"email",
	"operating_hours",
	"is_active",
	"created_at",
	"updated_at",
}

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"base_price",
	"estimated_duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога: станции, услуги и цены услуг на станциях
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStationByID получает станцию по ID
func (r *Repository) GetStationByID(ctx context.Context, id int64) (*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stationColumns...).
		From("stations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStationByID - build select query: %v", ErrBuildQuery, err)
	}

	station, err := scanStation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStationByID - scan station: %v", ErrScanRow, err)
	}

	return station, nil
}

// ListActiveStations получает список активных станций
func (r *Repository) ListActiveStations(ctx context.Context) ([]*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stationColumns...).
		From("stations").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stations := make([]*domain.Station, 0)
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveStations - scan row: %v", ErrScanRow, err)
		}
		stations = append(stations, station)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveStations - rows error: %v", ErrScanRow, err)
	}

	return stations, nil
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	return service, nil
}

// ListActiveServices получает список активных услуг
func (r *Repository) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetActivePrice получает действующую цену услуги на станции
// Отсутствие активной записи означает, что услуга на станции не оказывается
func (r *Repository) GetActivePrice(ctx context.Context, stationID, serviceID int64) (*domain.StationServicePrice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"station_id",
		"service_id",
		"price",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("station_service_prices").
		Where(squirrel.Eq{
			"station_id": stationID,
			"service_id": serviceID,
			"is_active":  true,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActivePrice - build select query: %v", ErrBuildQuery, err)
	}

	var price domain.StationServicePrice
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&price.ID,
		&price.StationID,
		&price.ServiceID,
		&price.Price,
		&price.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPriceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActivePrice - scan price: %v", ErrScanRow, err)
	}

	price.CreatedAt = createdAt.Time
	price.UpdatedAt = updatedAt.Time

	return &price, nil
}

// ListStationServices получает активные услуги станции вместе с ценами
// (join услуг и прайса станции одним запросом)
func (r *Repository) ListStationServices(ctx context.Context, stationID int64) ([]*domain.StationService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.name",
		"s.description",
		"s.base_price",
		"s.estimated_duration_minutes",
		"s.is_active",
		"s.created_at",
		"s.updated_at",
		"p.price",
	).
		From("services s").
		Join("station_service_prices p ON p.service_id = s.id").
		Where(squirrel.Eq{
			"p.station_id": stationID,
			"p.is_active":  true,
			"s.is_active":  true,
		}).
		OrderBy("s.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStationServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStationServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.StationService, 0)
	for rows.Next() {
		var item domain.StationService
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&item.Service.ID,
			&item.Service.Name,
			&item.Service.Description,
			&item.Service.BasePrice,
			&item.Service.EstimatedDurationMinutes,
			&item.Service.IsActive,
			&createdAt,
			&updatedAt,
			&item.Price,
		); err != nil {
			return nil, fmt.Errorf("%w: ListStationServices - scan row: %v", ErrScanRow, err)
		}

		item.Service.CreatedAt = createdAt.Time
		item.Service.UpdatedAt = updatedAt.Time
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStationServices - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStation(row rowScanner) (*domain.Station, error) {
	var station domain.Station
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&station.ID,
		&station.Name,
		&station.Address,
		&station.Phone,
		&station.Email,
		&station.OperatingHours,
		&station.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	station.CreatedAt = createdAt.Time
	station.UpdatedAt = updatedAt.Time

	return &station, nil
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.BasePrice,
		&service.EstimatedDurationMinutes,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}
