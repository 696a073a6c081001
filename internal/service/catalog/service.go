package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "carservice/internal/infra/storage/catalog"
	"carservice/internal/service/catalog/models"
)

// Service сервис каталога станций и услуг
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListStations возвращает все активные станции
func (s *Service) ListStations(ctx context.Context) (*models.StationListResponse, error) {
	s.logger.Info("ListStations: fetching active stations")

	stations, err := s.catalogRepo.ListActiveStations(ctx)
	if err != nil {
		s.logger.Error("ListStations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListStations: successfully fetched %d stations", len(stations))
	return models.FromDomainStationList(stations), nil
}

// GetStation возвращает станцию по ID
// Неактивная станция клиенту не отдается
func (s *Service) GetStation(ctx context.Context, id int64) (*models.StationResponse, error) {
	s.logger.Info("GetStation: fetching station id=%d", id)

	station, err := s.catalogRepo.GetStationByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStationNotFound) {
			s.logger.Warn("GetStation: station id=%d not found", id)
			return nil, ErrStationNotFound
		}
		s.logger.Error("GetStation: repository error for station id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetStation - repository error: %v", ErrInternal, err)
	}

	if !station.IsActive {
		s.logger.Warn("GetStation: station id=%d is inactive", id)
		return nil, ErrStationNotFound
	}

	return models.FromDomainStation(station), nil
}

// GetStationServices возвращает услуги станции с ценами
func (s *Service) GetStationServices(ctx context.Context, stationID int64) (*models.StationServiceListResponse, error) {
	s.logger.Info("GetStationServices: fetching services for station id=%d", stationID)

	// Станция должна существовать и быть активной
	if _, err := s.GetStation(ctx, stationID); err != nil {
		return nil, err
	}

	services, err := s.catalogRepo.ListStationServices(ctx, stationID)
	if err != nil {
		s.logger.Error("GetStationServices: repository error for station id=%d: %v", stationID, err)
		return nil, fmt.Errorf("%w: GetStationServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStationServices: successfully fetched %d services for station id=%d",
		len(services), stationID)
	return models.FromDomainStationServices(stationID, services), nil
}

// ListServices возвращает все активные услуги
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching active services")

	services, err := s.catalogRepo.ListActiveServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// GetService возвращает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetService: fetching service id=%d", id)

	service, err := s.catalogRepo.GetServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	if !service.IsActive {
		s.logger.Warn("GetService: service id=%d is inactive", id)
		return nil, ErrServiceNotFound
	}

	return models.FromDomainService(service), nil
}
