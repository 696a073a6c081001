package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carservice/internal/domain"
	catalogRepo "carservice/internal/infra/storage/catalog"
)

// UseCase use case для получения сетки слотов на день
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	window       domain.OperatingWindow
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	window domain.OperatingWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
//
// Проверка занятости здесь СКОПИРОВАНА по паре (станция, услуга): бронирование
// другой услуги на той же станции слот не блокирует. Создание бронирования
// при этом проверяет пересечения по всей станции, поэтому такой слот может
// быть показан как свободный, но отклонен при попытке записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: station=%d, service=%d, date=%s",
		req.StationID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем станцию
	station, err := uc.catalogRepo.GetStationByID(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStationNotFound) {
			uc.logger.Warn("GetAvailableSlots: station id=%d not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get station id=%d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}
	if !station.IsActive {
		uc.logger.Warn("GetAvailableSlots: station id=%d is inactive", req.StationID)
		return nil, ErrStationNotFound
	}

	// 4. Получаем услугу
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 5. Проверяем, что услуга оказывается на станции
	if _, err := uc.catalogRepo.GetActivePrice(ctx, req.StationID, req.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrPriceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not available at station id=%d",
				req.ServiceID, req.StationID)
			return nil, ErrServiceNotAvailableAtStation
		}
		uc.logger.Error("GetAvailableSlots: failed to get price station=%d service=%d: %v",
			req.StationID, req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get price: %v", ErrInternal, err)
	}

	// 6. Получаем бронирования пары (станция, услуга) на весь рабочий день.
	// Нижняя граница отодвинута на максимальную длительность услуги, чтобы
	// захватить бронирования, начавшиеся до открытия
	from := uc.window.DayStart(req.Date).Add(-domain.MaxServiceDurationMinutes * time.Minute)
	to := uc.window.DayEnd(req.Date)

	bookings, err := uc.bookingRepo.GetActiveByStationAndService(ctx, req.StationID, req.ServiceID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Строим сетку слотов с признаком доступности
	slots := buildSlotGrid(uc.window, req.Date, service.EstimatedDurationMinutes, now, bookings)

	available := 0
	for _, s := range slots {
		if s.IsAvailable {
			available++
		}
	}
	uc.logger.Info("GetAvailableSlots: %d/%d slots available for station=%d, service=%d, date=%s",
		available, len(slots), req.StationID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		StationID: req.StationID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}
